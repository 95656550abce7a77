package cli

import (
	"context"
	"fmt"
	"os"
)

// Topics prints the full topic listing.
func (a *App) Topics(ctx context.Context) error {
	topics, err := a.store.Topics(ctx)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		printlnFn("No topics yet. Use 'newtopic' to create one.")
		return nil
	}
	for _, t := range topics {
		printlnFn(fmt.Sprintf("%s  %s", t.ID, t.Name))
	}
	return nil
}

// NewTopic prompts for a name and creates the topic.
func (a *App) NewTopic(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Topic name", os.Stdout)
	if err != nil {
		return err
	}
	created, err := a.store.CreateTopic(ctx, name)
	if err != nil {
		return err
	}
	printlnFn("Created topic", created.ID)
	return nil
}

// RenameTopic renames the topic given as argument.
func (a *App) RenameTopic(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: renametopic <id>")
		return nil
	}
	name, err := getSimpleText(a.reader, "New name", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.store.RenameTopic(ctx, args[0], name); err != nil {
		return err
	}
	printlnFn("Renamed.")
	return nil
}

// DeleteTopic deletes the topic given as argument. Its journals survive
// and list as uncategorized afterwards.
func (a *App) DeleteTopic(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: deltopic <id>")
		return nil
	}
	if err := a.store.DeleteTopic(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Topic deleted. Its journals are kept as uncategorized.")
	return nil
}
