package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mkravets/linkjournal/internal/models"
)

func importantMark(j models.Journal) string {
	if j.IsImportant {
		return "*"
	}
	return " "
}

// Journals lists journals: all of them, or those of one topic when a
// topic id is given.
func (a *App) Journals(ctx context.Context, args []string) error {
	var (
		journals []models.Journal
		err      error
	)
	if len(args) > 0 {
		journals, err = a.store.JournalsByTopic(ctx, args[0])
	} else {
		journals, err = a.store.Journals(ctx)
	}
	if err != nil {
		return err
	}
	if len(journals) == 0 {
		printlnFn("No journals yet. Use 'add' to create one.")
		return nil
	}
	for _, j := range journals {
		printlnFn(fmt.Sprintf("%s %s  %-30s  [%s]", importantMark(j), j.ID, j.Name, a.store.TopicName(j.TopicID)))
	}
	return nil
}

// Show prints one journal in full.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: show <id>")
		return nil
	}
	j, err := a.store.Journal(ctx, args[0])
	if err != nil {
		return err
	}
	printlnFn("Name:       ", j.Name)
	printlnFn("Link:       ", j.Link)
	printlnFn("Topic:      ", a.store.TopicName(j.TopicID))
	printlnFn("Important:  ", j.IsImportant)
	if j.Description != "" {
		printlnFn("Description:", j.Description)
	}
	if j.Screenshot != "" {
		printlnFn("Screenshot: ", j.Screenshot)
	}
	return nil
}

// Add prompts for the journal fields and creates it. Description and
// screenshot are optional; leaving the topic empty files the journal as
// uncategorized.
func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	link, err := getSimpleText(a.reader, "Link (URL)", os.Stdout)
	if err != nil {
		return err
	}
	topicID, err := getSimpleText(a.reader, "Topic id (empty for uncategorized)", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	created, err := a.store.CreateJournal(ctx, models.CreateJournalRequest{
		TopicID:     topicID,
		Name:        name,
		Link:        link,
		Description: description,
	})
	if err != nil {
		return err
	}
	printlnFn("Created journal", created.ID)
	return nil
}

// Edit prompts for replacement values; empty input keeps the current one.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: edit <id>")
		return nil
	}
	id := args[0]

	current, err := a.store.Journal(ctx, id)
	if err != nil {
		return err
	}

	var req models.UpdateJournalRequest
	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		req.Name = &name
	}
	link, err := getSimpleText(a.reader, fmt.Sprintf("Link [%s]", current.Link), os.Stdout)
	if err != nil {
		return err
	}
	if link != "" {
		req.Link = &link
	}
	topicID, err := getSimpleText(a.reader, fmt.Sprintf("Topic id [%s]", current.TopicID), os.Stdout)
	if err != nil {
		return err
	}
	if topicID != "" {
		req.TopicID = &topicID
	}
	description, err := GetMultiline(a.reader, "Description (empty keeps current)", os.Stdout)
	if err != nil {
		return err
	}
	if description != "" {
		req.Description = &description
	}

	if req == (models.UpdateJournalRequest{}) {
		printlnFn("Nothing to change.")
		return nil
	}
	if err := a.store.UpdateJournal(ctx, id, req); err != nil {
		return err
	}
	printlnFn("Updated.")
	return nil
}

// Delete removes a journal.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: del <id>")
		return nil
	}
	if err := a.store.DeleteJournal(ctx, args[0]); err != nil {
		return err
	}
	printlnFn("Deleted.")
	return nil
}

// Important toggles the important flag.
func (a *App) Important(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: important <id>")
		return nil
	}
	isImportant, err := a.store.ToggleImportant(ctx, args[0])
	if err != nil {
		return err
	}
	if isImportant {
		printlnFn("Marked as important.")
	} else {
		printlnFn("Importance removed.")
	}
	return nil
}
