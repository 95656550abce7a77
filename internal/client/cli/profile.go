package cli

import (
	"context"
	"os"
	"path/filepath"
)

// Profile prints the backend profile of the signed-in user.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.store.Profile(ctx)
	if err != nil {
		return err
	}
	printlnFn("Email:          ", user.Email)
	if user.DisplayName != "" {
		printlnFn("Display name:   ", user.DisplayName)
	}
	if user.ProfilePicture != "" {
		printlnFn("Profile picture:", user.ProfilePicture)
	}
	return nil
}

// Avatar uploads a local image file as the new profile picture.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: avatar <file>")
		return nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := a.uploader.Upload(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}

	stored, err := a.store.UpdateAvatar(ctx, url)
	if err != nil {
		return err
	}
	printlnFn("Profile picture updated:", stored)
	return nil
}
