package cli

import (
	"context"
	"os"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for an email and password, creates the account with the
// identity provider, requests a verification email, and syncs the profile
// into the backend. The password byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.session.SignUp(ctx, email, password)
	if err != nil {
		return err
	}

	// Verification is best effort; the account works without it.
	if err := a.session.SendEmailVerification(ctx); err != nil {
		a.logger.Warn(ctx, "sending verification email", "error", err)
	} else {
		printlnFn("Verification email sent to", account.Email)
	}

	if err := a.syncAccount(ctx, account.UID, account.Email); err != nil {
		return err
	}

	printlnFn("Account created. You are signed in as", account.Email)
	return nil
}

// Login prompts for credentials, authenticates, and syncs the profile.
// The sync runs on every login; the backend answering "already exists" is
// the normal case and is absorbed by the store.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	account, err := a.session.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	if err := a.syncAccount(ctx, account.UID, account.Email); err != nil {
		return err
	}

	printlnFn("Signed in as", account.Email)
	return nil
}

func (a *App) syncAccount(ctx context.Context, uid, email string) error {
	_, err := a.store.SyncUser(ctx, models.SignupRequest{
		FirebaseUID: uid,
		Email:       email,
	})
	return err
}

// Logout drops the session and the cached profile.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	a.store.ClearUser()
	printlnFn("Signed out.")
	return nil
}

// Reset asks the identity provider to send a password reset email.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.session.SendPasswordReset(ctx, email); err != nil {
		return err
	}
	printlnFn("Password reset email sent to", email)
	return nil
}
