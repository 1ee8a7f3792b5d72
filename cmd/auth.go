package main

import (
	"context"
	"fmt"

	"github.com/akasheyy/navajuvala-frontend/internal/shared"
	"github.com/urfave/cli/v3"
)

// Login authenticates against the catalog service and persists the session
// token.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("logging in", "email", email)

	resp, err := r.catalog.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	name := resp.Admin.Username
	if name == "" {
		name = email
	}
	return r.writePlain("✓ Logged in as %s\n", name)
}

// Logout clears the stored session token.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	if !r.session.Present() {
		return r.writePlain("No active session.\n")
	}

	destination, err := r.guard.Logout()
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.logger.Info("session cleared", "destination", destination)
	return r.writePlain("✓ Logged out\n")
}
