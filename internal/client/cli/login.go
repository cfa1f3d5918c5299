package cli

import (
	"context"
	"fmt"

	"github.com/rentafind/rentafind/internal/client/models"
	"github.com/rentafind/rentafind/internal/common"
)

// Login prompts for credentials and drives the auth controller.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Username: username, Password: string(password)}
	if err := a.auth.Login(ctx, creds); err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}
