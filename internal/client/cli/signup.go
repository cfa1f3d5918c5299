package cli

import (
	"context"
	"fmt"

	"github.com/rentafind/rentafind/internal/client/models"
	"github.com/rentafind/rentafind/internal/common"
)

// Signup prompts for the account fields and registers a new user. The
// confirmation password is checked by the controller before any request
// goes out.
func (a *App) Signup(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	req := models.SignupRequest{Username: username, Email: email, Password: string(password)}
	if err := a.auth.Signup(ctx, req, string(confirm)); err != nil {
		fmt.Fprintf(a.out, "Signup failed: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Account created, you are signed in")
	return nil
}
