package cli

import (
	"context"
	"fmt"

	"github.com/rentafind/rentafind/internal/client/models"
)

// Profile fetches and prints the signed-in user's account view.
func (a *App) Profile(ctx context.Context) error {
	epoch := a.auth.Epoch()
	p, err := a.api.Profile(ctx)
	if err != nil {
		a.handleAPIError(ctx, epoch, err)
		return err
	}

	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\nPhone:    %s\nMember since: %s\n",
		p.Username, p.Email, p.PhoneNumber, p.CreatedAt.Format("2006-01-02"))
	return nil
}

// UpdateProfile changes the account phone number and replaces the cached
// user snapshot with the one the server returns.
func (a *App) UpdateProfile(ctx context.Context) error {
	phone, err := GetSimpleText(a.reader, "New phone number", a.out)
	if err != nil {
		return err
	}

	epoch := a.auth.Epoch()
	user, err := a.api.UpdateProfile(ctx, phone)
	if err != nil {
		a.handleAPIError(ctx, epoch, err)
		return err
	}

	a.auth.UpdateUser(ctx, models.UserSummary{ID: user.ID, Username: user.Username, Email: user.Email})
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
