package cli

import "context"

// Logout ends the session. The goodbye message comes from the controller's
// state-change notification.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	return nil
}
