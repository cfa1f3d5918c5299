// Package guard decides, per navigation, whether a requested view may render.
package guard

import "github.com/rentafind/rentafind/internal/client/auth"

// Decision is the outcome of a navigation check.
type Decision int

const (
	// Allow: render the requested view.
	Allow Decision = iota
	// Redirect: send the user to the login view instead.
	Redirect
	// Defer: the session is still being restored; do not render an
	// auth-gated decision yet.
	Defer
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Defer:
		return "defer"
	default:
		return "unknown"
	}
}

// LoginPath is where Redirect decisions send the user.
const LoginPath = "/login"

// Decide is a pure function of the controller's current state. Views that do
// not require auth always render. Auth-required views render only when
// Authenticated; while the initial restore is still in flight they defer
// rather than bouncing a user whose session is about to come back.
func Decide(requiresAuth bool, st auth.State) Decision {
	if !requiresAuth {
		return Allow
	}
	switch st {
	case auth.StateAuthenticated:
		return Allow
	case auth.StateLoading:
		return Defer
	default:
		return Redirect
	}
}
