package auth

// Kind classifies auth operation failures for callers.
type Kind int

const (
	// KindInvalidCredentials: the backend rejected the username/password pair.
	KindInvalidCredentials Kind = iota
	// KindValidation: the request was rejected before or by the backend for
	// malformed or conflicting input (empty fields, taken username, ...).
	KindValidation
	// KindNetworkOrServer: transport failure or an unexpected server error.
	KindNetworkOrServer
)

// Error is the only error type the controller returns across its public
// boundary. Message is always suitable for direct display next to the
// triggering form or action.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalidCredentials(msg string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: msg}
}

func validationFailed(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func networkOrServer(msg string) *Error {
	return &Error{Kind: KindNetworkOrServer, Message: msg}
}
