package nango

import "fmt"

// AuthError reports a failure to obtain usable credentials from Nango.
// It covers configuration problems, broker API failures and credential
// payloads missing an access token.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func authErrorf(err error, format string, args ...any) *AuthError {
	return &AuthError{Message: fmt.Sprintf(format, args...), Err: err}
}
