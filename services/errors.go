package services

import "errors"

// SessionExpiredError is returned when an authenticated call comes back
// with a 401. The gateway has already cleared the session by the time
// the caller sees this error.
type SessionExpiredError struct {
	Endpoint string
}

func (e *SessionExpiredError) Error() string {
	return "Sessão expirada. Faça login novamente."
}

// ServerError is a non-401 error status returned by the backend.
// Message carries the backend detail when one was provided.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "backend request failed"
}

// IsSessionExpired reports whether err is a SessionExpiredError
func IsSessionExpired(err error) bool {
	var expired *SessionExpiredError
	return errors.As(err, &expired)
}
