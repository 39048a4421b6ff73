package errs

import (
	"errors"
	"net/http"
)

// Account and access errors
var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrEmailTaken        = errors.New("email already registered")
	ErrUsernameTaken     = errors.New("username already taken")
)

// Tracker errors
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectHasIssues = errors.New("project has associated issues")
	ErrIssueNotFound    = errors.New("issue not found")
	ErrStatusNotFound   = errors.New("status not found")
	ErrTypeNotFound     = errors.New("type not found")
)

// Shop errors
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrNoSession        = errors.New("no session")
)

// ErrStatusMap maps known errors to the HTTP status they surface as
var ErrStatusMap = map[error]int{
	ErrUnauthenticated:   http.StatusUnauthorized,
	ErrInvalidToken:      http.StatusUnauthorized,
	ErrInvalidCredential: http.StatusUnauthorized,
	ErrPermissionDenied:  http.StatusForbidden,
	ErrEmailTaken:        http.StatusConflict,
	ErrUsernameTaken:     http.StatusConflict,
	ErrProjectNotFound:   http.StatusNotFound,
	ErrProjectHasIssues:  http.StatusConflict,
	ErrIssueNotFound:     http.StatusNotFound,
	ErrStatusNotFound:    http.StatusBadRequest,
	ErrTypeNotFound:      http.StatusBadRequest,
	ErrProductNotFound:   http.StatusNotFound,
	ErrCartLineNotFound:  http.StatusNotFound,
	ErrNoSession:         http.StatusNotFound,
}

// Status returns the HTTP status for err, falling back to 500
func Status(err error) (int, error) {
	for known, code := range ErrStatusMap {
		if errors.Is(err, known) {
			return code, known
		}
	}
	return http.StatusInternalServerError, nil
}
