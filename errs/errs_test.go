package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  int
		known error
	}{
		{"direct", ErrIssueNotFound, http.StatusNotFound, ErrIssueNotFound},
		{"wrapped", fmt.Errorf("load: %w", ErrPermissionDenied), http.StatusForbidden, ErrPermissionDenied},
		{"conflict", ErrProjectHasIssues, http.StatusConflict, ErrProjectHasIssues},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, known := Status(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.known, known)
		})
	}
}
