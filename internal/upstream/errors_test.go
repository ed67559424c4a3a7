package upstream

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "upstream error passes through",
			err:         &Error{Status: http.StatusNotFound, Message: "Course not found"},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Course not found",
		},
		{
			name:        "upstream error without message falls back",
			err:         &Error{Status: http.StatusForbidden},
			wantStatus:  http.StatusForbidden,
			wantMessage: GenericMessage,
		},
		{
			name:        "wrapped upstream error unwraps",
			err:         fmt.Errorf("calling dashboard: %w", &Error{Status: http.StatusUnauthorized, Message: "Expired session"}),
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Expired session",
		},
		{
			name:        "transport error becomes 500",
			err:         errors.New("dial tcp: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: GenericMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := Normalize(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Status: http.StatusBadRequest, Message: "bad input"}
	assert.Equal(t, "upstream returned status 400: bad input", err.Error())
}
