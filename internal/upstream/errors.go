package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// GenericMessage is the user-facing fallback when no backend message exists
const GenericMessage = "Something went wrong. Please try again."

// Error is a non-2xx response from the upstream API
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Message)
}

// Normalize maps any error to the (status, message) pair handlers respond
// with. Upstream errors pass through their status and backend message;
// everything else (network failure, timeout) becomes a 500 with the
// generic message. Never returns an empty message.
func Normalize(err error) (int, string) {
	var uerr *Error
	if errors.As(err, &uerr) {
		message := uerr.Message
		if message == "" {
			message = GenericMessage
		}
		return uerr.Status, message
	}

	return http.StatusInternalServerError, GenericMessage
}

// messageFromBody extracts the backend-supplied message from an error
// body. The backend responds with {"error": ...} or {"message": ...}.
func messageFromBody(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return GenericMessage
	}

	if payload.Error != "" {
		return payload.Error
	}
	if payload.Message != "" {
		return payload.Message
	}

	return GenericMessage
}
