package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d: %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

// IsUnauthorized reports a rejected or expired token.
func IsUnauthorized(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == http.StatusForbidden
}

func IsNotFound(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Status == http.StatusNotFound
}

// IsStockExceeded reports a server-side stock rejection of a cart change.
func IsStockExceeded(err error) bool {
	ae, ok := AsAPIError(err)
	if !ok {
		return false
	}
	if ae.Status != http.StatusBadRequest && ae.Status != http.StatusConflict {
		return false
	}
	return strings.Contains(strings.ToLower(ae.Message), "stock")
}

// errorMessage pulls a readable message out of an error body.
// Accepts {"message": ...}, {"error": ...}, a JSON string or plain text.
func errorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}

	return truncate(trimmed, maxMessageLen)
}

const maxMessageLen = 200

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
