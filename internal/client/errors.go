package client

import "fmt"

// AuthError indicates the server rejected the credential exchange during
// login. It is not recovered internally; the caller decides what to do.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("access not granted (status %d): %s", e.Status, e.Body)
}

// RequestError indicates an authenticated API call returned a non-200
// status. Verify and refresh never produce it; they signal by boolean.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Body)
}
