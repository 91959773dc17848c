// Package user defines the user record served by the application.
package user

// User represents a system user.
// Field order defines the key order of the JSON encoding.
type User struct {
	// ID is the unique identifier of the user.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`
}
