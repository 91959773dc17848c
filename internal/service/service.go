// Package service holds the values returned by the HTTP and gRPC surfaces,
// so both of them answer with identical data.
package service

import "github.com/patric-chuzhbe/helloserver/internal/user"

// Greeting is the text returned by the hello endpoint.
const Greeting = "Hello from HelloServlet!"

const (
	defaultUserID   = "1"
	defaultUserName = "John Doe"
)

// NewUser returns a freshly allocated copy of the fixed user record.
// Callers may mutate the result; nothing is shared between calls.
func NewUser() *user.User {
	return &user.User{
		ID:   defaultUserID,
		Name: defaultUserName,
	}
}
