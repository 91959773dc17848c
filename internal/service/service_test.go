package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	first := NewUser()
	second := NewUser()

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "John Doe", first.Name)
	assert.Equal(t, first, second)

	first.Name = "changed"
	assert.Equal(t, "John Doe", second.Name, "users must not share memory between calls")
	assert.Equal(t, "John Doe", NewUser().Name)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Hello from HelloServlet!", Greeting)
}
