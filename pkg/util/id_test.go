package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID("bk")
	assert.True(t, strings.HasPrefix(id, "bk-"))
	assert.Len(t, id, len("bk-")+8)

	assert.NotEqual(t, NewID("bk"), NewID("bk"))
}

func TestNewSessionToken(t *testing.T) {
	token := NewSessionToken()
	assert.Len(t, token, 64)
	assert.NotContains(t, token, "-")
	assert.NotEqual(t, token, NewSessionToken())
}
