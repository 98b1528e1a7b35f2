package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorCodes(t *testing.T) {
	assert.True(t, Is(NotFound("Chat room", nil), "NOT_FOUND"))
	assert.True(t, Is(Validation("empty message", nil), "VALIDATION_ERROR"))
	assert.True(t, Is(ChatSetup("bootstrap failed", nil), "CHAT_SETUP_FAILED"))
	assert.False(t, Is(NotFound("Chat room", nil), "VALIDATION_ERROR"))
	assert.False(t, Is(fmt.Errorf("plain"), "NOT_FOUND"))
	assert.False(t, Is(nil, "NOT_FOUND"))
}

func TestAppErrorWrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Internal("Failed to patch chat room", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")

	// Wrapped AppErrors keep their code through fmt wrapping.
	wrapped := fmt.Errorf("sending: %w", err)
	assert.True(t, Is(wrapped, "INTERNAL_ERROR"))
}

func TestValidationStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad", nil).Status)
	assert.Equal(t, http.StatusBadGateway, ChatSetup("bad", nil).Status)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down", nil).Status)
}
