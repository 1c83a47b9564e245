package errors

import (
	stdErrors "errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalServerErrorKeepsCause(t *testing.T) {
	err := NewInternalServerError(io.ErrUnexpectedEOF, "Failed to read")

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, "Failed to read", err.Error())
	assert.True(t, stdErrors.Is(err, io.ErrUnexpectedEOF))
}

func TestTooManyRequestsCarriesWindow(t *testing.T) {
	err := NewTooManyRequestsError("slow down", 10, 1700000000)

	assert.Equal(t, http.StatusTooManyRequests, err.StatusCode)
	assert.Equal(t, 10, err.Limit)
	assert.Equal(t, int64(1700000000), err.Reset)
	assert.Nil(t, err.Unwrap())
}
