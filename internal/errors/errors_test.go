package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: io.EOF, want: ""},
		{name: "direct", err: New(Unauthorized, "bad password"), want: Unauthorized},
		{name: "wrapped by fmt", err: fmt.Errorf("login: %w", Wrap(RequestFailed, "dial", io.EOF)), want: RequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(StorageFailed, "save token", io.ErrClosedPipe)

	assert.True(t, stderrors.Is(err, io.ErrClosedPipe))
	assert.True(t, Is(err, StorageFailed))
	assert.False(t, Is(err, RequestFailed))
	assert.Equal(t, "storage_failed: save token: io: read/write on closed pipe", err.Error())
	assert.Equal(t, "invalid_input: username is required", New(InvalidInput, "username is required").Error())
}
