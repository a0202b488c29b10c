package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "wrapped unavailable", err: fmt.Errorf("embed: %w", ErrUnavailable), want: ErrUnavailable},
		{name: "invalid input", err: ErrInvalidInput, want: ErrInvalidInput},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrUnavailable},
		{name: "anything else", err: errors.New("boom"), want: ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}
