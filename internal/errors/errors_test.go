package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind only",
			err:  &Error{Phase: PhaseAsset, Kind: KindNotFound},
			want: "[asset] not_found",
		},
		{
			name: "with detail",
			err:  NotFound(PhaseAsset, "asset", "ex04.lua"),
			want: `[asset] not_found: asset "ex04.lua" not found`,
		},
		{
			name: "with cause",
			err:  ShortRead("a.bin", 10, 4, io.ErrUnexpectedEOF),
			want: `[asset] short_read: asset "a.bin": read 4 of 10 bytes (caused by: unexpected EOF)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIsMatchesPhaseAndKind(t *testing.T) {
	err := fmt.Errorf("load: %w", NotFound(PhaseAsset, "asset", "x"))

	assert.True(t, Is(err, &Error{Phase: PhaseAsset, Kind: KindNotFound}))
	assert.False(t, Is(err, &Error{Phase: PhaseBootstrap, Kind: KindNotFound}))
	assert.False(t, Is(err, &Error{Phase: PhaseAsset, Kind: KindShortRead}))
}

func TestErrorUnwrap(t *testing.T) {
	err := Wrap(PhaseSurface, KindIO, io.EOF, "init surface")

	assert.True(t, stderrors.Is(err, io.EOF))

	var target *Error
	require.True(t, As(fmt.Errorf("outer: %w", err), &target))
	assert.Equal(t, PhaseSurface, target.Phase)
}

func TestReportAppendsTrace(t *testing.T) {
	err := Runtime(PhaseBootstrap, "boom", "stack traceback:\n\t[G]: in function 'error'")

	assert.Equal(t, "[bootstrap] runtime: boom\nstack traceback:\n\t[G]: in function 'error'", err.Report())
	assert.Equal(t, "[session] precondition: closed", Precondition("closed").Report())
}
