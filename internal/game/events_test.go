package game

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBus(t *testing.T) {
	eb := NewErrorBus()
	var a, b []error
	eb.Subscribe(func(err error) { a = append(a, err) })
	eb.Subscribe(func(err error) { b = append(b, err) })

	first := stderrors.New("first")
	second := stderrors.New("second")
	eb.Emit(nil)
	eb.Emit(first)
	eb.Emit(second)

	assert.Equal(t, []error{first, second}, a)
	assert.Equal(t, a, b)
	assert.Equal(t, second, eb.Last())
	assert.Equal(t, 2, eb.Count())
	assert.Equal(t, first, <-eb.Errors())
	assert.Equal(t, second, <-eb.Errors())
}

func TestErrorBusDropsWhenFull(t *testing.T) {
	eb := NewErrorBus()
	for i := range ErrorBacklog + 4 {
		eb.Emit(fmt.Errorf("error %d", i))
	}

	assert.Equal(t, ErrorBacklog+4, eb.Count())
	assert.EqualError(t, eb.Last(), fmt.Sprintf("error %d", ErrorBacklog+3))
	assert.Len(t, eb.Errors(), ErrorBacklog)
	assert.EqualError(t, <-eb.Errors(), "error 0")
}

func TestErrorBusClose(t *testing.T) {
	eb := NewErrorBus()
	eb.Emit(stderrors.New("kept"))
	eb.Close()
	eb.Close()
	eb.Emit(stderrors.New("after close"))

	err, ok := <-eb.Errors()
	require.True(t, ok)
	assert.EqualError(t, err, "kept")
	_, ok = <-eb.Errors()
	assert.False(t, ok)
	assert.Equal(t, 1, eb.Count())
}
