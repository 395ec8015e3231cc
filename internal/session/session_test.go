package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptyUID(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyUID)
}

func TestNew_LatchesStartUnset(t *testing.T) {
	s, err := New(MasterUID)
	require.NoError(t, err)

	assert.False(t, s.Shown.IsSet())
	assert.False(t, s.Loaded.IsSet())
	assert.False(t, s.Closing.IsSet())
	assert.False(t, s.Closed.IsSet())
}

func TestResetLatches(t *testing.T) {
	s, err := New("w1")
	require.NoError(t, err)

	s.Shown.Set()
	s.Loaded.Set()
	s.ResetLatches()

	assert.False(t, s.Shown.IsSet())
	assert.False(t, s.Loaded.IsSet())
}

func TestList(t *testing.T) {
	l := NewList()
	a, _ := New("a")
	b, _ := New("b")

	l.Add(a)
	l.Add(b)
	assert.Equal(t, 2, l.Len())
	assert.Same(t, a, l.Get("a"))
	assert.Same(t, b, l.Get("b"))
	assert.Nil(t, l.Get("c"))

	l.Remove("a")
	assert.Equal(t, 1, l.Len())
	assert.Nil(t, l.Get("a"))

	// Removing a missing uid is a no-op.
	l.Remove("a")
	assert.Equal(t, 1, l.Len())
}
