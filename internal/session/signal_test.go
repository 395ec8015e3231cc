package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_SetReleasesWaiters(t *testing.T) {
	s := NewSignal()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Wait()
		}()
	}

	s.Set()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waiters not released after Set")
	}

	// Idempotent.
	s.Set()
	assert.True(t, s.IsSet())
}

func TestSignal_WaitReturnsImmediatelyWhenSet(t *testing.T) {
	s := NewSignal()
	s.Set()
	s.Wait()
	assert.True(t, s.WaitTimeout(time.Millisecond))
}

func TestSignal_ClearStartsNewEpoch(t *testing.T) {
	s := NewSignal()
	s.Set()
	s.Clear()
	require.False(t, s.IsSet())

	// A waiter attached after Clear must only be released by the next
	// Set, not the previous one.
	released := make(chan struct{})
	go func() {
		s.Wait()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("waiter released by a Set preceding the Clear")
	case <-time.After(50 * time.Millisecond):
	}

	s.Set()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("waiter not released by the Set following Clear")
	}
}

func TestSignal_WaiterSurvivesClearBetweenEpochs(t *testing.T) {
	s := NewSignal()

	released := make(chan struct{})
	go func() {
		s.Wait()
		close(released)
	}()

	// Give the waiter time to attach, then run a full epoch.
	time.Sleep(20 * time.Millisecond)
	s.Set()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("pre-epoch waiter never released")
	}
}

func TestSignal_DoneTracksEpochs(t *testing.T) {
	s := NewSignal()

	select {
	case <-s.Done():
		t.Fatal("done channel closed before Set")
	default:
	}

	s.Set()
	select {
	case <-s.Done():
	default:
		t.Fatal("done channel still open after Set")
	}

	s.Clear()
	select {
	case <-s.Done():
		t.Fatal("Clear must hand out a fresh epoch channel")
	default:
	}
}

func TestSignal_WaitTimeout(t *testing.T) {
	s := NewSignal()
	assert.False(t, s.WaitTimeout(10*time.Millisecond))
	s.Set()
	assert.True(t, s.WaitTimeout(10*time.Millisecond))
}

func TestSignal_OnSetFiresPerTransition(t *testing.T) {
	s := NewSignal()

	var mu sync.Mutex
	fired := 0
	s.OnSet(func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})

	s.Set()
	s.Set() // idempotent, no second firing
	s.Clear()
	s.Set()

	mu.Lock()
	assert.Equal(t, 2, fired)
	mu.Unlock()
}

func TestSignal_OnSetAfterSetFiresImmediately(t *testing.T) {
	s := NewSignal()
	s.Set()

	fired := false
	s.OnSet(func() { fired = true })
	assert.True(t, fired)
}
