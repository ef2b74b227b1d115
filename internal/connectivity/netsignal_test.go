package connectivity

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDialSignal_StartsOptimistic(t *testing.T) {
	s := NewDialSignal("203.0.113.1:53", time.Hour)
	assert.True(t, s.Online())
}

func TestDialSignal_DetectsOfflineAndNotifies(t *testing.T) {
	s := NewDialSignal("unused", 10 * time.Millisecond)
	s.dial = func(_, _ string, _ time.Duration) (net.Conn, error) {
		return nil, errors.New("network is unreachable")
	}

	var mu sync.Mutex
	var changes []bool
	unsub := s.Subscribe(func(online bool) {
		mu.Lock()
		changes = append(changes, online)
		mu.Unlock()
	})
	defer unsub()

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return !s.Online() }, "failed dial never turned the signal off")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false}, changes, "only the change is notified, not every check")
}

func TestDialSignal_RecoversOnSuccessfulDial(t *testing.T) {
	var mu sync.Mutex
	fail := true

	s := NewDialSignal("unused", 5 * time.Millisecond)
	s.dial = func(_, _ string, _ time.Duration) (net.Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("no route to host")
		}
		client, server := net.Pipe()
		go func() { _ = server.Close() }()
		return client, nil
	}

	s.Start(context.Background())
	defer s.Stop()

	waitFor(t, func() bool { return !s.Online() }, "never went offline")

	mu.Lock()
	fail = false
	mu.Unlock()

	waitFor(t, func() bool { return s.Online() }, "never came back online")
}

func TestDialSignal_Unsubscribe(t *testing.T) {
	s := NewDialSignal("unused", time.Hour)

	var calls int
	unsub := s.Subscribe(func(bool) { calls++ })
	unsub()

	s.set(false)
	assert.Zero(t, calls)
}

func TestDialSignal_StopBeforeStart(t *testing.T) {
	s := NewDialSignal("unused", time.Hour)
	s.Stop() // must not panic or hang
}
