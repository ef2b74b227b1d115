package connectivity

import (
	"context"
	"net"
	"sync"
	"time"
)

// DialSignal is the default [NetworkSignal]: it periodically dials a
// well-known TCP address and treats a successful connection as "device has
// network". It says nothing about the remote service itself; that is the
// prober's job.
type DialSignal struct {
	address  string
	interval time.Duration
	timeout  time.Duration
	dial     func(network, address string, timeout time.Duration) (net.Conn, error)

	mu      sync.RWMutex
	online  bool
	subs    map[int]func(bool)
	nextSub int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDialSignal builds a DialSignal for address (host:port), re-checking
// every interval. The signal starts optimistic (online) until the first
// check says otherwise.
func NewDialSignal(address string, interval time.Duration) *DialSignal {
	return &DialSignal{
		address:  address,
		interval: interval,
		timeout:  3 * time.Second,
		dial:     net.DialTimeout,
		online:   true,
		subs:     make(map[int]func(bool)),
	}
}

// Start launches the periodic check loop. The loop stops when ctx is
// cancelled or Stop is called.
func (s *DialSignal) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.interval)
		defer t.Stop()

		s.check()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-t.C:
				s.check()
			}
		}
	}()
}

// Stop halts the check loop and waits for it to exit. Safe to call when
// the signal was never started.
func (s *DialSignal) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Online implements [NetworkSignal].
func (s *DialSignal) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// Subscribe implements [NetworkSignal].
func (s *DialSignal) Subscribe(fn func(online bool)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *DialSignal) check() {
	conn, err := s.dial("tcp", s.address, s.timeout)
	online := err == nil
	if conn != nil {
		conn.Close()
	}
	s.set(online)
}

func (s *DialSignal) set(online bool) {
	s.mu.Lock()
	changed := s.online != online
	s.online = online
	var fns []func(bool)
	if changed {
		fns = make([]func(bool), 0, len(s.subs))
		for _, fn := range s.subs {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(online)
	}
}
