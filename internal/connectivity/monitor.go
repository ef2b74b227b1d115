package connectivity

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/internal/metrics"
	"github.com/garbagesocial/gsclient/models"
)

// Config holds the monitor's probing parameters.
type Config struct {
	// ProbeInterval is the regular re-probe interval while the last probe
	// succeeded.
	ProbeInterval time.Duration
	// ProbeTimeout is the hard per-probe timeout.
	ProbeTimeout time.Duration
	// BackoffBase is the delay before the first retry after a failed
	// probe; subsequent retries grow by BackoffMultiplier up to
	// BackoffCap.
	BackoffBase time.Duration
	// BackoffCap bounds the retry delay.
	BackoffCap time.Duration
}

// BackoffMultiplier is the growth factor of the probe retry delay.
const BackoffMultiplier = 1.5

// Monitor combines the network signal and the remote prober into one
// observable connectivity state. All transitions are pushed to
// subscribers; the synchronizer reacts to transitions into connected.
type Monitor struct {
	prober Prober
	signal NetworkSignal
	cfg    Config
	logger *logger.Logger

	mu      sync.RWMutex
	state   models.ConnectivityState
	attempt int
	subs    map[int]func(models.ConnectivityState)
	nextSub int

	kick        chan struct{}
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	unsubSignal func()
	lifecycleMu sync.Mutex
}

// NewMonitor builds a Monitor in the unknown state. Start must be called
// before the state begins to track reality.
func NewMonitor(prober Prober, signal NetworkSignal, cfg Config, log *logger.Logger) *Monitor {
	return &Monitor{
		prober: prober,
		signal: signal,
		cfg:    cfg,
		logger: log,
		state: models.ConnectivityState{
			BrowserOnline:   signal.Online(),
			RemoteReachable: models.RemoteUnknown,
		},
		subs: make(map[int]func(models.ConnectivityState)),
		kick: make(chan struct{}, 1),
	}
}

// Start subscribes to the network signal and launches the probe loop with
// an immediate first probe.
func (m *Monitor) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.unsubSignal = m.signal.Subscribe(m.onNetworkChange)

	m.wg.Add(1)
	go m.run(runCtx)
}

// Stop cancels the probe loop and unsubscribes from the network signal.
// Idempotent; safe to call before Start.
func (m *Monitor) Stop() {
	m.lifecycleMu.Lock()
	defer m.lifecycleMu.Unlock()

	if m.unsubSignal != nil {
		m.unsubSignal()
		m.unsubSignal = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.wg.Wait()
}

// State returns the current connectivity state.
func (m *Monitor) State() models.ConnectivityState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers fn to be called with every state transition and
// returns an unsubscribe function.
func (m *Monitor) Subscribe(fn func(models.ConnectivityState)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// SetOfflineMode toggles the user's forced-offline override. Entering it
// suppresses all probing immediately; leaving it triggers an immediate
// re-probe.
func (m *Monitor) SetOfflineMode(forced bool) {
	m.update(func(s *models.ConnectivityState) { s.OfflineModeForced = forced })

	if forced {
		m.logger.Info().Msg("offline mode forced, probing suspended")
		return
	}

	m.logger.Info().Msg("offline mode lifted, re-probing")
	m.ProbeNow()
}

// ProbeNow requests an immediate probe outside the regular schedule.
func (m *Monitor) ProbeNow() {
	select {
	case m.kick <- struct{}{}:
	default: // a probe request is already pending
	}
}

func (m *Monitor) run(ctx context.Context) {
	defer m.wg.Done()

	timer := time.NewTimer(0) // probe immediately on start
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}

		if m.State().OfflineModeForced {
			// no rearm: the loop sleeps until the next kick
			continue
		}

		timer.Reset(m.probe(ctx))
	}
}

// probe runs one reachability check and returns the delay until the next
// one: the regular interval after success, a growing backoff after
// failure.
func (m *Monitor) probe(ctx context.Context) time.Duration {
	m.update(func(s *models.ConnectivityState) { s.RemoteReachable = models.RemoteConnecting })

	probeCtx, cancel := context.WithTimeout(ctx, m.cfg.ProbeTimeout)
	err := m.prober.Probe(probeCtx)
	cancel()

	if err != nil {
		metrics.ProbeFailuresTotal.Inc()

		m.mu.Lock()
		m.attempt++
		attempt := m.attempt
		m.mu.Unlock()

		m.update(func(s *models.ConnectivityState) { s.RemoteReachable = models.RemoteDisconnected })

		delay := Backoff(m.cfg.BackoffBase, m.cfg.BackoffCap, attempt)
		m.logger.Debug().Err(err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("remote probe failed")
		return delay
	}

	m.mu.Lock()
	wasDown := m.state.RemoteReachable != models.RemoteConnected
	m.attempt = 0
	m.mu.Unlock()

	m.update(func(s *models.ConnectivityState) { s.RemoteReachable = models.RemoteConnected })

	if wasDown {
		m.logger.Info().Msg("remote service reachable")
	}
	return m.cfg.ProbeInterval
}

// onNetworkChange reflects the raw network signal immediately and
// re-probes on the offline→online transition.
func (m *Monitor) onNetworkChange(online bool) {
	m.update(func(s *models.ConnectivityState) { s.BrowserOnline = online })

	if online {
		m.ProbeNow()
	}
}

// update applies fn to the state under the lock and notifies subscribers
// when the state actually changed.
func (m *Monitor) update(fn func(*models.ConnectivityState)) {
	m.mu.Lock()
	before := m.state
	fn(&m.state)
	after := m.state
	var fns []func(models.ConnectivityState)
	if before != after {
		fns = make([]func(models.ConnectivityState), 0, len(m.subs))
		for _, sub := range m.subs {
			fns = append(fns, sub)
		}
	}
	m.mu.Unlock()

	for _, sub := range fns {
		sub(after)
	}
}

// Backoff returns base × BackoffMultiplier^(attempt−1), capped.
func Backoff(base, limit time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := time.Duration(float64(base) * math.Pow(BackoffMultiplier, float64(attempt-1)))
	if d > limit || d <= 0 {
		return limit
	}
	return d
}
