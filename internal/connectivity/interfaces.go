// Package connectivity tracks two independent signals (raw network
// reachability and remote-service reachability) and exposes them as a
// small observable state machine that drives the synchronizer.
//
// Both signals are injected abstractions so the monitor can be driven by
// fakes in tests: [Prober] answers "is the remote service reachable right
// now", [NetworkSignal] answers "does this device have any network at all"
// (the browser online/offline analog).
package connectivity

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/connectivity_mock.go -package=mock

// Prober checks remote-service reachability. Implementations must bound
// the probe with a hard timeout of their own on top of ctx; a probe that
// neither resolves nor times out would otherwise block re-probing forever.
type Prober interface {
	Probe(ctx context.Context) error
}

// NetworkSignal reports raw network reachability and notifies subscribers
// on changes.
type NetworkSignal interface {
	// Online returns the last observed network state.
	Online() bool

	// Subscribe registers fn to be called with every state change and
	// returns an unsubscribe function.
	Subscribe(fn func(online bool)) (unsubscribe func())
}
