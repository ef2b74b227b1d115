package models

// RemoteStatus is the reachability of the remote service as last observed
// by the connectivity monitor.
type RemoteStatus string

const (
	RemoteUnknown      RemoteStatus = "unknown"
	RemoteConnecting   RemoteStatus = "connecting"
	RemoteConnected    RemoteStatus = "connected"
	RemoteDisconnected RemoteStatus = "disconnected"
)

// ConnectivityState combines the two independent connectivity signals with
// the user's forced-offline override. It is derived state and never
// persisted.
type ConnectivityState struct {
	// BrowserOnline is the raw network-interface signal: the device has
	// some network, which says nothing about the remote service.
	BrowserOnline bool `json:"browser_online"`

	// RemoteReachable is the probed reachability of the remote service.
	RemoteReachable RemoteStatus `json:"remote_reachable"`

	// OfflineModeForced is the explicit user override that disables all
	// remote attempts regardless of the signals above.
	OfflineModeForced bool `json:"offline_mode_forced"`
}

// SyncEligible reports whether a drain pass may proceed: network up,
// remote confirmed reachable, and no forced-offline override.
func (s ConnectivityState) SyncEligible() bool {
	return s.BrowserOnline && s.RemoteReachable == RemoteConnected && !s.OfflineModeForced
}
