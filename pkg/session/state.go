package session

// State is the session lifecycle state.
type State string

const (
	// StateAnonymous is the initial state: no credential, nothing persisted.
	StateAnonymous State = "anonymous"

	// StateAuthenticating is a login round-trip in flight.
	StateAuthenticating State = "authenticating"

	// StateAuthenticated is a credential accepted by the last validation.
	StateAuthenticated State = "authenticated"

	// StateRefreshing is a refresh round-trip in flight.
	StateRefreshing State = "refreshing"

	// StateExpired is a credential the backend refused to refresh.
	StateExpired State = "expired"
)

// event names a lifecycle trigger for the transition table.
type event string

const (
	eventLoginStart   event = "login_start"
	eventLoginOK      event = "login_ok"
	eventLoginFail    event = "login_fail"
	eventRefreshStart event = "refresh_start"
	eventRefreshOK    event = "refresh_ok"
	eventRefreshFail  event = "refresh_fail"
	eventLogout       event = "logout"
	eventRestore      event = "restore"
)

// transitions is the legality table, keyed [from][event] with the allowed
// target states. Nested-map shape keeps lookups O(1). Refresh is legal from
// every state because restore fires it and overlapping calls are allowed to
// race to completion.
var transitions = map[State]map[event][]State{
	StateAnonymous: {
		eventLoginStart:   {StateAuthenticating},
		eventRefreshStart: {StateRefreshing},
		eventRestore:      {StateAuthenticated, StateAnonymous},
		eventLogout:       {StateAnonymous},
	},
	StateAuthenticating: {
		eventLoginOK:   {StateAuthenticated},
		eventLoginFail: {StateAnonymous, StateExpired},
	},
	StateAuthenticated: {
		eventLoginStart:   {StateAuthenticating},
		eventRefreshStart: {StateRefreshing},
		eventLogout:       {StateAnonymous},
	},
	StateRefreshing: {
		eventRefreshOK:    {StateAuthenticated},
		eventRefreshFail:  {StateExpired, StateAnonymous},
		eventRefreshStart: {StateRefreshing},
		eventLogout:       {StateAnonymous},
	},
	StateExpired: {
		eventLoginStart:   {StateAuthenticating},
		eventRefreshStart: {StateRefreshing},
		eventLogout:       {StateAnonymous},
	},
}

// allowed reports whether the table permits moving to target on ev.
func allowed(from, to State, ev event) bool {
	targets, ok := transitions[from][ev]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}
