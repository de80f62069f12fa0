package voteclient

// State is the session state of a Client.
//
//	Disconnected -> Connecting -> ConnectedNotVoted -> ConnectedVoted
//
// Any close of the transport returns to Disconnected. The voted flag itself
// survives, so reconnecting after a confirmed vote lands in ConnectedVoted.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnectedNotVoted
	StateConnectedVoted
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnectedNotVoted:
		return "connected_not_voted"
	case StateConnectedVoted:
		return "connected_voted"
	default:
		return "unknown"
	}
}

// Connected reports whether the transport is open.
func (s State) Connected() bool {
	return s == StateConnectedNotVoted || s == StateConnectedVoted
}
