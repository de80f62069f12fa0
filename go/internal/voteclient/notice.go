package voteclient

import "time"

// NoticeKind classifies user-facing notices.
type NoticeKind string

const (
	NoticeConnected     NoticeKind = "connected"
	NoticeDisconnected  NoticeKind = "disconnected"
	NoticeNotConnected  NoticeKind = "not_connected"
	NoticeAlreadyVoted  NoticeKind = "already_voted"
	NoticeVotePending   NoticeKind = "vote_pending"
	NoticeUnknownOption NoticeKind = "unknown_option"
	NoticeSendFailed    NoticeKind = "send_failed"
	NoticeVoteConfirmed NoticeKind = "vote_confirmed"
	NoticeServerError   NoticeKind = "server_error"
)

// Notice is a message meant for the person using the client.
type Notice struct {
	Kind NoticeKind
	Text string
	At   time.Time
}

// Notifier receives notices. Implementations must not call back into the client synchronously.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
