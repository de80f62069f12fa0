package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType is the "tipo" discriminator of server messages.
type MessageType string

const (
	TypeResultsUpdated MessageType = "resultados_atualizados"
	TypeVoteRegistered MessageType = "voto_registrado"
	TypeError          MessageType = "erro"
	TypeCurrentPoll    MessageType = "enquete_atual"
)

// ActionVote is the only client action the service understands.
const ActionVote = "votar"

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// Message is a decoded server message.
type Message interface {
	Type() MessageType
}

// VoteRequest is sent by the client to cast its vote
type VoteRequest struct {
	Action string `json:"acao"`
	Option string `json:"opcao"`
}

// NewVoteRequest builds the request for option.
func NewVoteRequest(option string) VoteRequest {
	return VoteRequest{Action: ActionVote, Option: option}
}

// Encode serializes the request as a text frame payload.
func (r VoteRequest) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// OptionCount is one entry of a results broadcast.
type OptionCount struct {
	Option string `json:"opcao"`
	Votes  int    `json:"votos"`
}

// ResultsUpdated carries the full tally. It replaces any earlier one.
type ResultsUpdated struct {
	PollID     string        `json:"enquete_id,omitempty"`
	Question   string        `json:"pergunta,omitempty"`
	Options    []OptionCount `json:"opcoes"`
	TotalVotes int           `json:"total_votos,omitempty"`
	// AlreadyVoted is only present on the snapshot sent right after connecting.
	AlreadyVoted *bool `json:"ja_votou,omitempty"`
}

func (ResultsUpdated) Type() MessageType { return TypeResultsUpdated }

// VoteRegistered confirms this client's vote.
type VoteRegistered struct {
	Option  string `json:"opcao,omitempty"`
	Message string `json:"mensagem"`
}

func (VoteRegistered) Type() MessageType { return TypeVoteRegistered }

// ErrorMessage is a server-declared failure, relayed verbatim to the user.
type ErrorMessage struct {
	Message string `json:"mensagem"`
}

func (ErrorMessage) Type() MessageType { return TypeError }

// Poll describes the running poll as the server knows it.
type Poll struct {
	ID       string   `json:"id"`
	Question string   `json:"pergunta"`
	Options  []string `json:"opcoes"`
}

// CurrentPoll is sent once after connecting.
type CurrentPoll struct {
	Poll Poll `json:"enquete"`
}

func (CurrentPoll) Type() MessageType { return TypeCurrentPoll }

type envelope struct {
	Type MessageType `json:"tipo"`
}

// Decode parses a raw frame into one of the known message kinds.
// It returns ErrMalformed for invalid JSON or payloads that do not match
// their declared kind, and ErrUnknownType for any other "tipo".
func Decode(raw []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch env.Type {
	case TypeResultsUpdated:
		var msg ResultsUpdated
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return msg, nil

	case TypeVoteRegistered:
		var msg VoteRegistered
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return msg, nil

	case TypeError:
		var msg ErrorMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return msg, nil

	case TypeCurrentPoll:
		var msg CurrentPoll
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, env.Type, err)
		}
		return msg, nil

	case "":
		return nil, fmt.Errorf("%w: missing tipo", ErrMalformed)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}
