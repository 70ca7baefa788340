package session

import (
	"fmt"
	"time"

	"github.com/abhisek/fridayfun/internal/questiongen"
)

// MaxHistory is the number of questions retained, most recent first.
const MaxHistory = 10

// ErrorMessage is the only failure text shown to users.
const ErrorMessage = "Oops! Something went wrong while generating the question."

// Phase is the state of the question lifecycle.
type Phase int

const (
	PhaseIdle    Phase = iota // No question yet
	PhaseLoading              // A generation is outstanding
	PhaseLoaded               // Showing the current question
	PhaseFailed               // Last generation failed; retry available
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// MarshalText renders the phase by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name.
func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*p = PhaseIdle
	case "loading":
		*p = PhaseLoading
	case "loaded":
		*p = PhaseLoaded
	case "failed":
		*p = PhaseFailed
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// Question is one generated dilemma. Immutable once created.
type Question struct {
	ID        string               `json:"id"`
	Category  questiongen.Category `json:"category"`
	OptionA   string               `json:"optionA"`
	OptionB   string               `json:"optionB"`
	Timestamp int64                `json:"timestamp"` // epoch ms

	// Fallback is set when the generator substituted its fixed pair.
	Fallback bool `json:"fallback,omitempty"`
}

// String renders the question as history context.
func (q Question) String() string {
	return q.OptionA + " OR " + q.OptionB
}

// CreatedAt returns the timestamp as a time.Time.
func (q Question) CreatedAt() time.Time {
	return time.UnixMilli(q.Timestamp)
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Phase    Phase                `json:"phase"`
	Category questiongen.Category `json:"category"`
	Current  *Question            `json:"current"`
	History  []Question           `json:"history"`

	// Recent is the display subset: up to four previous questions,
	// excluding the current one. Empty until there are at least two.
	Recent []Question `json:"recent"`

	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// HistoryContext maps history to the de-duplication strings sent with
// each generation request, preserving order.
func HistoryContext(history []Question) []string {
	out := make([]string, len(history))
	for i, q := range history {
		out[i] = q.String()
	}
	return out
}
