package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/fridayfun/internal/questiongen"
)

// DisplayRecent is how many previous questions the UI shows.
const DisplayRecent = 4

// Request describes one generator call issued by the store.
type Request struct {
	Token    uint64
	Category questiongen.Category
	History  []string
}

// Result is the outcome of a Request.
type Result struct {
	Token    uint64
	Category questiongen.Category
	Options  questiongen.Options
	Err      error
}

// Store owns the question session. It is not safe for concurrent use:
// every method except Generate must be called from a single owner, such
// as the Bubble Tea update loop or a Loop goroutine.
type Store struct {
	gen    questiongen.Generator
	logger *zap.Logger
	now    func() time.Time
	newID  func() string

	category questiongen.Category
	current  *Question
	history  []Question
	loading  bool
	errMsg   string

	// token is the latest issued request token.
	token uint64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for question timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides question id generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates a store in the idle state with the default category.
func NewStore(gen questiongen.Generator, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		gen:      gen,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		category: questiongen.DefaultCategory,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SelectCategory makes cat active and starts a request for it. Selecting
// the already active category is allowed.
func (s *Store) SelectCategory(cat questiongen.Category) Request {
	s.category = cat
	return s.begin(cat)
}

// Regenerate starts a request for the active category.
func (s *Store) Regenerate() Request {
	return s.begin(s.category)
}

func (s *Store) begin(cat questiongen.Category) Request {
	s.token++
	s.loading = true
	s.errMsg = ""
	return Request{
		Token:    s.token,
		Category: cat,
		History:  HistoryContext(s.history),
	}
}

// Generate runs the generator for req. It reads no store state and may
// be called from any goroutine.
func (s *Store) Generate(ctx context.Context, req Request) Result {
	opts, err := s.gen.Generate(ctx, questiongen.GenerateInput{
		Category:  req.Category,
		History:   req.History,
		RequestID: req.Token,
	})
	return Result{Token: req.Token, Category: req.Category, Options: opts, Err: err}
}

// Complete applies a finished request. Only the result for the latest
// issued token is applied; anything else is discarded and false is
// returned.
func (s *Store) Complete(res Result) bool {
	if !s.loading || res.Token != s.token {
		s.logger.Debug("discarding stale generation result",
			zap.Uint64("token", res.Token),
			zap.Uint64("latest", s.token),
			zap.String("category", string(res.Category)),
		)
		return false
	}

	s.loading = false

	if res.Err != nil {
		s.errMsg = ErrorMessage
		s.logger.Error("question generation failed",
			zap.Uint64("token", res.Token),
			zap.String("category", string(res.Category)),
			zap.Error(res.Err),
		)
		return true
	}

	q := Question{
		ID:        s.newID(),
		Category:  res.Category,
		OptionA:   res.Options.OptionA,
		OptionB:   res.Options.OptionB,
		Timestamp: s.now().UnixMilli(),
		Fallback:  res.Options.Fallback,
	}
	s.current = &q

	history := make([]Question, 0, MaxHistory)
	history = append(history, q)
	history = append(history, s.history...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	s.history = history

	s.logger.Debug("question generated",
		zap.Uint64("token", res.Token),
		zap.String("id", q.ID),
		zap.String("category", string(q.Category)),
		zap.Bool("fallback", q.Fallback),
	)
	return true
}

// Phase derives the lifecycle state.
func (s *Store) Phase() Phase {
	switch {
	case s.loading:
		return PhaseLoading
	case s.errMsg != "":
		return PhaseFailed
	case s.current != nil:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

// Category returns the active category.
func (s *Store) Category() questiongen.Category {
	return s.category
}

// Recent returns up to n previous questions, skipping the current one.
// Nothing is returned while history holds fewer than two entries.
func (s *Store) Recent(n int) []Question {
	if len(s.history) < 2 || n <= 0 {
		return nil
	}
	end := 1 + n
	if end > len(s.history) {
		end = len(s.history)
	}
	out := make([]Question, end-1)
	copy(out, s.history[1:end])
	return out
}

// Snapshot returns a copy of the session state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:    s.Phase(),
		Category: s.category,
		History:  make([]Question, len(s.history)),
		Recent:   s.Recent(DisplayRecent),
		Loading:  s.loading,
		Error:    s.errMsg,
	}
	copy(snap.History, s.history)
	if snap.Recent == nil {
		snap.Recent = []Question{}
	}
	if s.current != nil {
		q := *s.current
		snap.Current = &q
	}
	return snap
}
