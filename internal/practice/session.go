// Package practice implements the practice loop: resolve a prompt for the
// selected language and scenario, then classify the learner's response.
package practice

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lojasmm/convostarter/internal/logger"
)

// Delays are the simulated latencies of prompt generation and response checking.
type Delays struct {
	Generate time.Duration
	Check    time.Duration
}

var DefaultDelays = Delays{Generate: 500 * time.Millisecond, Check: 700 * time.Millisecond}

// Snapshot is the displayable state of a session.
type Snapshot struct {
	Language   string `json:"language"`
	Scenario   string `json:"scenario"`
	Status     Status `json:"status"`
	Badge      string `json:"badge"`
	Prompt     string `json:"prompt,omitempty"`
	Error      string `json:"error,omitempty"`
	Feedback   string `json:"feedback,omitempty"`
	Tier       Tier   `json:"tier,omitempty"`
	Response   string `json:"response"`
	Submitting bool   `json:"submitting"`
}

// Session is one learner's selection state machine. It is safe for
// concurrent use; delayed work completes on clock goroutines.
type Session struct {
	resolver *Resolver
	clock    clockwork.Clock
	delays   Delays
	log      *logger.Logger

	mu         sync.Mutex
	language   string
	scenario   string
	status     Status
	prompt     string
	err        error
	tier       Tier
	response   string
	submitting bool
	resolving  *task
	checking   *task
	observers  []func(Snapshot)
	closed     bool
}

// task is one delayed unit of work. Cancelling ctx means its result must not
// be committed.
type task struct {
	ctx    context.Context
	cancel context.CancelFunc
	timer  clockwork.Timer
}

func newTask() *task {
	ctx, cancel := context.WithCancel(context.Background())
	return &task{ctx: ctx, cancel: cancel}
}

func (t *task) abandon() {
	t.cancel()
	if t.timer != nil {
		t.timer.Stop()
	}
}

func NewSession(resolver *Resolver, clock clockwork.Clock, delays Delays, log *logger.Logger) *Session {
	return &Session{
		resolver: resolver,
		clock:    clock,
		delays:   delays,
		log:      log,
		status:   StatusIdle,
	}
}

// OnChange registers fn to be called with the new state whenever a delayed
// resolution or check completes. It is not called for Select or Submit,
// whose callers receive the snapshot directly.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Select sets both selection fields. Any pending resolution is abandoned and
// the prompt, error, feedback and response draft are cleared. With both ids
// set a new resolution starts, even when the pair is unchanged.
func (s *Session) Select(languageID, scenarioID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.snapshotLocked()
	}

	if s.resolving != nil {
		s.resolving.abandon()
		s.resolving = nil
	}
	if s.checking != nil {
		// The check still runs to completion so Submitting clears, but its
		// feedback belongs to the old prompt.
		s.checking.cancel()
	}

	s.language = languageID
	s.scenario = scenarioID
	s.prompt = ""
	s.err = nil
	s.tier = ""
	s.response = ""

	if languageID == "" || scenarioID == "" {
		s.status = StatusIdle
		return s.snapshotLocked()
	}

	s.status = StatusGenerating
	t := newTask()
	t.timer = s.clock.AfterFunc(s.delays.Generate, func() {
		s.finishResolve(t, languageID, scenarioID)
	})
	s.resolving = t
	s.log.Debug("resolving prompt", "language", languageID, "scenario", scenarioID)
	return s.snapshotLocked()
}

// SetLanguage changes only the language.
func (s *Session) SetLanguage(languageID string) Snapshot {
	s.mu.Lock()
	scenario := s.scenario
	s.mu.Unlock()
	return s.Select(languageID, scenario)
}

// SetScenario changes only the scenario.
func (s *Session) SetScenario(scenarioID string) Snapshot {
	s.mu.Lock()
	language := s.language
	s.mu.Unlock()
	return s.Select(language, scenarioID)
}

// SetResponse stores the response draft without submitting it.
func (s *Session) SetResponse(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.response = text
}

// Submit checks the response against the active prompt. Validation failures
// are returned and also shown as the session error. While a check is pending
// the call is ignored and ErrSubmitPending returned.
func (s *Session) Submit(response string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.snapshotLocked(), ErrSessionClosed
	}
	if s.submitting {
		return s.snapshotLocked(), ErrSubmitPending
	}

	s.response = response
	if s.prompt == "" {
		s.err = ErrMissingPrompt
		return s.snapshotLocked(), ErrMissingPrompt
	}
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		s.err = ErrEmptyResponse
		return s.snapshotLocked(), ErrEmptyResponse
	}

	s.err = nil
	s.tier = ""
	s.submitting = true

	t := newTask()
	t.timer = s.clock.AfterFunc(s.delays.Check, func() {
		s.finishCheck(t, trimmed)
	})
	s.checking = t
	return s.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close abandons all pending work. A closed session ignores further input.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.observers = nil
	if s.resolving != nil {
		s.resolving.abandon()
		s.resolving = nil
	}
	if s.checking != nil {
		s.checking.abandon()
		s.checking = nil
	}
	s.submitting = false
}

func (s *Session) finishResolve(t *task, languageID, scenarioID string) {
	s.mu.Lock()
	if t.ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	out := s.resolver.Resolve(t.ctx, languageID, scenarioID)
	t.cancel()
	s.resolving = nil

	s.status = out.Status
	s.prompt = out.Prompt
	s.err = nil
	if out.Status != StatusReady {
		s.err = out.Err
	}
	snap, observers := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()

	s.log.Debug("prompt resolved", "language", languageID, "scenario", scenarioID, "status", out.Status)
	notify(observers, snap)
}

func (s *Session) finishCheck(t *task, trimmed string) {
	s.mu.Lock()
	if s.checking == t {
		s.checking = nil
	}
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.submitting = false
	if t.ctx.Err() == nil {
		s.tier = Classify(trimmed)
	}
	t.cancel()
	snap, observers := s.snapshotLocked(), s.observersLocked()
	s.mu.Unlock()

	s.log.Debug("response checked", "tier", snap.Tier, "words", len(strings.Fields(trimmed)))
	notify(observers, snap)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Language:   s.language,
		Scenario:   s.scenario,
		Status:     s.status,
		Badge:      s.status.Badge(),
		Prompt:     s.prompt,
		Error:      UserMessage(s.err),
		Feedback:   s.tier.Message(),
		Tier:       s.tier,
		Response:   s.response,
		Submitting: s.submitting,
	}
}

func (s *Session) observersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), len(s.observers))
	copy(out, s.observers)
	return out
}

func notify(observers []func(Snapshot), snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
