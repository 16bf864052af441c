// Package engine ties the typing core together: it builds queries,
// feeds key strokes through the unit pipeline, and exposes rendering
// snapshots, statistics, and the final session result.
package engine

import (
	"log/slog"
	"time"

	"romatype/internal/chunk"
	"romatype/internal/dict"
	"romatype/internal/keystroke"
	"romatype/internal/query"
	"romatype/internal/statistics"
	"romatype/internal/vocabulary"
)

type state int

const (
	stateUninitialized state = iota
	stateReady
	stateStarted
)

// Events are optional callbacks fired while typing. Nil fields are
// skipped.
type Events struct {
	// OnStroke fires for every accepted call to StrokeKey.
	OnStroke func(key keystroke.Key, classification keystroke.HitMiss)
	// OnSpellFinished fires when a stroke completes a spell element,
	// with the wrong strokes charged to it.
	OnSpellFinished func(sp string, wrongCount int)
	// OnUnitConfirmed fires when a stroke confirms a unit.
	OnUnitConfirmed func()
	// OnFinished fires when the last unit of the query is confirmed.
	OnFinished func()
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards nothing
// and logs through slog.Default.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithEvents installs typing event callbacks.
func WithEvents(ev Events) Option {
	return func(e *Engine) { e.events = ev }
}

// Engine is the session state machine. It is not safe for concurrent
// use; a session belongs to one goroutine.
type Engine struct {
	state  state
	dict   *dict.Dictionary
	log    *slog.Logger
	events Events

	seq   *sequencer
	infos []*vocabulary.Info

	startedAt   time.Time
	lastElapsed time.Duration
}

// New builds an engine over the dictionary. Init must be called before
// Start.
func New(d *dict.Dictionary, opts ...Option) *Engine {
	e := &Engine{dict: d, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init builds the query and resets the session. It fails once typing
// has started; build a new engine for a new session.
func (e *Engine) Init(req query.Request) error {
	if e.state == stateStarted {
		return ErrAlreadyStarted
	}
	q, err := req.Build(e.dict)
	if err != nil {
		return err
	}
	e.seq = newSequencer(q.Units())
	e.infos = q.VocabularyInfos()
	e.state = stateReady

	e.log.Debug("query initialized",
		slog.Int("units", len(q.Units())),
		slog.Int("vocabularies", len(q.VocabularyInfos())))
	return nil
}

// AppendQuery builds another query and appends its units to the
// pipeline. Appending works both before and after Start, including on a
// finished session, which then resumes.
func (e *Engine) AppendQuery(req query.Request) error {
	if e.state == stateUninitialized {
		return ErrNotInitialized
	}
	q, err := req.Build(e.dict)
	if err != nil {
		return err
	}
	e.seq.appendUnits(q.Units())
	e.infos = append(e.infos, q.VocabularyInfos()...)

	e.log.Debug("query appended", slog.Int("units", len(q.Units())))
	return nil
}

// Start activates the first unit and starts the session clock.
func (e *Engine) Start() error {
	switch e.state {
	case stateUninitialized:
		return ErrNotInitialized
	case stateStarted:
		return ErrAlreadyStarted
	}
	e.seq.moveNext()
	e.startedAt = time.Now()
	e.state = stateStarted
	return nil
}

// StrokeOutcome is what one key stroke did to the session.
type StrokeOutcome struct {
	Classification keystroke.HitMiss
	// UnitConfirmed reports that the stroke confirmed the active unit.
	UnitConfirmed bool
	// Finished reports that the query is now complete.
	Finished bool
}

// StrokeKey feeds one key stroke, timing it against the session clock.
func (e *Engine) StrokeKey(key keystroke.Key) (StrokeOutcome, error) {
	return e.StrokeKeyWithElapsed(key, time.Since(e.startedAt))
}

// StrokeKeyWithElapsed feeds one key stroke at an explicit session
// time. elapsed must be non-decreasing across calls.
func (e *Engine) StrokeKeyWithElapsed(key keystroke.Key, elapsed time.Duration) (StrokeOutcome, error) {
	if e.state != stateStarted {
		if e.state == stateUninitialized {
			return StrokeOutcome{}, ErrNotInitialized
		}
		return StrokeOutcome{}, ErrNotStarted
	}
	if e.seq.isFinished() {
		return StrokeOutcome{}, ErrFinished
	}

	res := e.seq.stroke(elapsed, key)
	e.lastElapsed = elapsed

	outcome := StrokeOutcome{
		Classification: keystroke.Hit,
		UnitConfirmed:  res.Confirmed,
		Finished:       e.seq.isFinished(),
	}
	if res.Kind == chunk.StrokeWrong {
		outcome.Classification = keystroke.Miss
	}

	e.fireEvents(key, res, outcome)
	return outcome, nil
}

func (e *Engine) fireEvents(key keystroke.Key, res chunk.StrokeResult, outcome StrokeOutcome) {
	if e.events.OnStroke != nil {
		e.events.OnStroke(key, outcome.Classification)
	}
	if e.events.OnSpellFinished != nil && res.SpellFinished != nil {
		e.events.OnSpellFinished(string(res.SpellFinished.Spell), res.SpellFinished.WrongCount)
	}
	if e.events.OnUnitConfirmed != nil && outcome.UnitConfirmed {
		e.events.OnUnitConfirmed()
	}
	if e.events.OnFinished != nil && outcome.Finished {
		e.events.OnFinished()
	}
}

// IsFinished reports whether every unit of the query is confirmed.
func (e *Engine) IsFinished() bool {
	return e.state == stateStarted && e.seq.isFinished()
}

// VocabularyInfos returns the query's vocabulary in display order.
func (e *Engine) VocabularyInfos() []*vocabulary.Info { return e.infos }

// DisplayInfo rebuilds the rendering snapshot. lap may be zero to skip
// lap tracking.
func (e *Engine) DisplayInfo(lap statistics.LapSpec) (*DisplayInfo, error) {
	if e.state == stateUninitialized {
		return nil, ErrNotInitialized
	}
	return e.seq.displayInfo(lap), nil
}

// Result seals the finished session into a result record.
func (e *Engine) Result(lap statistics.LapSpec) (statistics.Result, error) {
	if e.state != stateStarted || !e.seq.isFinished() {
		return statistics.Result{}, ErrNotFinished
	}
	info := e.seq.displayInfo(lap)
	elapsed, ok := e.seq.lastStrokeElapsed()
	if !ok {
		elapsed = e.lastElapsed
	}
	return statistics.NewResult(elapsed, info.Stats, info.Laps, info.Skill), nil
}
