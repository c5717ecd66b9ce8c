package events

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"redline/internal/game"
)

// DefaultEventChance is the per-turn probability that an event fires.
const DefaultEventChance = 0.1

const (
	highHeatThreshold       = 75.0
	highReputationThreshold = 1000
)

// Manager generates events and resolves choices against a GameState.
// Generated events stay pending until a choice is made for them.
type Manager struct {
	pending       []RandomEvent
	history       []RandomEvent
	chance        float64
	lastEventTime *time.Time

	rand    game.Rand
	clock   game.Clock
	sleeper Sleeper
}

// NewManager creates a manager with the default event chance.
// A nil clock uses the wall clock and a nil sleeper waits for real.
func NewManager(r game.Rand, clock game.Clock, sleeper Sleeper) *Manager {
	if clock == nil {
		clock = game.SystemClock
	}
	if sleeper == nil {
		sleeper = RealSleeper{}
	}
	return &Manager{
		chance:  DefaultEventChance,
		rand:    r,
		clock:   clock,
		sleeper: sleeper,
	}
}

func (m *Manager) EventChance() float64 { return m.chance }

// SetEventChance sets the trigger probability, clamped to [0, 1].
func (m *Manager) SetEventChance(p float64) {
	m.chance = max(0, min(1, p))
}

// ShouldTriggerEvent draws once against the event chance.
func (m *Manager) ShouldTriggerEvent() bool {
	return m.rand.Float64() < m.chance
}

// GenerateEvent picks an event for the current heat and reputation and
// makes it pending. High heat wins over high reputation; otherwise a coin
// flip chooses between an opportunity and a threat.
func (m *Manager) GenerateEvent(heat float64, reputation int) RandomEvent {
	var pool []RandomEvent
	switch {
	case heat > highHeatThreshold:
		pool = highHeatEvents()
	case reputation > highReputationThreshold:
		pool = highReputationEvents()
	case m.rand.Float64() < 0.5:
		pool = opportunityEvents()
	default:
		pool = threatEvents()
	}

	now := m.clock.Now()
	event := game.Pick(m.rand, pool)
	event.ID = "evt-" + uuid.NewString()
	event.CreatedAt = now

	m.lastEventTime = &now
	m.pending = append(m.pending, event)
	m.history = append(m.history, event.clone())
	return event.clone()
}

// PendingEvents returns the events awaiting a choice, oldest first.
func (m *Manager) PendingEvents() []RandomEvent {
	out := make([]RandomEvent, 0, len(m.pending))
	for _, e := range m.pending {
		out = append(out, e.clone())
	}
	return out
}

// History returns every event ever generated, oldest first.
func (m *Manager) History() []RandomEvent {
	out := make([]RandomEvent, 0, len(m.history))
	for _, e := range m.history {
		out = append(out, e.clone())
	}
	return out
}

// LastEventTime reports when the last event was generated.
func (m *Manager) LastEventTime() (time.Time, bool) {
	if m.lastEventTime == nil {
		return time.Time{}, false
	}
	return *m.lastEventTime, true
}

// Event returns the pending event with the given id.
func (m *Manager) Event(id string) (RandomEvent, bool) {
	for _, e := range m.pending {
		if e.ID == id {
			return e.clone(), true
		}
	}
	return RandomEvent{}, false
}

// Status says how a choice was resolved.
type Status int

const (
	StatusResolved Status = iota
	StatusUnknownEvent
	StatusInvalidChoice
	StatusInsufficientCredits
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusUnknownEvent:
		return "unknown event"
	case StatusInvalidChoice:
		return "invalid choice"
	case StatusInsufficientCredits:
		return "insufficient credits"
	default:
		return "unknown"
	}
}

// Effect is one line of the resolution ledger.
type Effect struct {
	Style game.Style
	Text  string
}

// Resolution reports what handling a choice did.
type Resolution struct {
	Status Status
	Event  RandomEvent
	Choice EventChoice
	// Effects lists the state changes in the order they were applied.
	Effects []Effect
	// Special is set when the outcome was a Special; Won is its roll.
	Special Special
	Won     bool
	// ReputationDelta is the net reputation change on the game state.
	ReputationDelta int
}

func (r *Resolution) note(style game.Style, format string, args ...any) {
	r.Effects = append(r.Effects, Effect{Style: style, Text: fmt.Sprintf(format, args...)})
}

// HandleChoice resolves choice for the pending event eventID.
//
// The event stops being pending as soon as it is found, whatever happens
// next. A credit cost the agent cannot pay skips the outcome. Other costs
// are always paid. The only error is ctx ending during a delay; the event
// stays consumed and no later effects apply.
func (m *Manager) HandleChoice(ctx context.Context, eventID string, choice int, s *game.GameState) (Resolution, error) {
	idx := slices.IndexFunc(m.pending, func(e RandomEvent) bool { return e.ID == eventID })
	if idx < 0 {
		return Resolution{Status: StatusUnknownEvent}, nil
	}
	event := m.pending[idx]
	m.pending = slices.Delete(m.pending, idx, idx+1)

	res := Resolution{Event: event.clone()}
	if choice < 0 || choice >= len(event.Choices) {
		res.Status = StatusInvalidChoice
		return res, nil
	}
	res.Choice = event.Choices[choice]

	before := s.Reputation()
	if ok, err := m.payCost(ctx, res.Choice.Cost, s, &res); err != nil {
		res.ReputationDelta = s.Reputation() - before
		return res, err
	} else if !ok {
		res.Status = StatusInsufficientCredits
		res.ReputationDelta = s.Reputation() - before
		return res, nil
	}

	err := m.applyOutcome(ctx, res.Choice.Outcome, s, &res)
	res.ReputationDelta = s.Reputation() - before
	return res, err
}

func (m *Manager) payCost(ctx context.Context, cost Cost, s *game.GameState, res *Resolution) (bool, error) {
	switch c := cost.(type) {
	case nil:
	case CreditCost:
		if !s.SpendCredits(int(c)) {
			res.note(game.StyleError, "[!] Insufficient credits!")
			return false, nil
		}
		res.note(game.StyleWarning, "[-] Paid %d credits", int(c))
	case ReputationCost:
		s.AddReputation(-int(c))
		res.note(game.StyleWarning, "[-] Lost %d reputation", int(c))
	case HeatCost:
		s.IncreaseHeat(float64(c))
		res.note(game.StyleWarning, "[!] Heat increased by %g%%", float64(c))
	case TimeCost:
		res.note(game.StyleNormal, "[>] Waiting %s...", c)
		if err := m.sleeper.Sleep(ctx, time.Duration(c)); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (m *Manager) applyOutcome(ctx context.Context, outcome Outcome, s *game.GameState, res *Resolution) error {
	switch o := outcome.(type) {
	case GainCredits:
		s.AddCredits(int(o))
		res.note(game.StyleSuccess, "[+] Gained %d credits!", int(o))
	case GainReputation:
		s.AddReputation(int(o))
		res.note(game.StyleSuccess, "[+] Gained %d reputation!", int(o))
	case ReduceHeat:
		s.DecreaseHeat(float64(o))
		res.note(game.StyleSuccess, "[+] Heat reduced by %g%%!", float64(o))
	case IncreaseHeat:
		s.IncreaseHeat(float64(o))
		res.note(game.StyleWarning, "[!] Heat increased by %g%%!", float64(o))
	case UnlockContent:
		s.UnlockTool(string(o))
		res.note(game.StyleSuccess, "[+] Unlocked: %s!", string(o))
	case MaintainAccess:
		res.note(game.StyleSuccess, "[+] Access maintained!")
	case SafeExit:
		res.note(game.StyleSuccess, "[+] Safely exited!")
	case Special:
		return m.resolveSpecial(ctx, o, s, res)
	}
	return nil
}
