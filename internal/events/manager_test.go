package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/game"
	"redline/internal/game/gametest"
)

func newManager(r game.Rand) (*Manager, *InstantSleeper, *gametest.Clock) {
	sleeper := &InstantSleeper{}
	clock := gametest.NewClock(gametest.Epoch)
	return NewManager(r, clock, sleeper), sleeper, clock
}

func TestShouldTriggerEvent(t *testing.T) {
	m, _, _ := newManager(gametest.NewRand(0.05, 0.1, 0.5))
	assert.Equal(t, DefaultEventChance, m.EventChance())
	assert.True(t, m.ShouldTriggerEvent())
	assert.False(t, m.ShouldTriggerEvent())
	assert.False(t, m.ShouldTriggerEvent())

	m.SetEventChance(2)
	assert.Equal(t, 1.0, m.EventChance())
	m.SetEventChance(-1)
	assert.Equal(t, 0.0, m.EventChance())
}

func TestGenerateEventCategory(t *testing.T) {
	testCases := []struct {
		name       string
		heat       float64
		reputation int
		floats     []float64
		pick       int
		want       string
	}{
		{"high heat beats high reputation", 80, 5000, nil, 1, "system_lockdown"},
		{"high heat", 75.5, 0, nil, 0, "trace_initiated"},
		{"high reputation", 10, 1500, nil, 0, "elite_invitation"},
		{"opportunity at the boundaries", 75, 1000, []float64{0.49}, 2, "backdoor_found"},
		{"threat", 0, 0, []float64{0.5}, 1, "rival_hacker"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := gametest.NewRand(tc.floats...).WithInts(tc.pick)
			r.FallbackFloat = 0.99
			m, _, _ := newManager(r)
			e := m.GenerateEvent(tc.heat, tc.reputation)
			assert.Equal(t, tc.want, e.Template)
		})
	}
}

func TestGenerateEventRecordsPendingAndHistory(t *testing.T) {
	m, _, clock := newManager(gametest.NewRand(0.2, 0.8))
	_, ok := m.LastEventTime()
	assert.False(t, ok)

	first := m.GenerateEvent(0, 0)
	clock.Advance(time.Minute)
	second := m.GenerateEvent(0, 0)

	assert.True(t, strings.HasPrefix(first.ID, "evt-"))
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, gametest.Epoch, first.CreatedAt)

	last, ok := m.LastEventTime()
	require.True(t, ok)
	assert.Equal(t, gametest.Epoch.Add(time.Minute), last)

	assert.Len(t, m.PendingEvents(), 2)
	assert.Len(t, m.History(), 2)

	got, ok := m.Event(second.ID)
	require.True(t, ok)
	assert.Equal(t, second.Template, got.Template)
}

func TestCreditCostVetoesOutcome(t *testing.T) {
	m, _, _ := newManager(gametest.NewRand())
	s := game.NewGameState("neo", 100, gametest.Epoch)
	s.AddCredits(-960)
	s.IncreaseHeat(80)

	e := m.GenerateEvent(s.Heat(), s.Reputation())
	require.Equal(t, "trace_initiated", e.Template)

	res, err := m.HandleChoice(context.Background(), e.ID, 0, s)
	require.NoError(t, err)
	assert.Equal(t, StatusInsufficientCredits, res.Status)
	assert.Equal(t, 40, s.Credits())
	assert.Equal(t, 80.0, s.Heat(), "the outcome was skipped")
	assert.Empty(t, m.PendingEvents())

	again, err := m.HandleChoice(context.Background(), e.ID, 1, s)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknownEvent, again.Status)
	assert.Equal(t, 80.0, s.Heat())
	assert.Len(t, m.History(), 1)
}

func TestInvalidChoiceStillConsumesEvent(t *testing.T) {
	m, _, _ := newManager(gametest.NewRand())
	s := game.NewGameState("neo", 100, gametest.Epoch)
	e := m.GenerateEvent(90, 0)

	for _, choice := range []int{-1, 7} {
		res, err := m.HandleChoice(context.Background(), e.ID, choice, s)
		require.NoError(t, err)
		if choice == -1 {
			assert.Equal(t, StatusInvalidChoice, res.Status)
		} else {
			assert.Equal(t, StatusUnknownEvent, res.Status)
		}
	}
	assert.Empty(t, m.PendingEvents())
	assert.Equal(t, 1000, s.Credits())
}

func TestReputationCostFloorsAtZero(t *testing.T) {
	m, _, _ := newManager(gametest.NewRand())
	s := game.NewGameState("neo", 10, gametest.Epoch)
	s.IncreaseHeat(80)
	e := m.GenerateEvent(s.Heat(), s.Reputation())

	res, err := m.HandleChoice(context.Background(), e.ID, 1, s)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, res.Status)
	assert.Equal(t, 0, s.Reputation())
	assert.Equal(t, 30.0, s.Heat())
	assert.Equal(t, -10, res.ReputationDelta)
	assert.Equal(t, "Go dark immediately", res.Choice.Label)
	assert.Len(t, res.Effects, 2)
}

func TestTimeCostWaits(t *testing.T) {
	m, sleeper, _ := newManager(gametest.NewRand(0.1).WithInts(1))
	s := game.NewGameState("neo", 0, gametest.Epoch)
	e := m.GenerateEvent(0, 0)
	require.Equal(t, "data_cache", e.Template)

	res, err := m.HandleChoice(context.Background(), e.ID, 0, s)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, res.Status)
	assert.Equal(t, 30*time.Second, sleeper.Total())
	assert.Equal(t, 1100, s.Credits())
}

func TestCancelledDelayConsumesEvent(t *testing.T) {
	m, _, _ := newManager(gametest.NewRand(0.1).WithInts(1))
	s := game.NewGameState("neo", 0, gametest.Epoch)
	e := m.GenerateEvent(0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.HandleChoice(ctx, e.ID, 0, s)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1000, s.Credits())
	assert.Empty(t, m.PendingEvents())
}

func TestAIBattle(t *testing.T) {
	testCases := []struct {
		name     string
		roll     float64
		won      bool
		rep      int
		heat     float64
		exploits []string
	}{
		{"win", 0.31, true, 100, 40, []string{"AI_Slayer"}},
		{"threshold loses", 0.3, false, 0, 90, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, sleeper, _ := newManager(gametest.NewRand(0.9, tc.roll).WithInts(2))
			s := game.NewGameState("neo", 0, gametest.Epoch)
			e := m.GenerateEvent(s.Heat(), s.Reputation())
			require.Equal(t, "ai_defense", e.Template)

			res, err := m.HandleChoice(context.Background(), e.ID, 0, s)
			require.NoError(t, err)
			assert.Equal(t, AIBattle, res.Special)
			assert.Equal(t, tc.won, res.Won)
			assert.Equal(t, tc.rep, s.Reputation())
			assert.Equal(t, tc.rep, res.ReputationDelta)
			assert.Equal(t, tc.heat, s.Heat())
			assert.Equal(t, tc.exploits, s.DiscoveredExploits())
			assert.Equal(t, 5*time.Second, sleeper.Total())
		})
	}
}

func TestNegotiation(t *testing.T) {
	m, _, _ := newManager(gametest.NewRand(0.51).WithInts(1))
	s := game.NewGameState("neo", 1500, gametest.Epoch)
	e := m.GenerateEvent(s.Heat(), s.Reputation())
	require.Equal(t, "black_market_deal", e.Template)

	res, err := m.HandleChoice(context.Background(), e.ID, 1, s)
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, 1250, s.Credits())
	assert.Equal(t, -10, res.ReputationDelta)
}

func TestAddedSpecialEffects(t *testing.T) {
	testCases := []struct {
		special Special
		won     bool
		rep     int
		heat    float64
		credits int
	}{
		{EncryptedFile, true, 100, 50, 1150},
		{EncryptedFile, false, 100, 50, 1000},
		{PersistentAccess, true, 120, 50, 1000},
		{PersistentAccess, false, 100, 65, 1000},
		{HoneypotReversed, true, 150, 30, 1000},
		{HoneypotReversed, false, 100, 80, 1000},
		{Sabotage, true, 120, 50, 1000},
		{Sabotage, false, 85, 60, 1000},
	}

	for _, tc := range testCases {
		name := tc.special.String() + "/lose"
		if tc.won {
			name = tc.special.String() + "/win"
		}
		t.Run(name, func(t *testing.T) {
			s := game.NewGameState("neo", 100, gametest.Epoch)
			s.IncreaseHeat(50)
			var res Resolution
			p := tc.special.plan()
			if tc.won {
				p.win(s, &res)
			} else {
				p.lose(s, &res)
			}
			assert.Equal(t, tc.rep, s.Reputation())
			assert.Equal(t, tc.heat, s.Heat())
			assert.Equal(t, tc.credits, s.Credits())
			assert.NotEmpty(t, res.Effects)
		})
	}
}

func TestEverySpecialHasAPlan(t *testing.T) {
	for sp := Negotiation; sp <= Sabotage; sp++ {
		p := sp.plan()
		assert.NotNil(t, p.win, sp.String())
		assert.NotNil(t, p.lose, sp.String())
		assert.Positive(t, p.delay, sp.String())
		assert.NotEqual(t, "none", sp.String())
	}
	assert.Nil(t, Special(0).plan().win)
}

func TestDeadlineIsAdvisory(t *testing.T) {
	m, _, clock := newManager(gametest.NewRand())
	e := m.GenerateEvent(90, 0)

	deadline, ok := e.Deadline()
	require.True(t, ok)
	assert.Equal(t, gametest.Epoch.Add(30*time.Second), deadline)

	clock.Advance(time.Hour)
	_, ok = m.Event(e.ID)
	assert.True(t, ok, "events do not expire")

	_, ok = RandomEvent{}.Deadline()
	assert.False(t, ok)
}
