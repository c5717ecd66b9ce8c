package mission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/game"
	"redline/internal/game/gametest"
)

func ids(missions []Mission) []string {
	out := make([]string, 0, len(missions))
	for _, m := range missions {
		out = append(out, m.ID)
	}
	return out
}

func TestAcceptStartsMissionOnce(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	tr := NewTracker()
	assert.Len(t, tr.Available(s), 6)

	m, err := tr.Accept("INIT-001", s, gametest.Epoch)
	require.NoError(t, err)
	assert.True(t, m.Active)
	require.NotNil(t, m.AcceptedAt)
	assert.True(t, s.IsMissionActive("INIT-001"))
	assert.Len(t, tr.Available(s), 5)
	assert.Equal(t, []string{"INIT-001"}, ids(tr.Active()))

	_, err = tr.Accept("INIT-001", s, gametest.Epoch)
	assert.ErrorIs(t, err, ErrMissionUnavailable)

	_, err = tr.Accept("NOPE-404", s, gametest.Epoch)
	assert.ErrorIs(t, err, ErrUnknownMission)
}

func TestRecordCompletesMissionExactlyOnce(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	tr := NewTracker()
	_, err := tr.Accept("INIT-001", s, gametest.Epoch)
	require.NoError(t, err)

	assert.Empty(t, tr.Record(TriggerScan, 1))
	done := tr.Record(TriggerDecrypt, 1)
	require.Len(t, done, 1)
	assert.Equal(t, "INIT-001", done[0].ID)
	assert.True(t, done[0].Completed)
	assert.False(t, done[0].Active)

	assert.Empty(t, tr.Record(TriggerDecrypt, 1))
	assert.Empty(t, tr.Active())
}

func TestRecordOnlyTouchesActiveMissions(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	tr := NewTracker()
	tr.Record(TriggerScan, 3)

	_, err := tr.Accept("RECON-001", s, gametest.Epoch)
	require.NoError(t, err)
	tr.Record(TriggerScan, 2)

	m, ok := tr.Mission("RECON-001")
	require.True(t, ok)
	assert.Equal(t, 2, m.Objectives[0].Progress)

	first, _ := tr.Mission("INIT-001")
	assert.Equal(t, 0, first.Objectives[0].Progress)

	assert.Empty(t, tr.Record(TriggerScan, 0))
}

func TestConditionsWaitForTriggerObjectives(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	tr := NewTracker()
	_, err := tr.Accept("DATA-001", s, gametest.Epoch)
	require.NoError(t, err)

	assert.Empty(t, tr.CheckConditions(s))
	m, _ := tr.Mission("DATA-001")
	assert.Equal(t, 0, m.Objectives[2].Progress, "heat condition waits for the other objectives")

	tr.Record(TriggerExploit, 1)
	tr.Record(TriggerDecrypt, 3)

	s.IncreaseHeat(60)
	assert.Empty(t, tr.CheckConditions(s))

	s.DecreaseHeat(20)
	done := tr.CheckConditions(s)
	require.Len(t, done, 1)
	assert.Equal(t, "DATA-001", done[0].ID)
	assert.Equal(t, 100.0, done[0].CompletionPercentage())
}

func TestNoFailuresUsesBaselineFromAcceptance(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	s.RecordFailedHack()

	tr := NewTracker()
	_, err := tr.Accept("GHOST-001", s, gametest.Epoch)
	require.NoError(t, err)
	tr.Record(TriggerHack, 5)

	assert.Len(t, tr.CheckConditions(s), 1, "failures before acceptance do not count")

	s2 := game.NewGameState("trinity", 0, gametest.Epoch)
	tr2 := NewTracker()
	_, err = tr2.Accept("GHOST-001", s2, gametest.Epoch)
	require.NoError(t, err)
	tr2.Record(TriggerHack, 5)
	s2.RecordFailedHack()

	assert.Empty(t, tr2.CheckConditions(s2))
	m, _ := tr2.Mission("GHOST-001")
	assert.True(t, m.Objectives[1].Completed, "heat condition still progresses")
	assert.False(t, m.Objectives[2].Completed)
}

func TestRestoreTrackerKeepsProgress(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	tr := NewTracker()
	_, err := tr.Accept("CORP-001", s, gametest.Epoch)
	require.NoError(t, err)
	tr.Record(TriggerFirewall, 1)
	tr.Record(TriggerExploit, 2)

	saved := tr.Missions()
	saved = append(saved, Mission{ID: "RETIRED-001", Active: true})

	restored := RestoreTracker(saved)
	assert.Equal(t, tr.Missions(), restored.Missions())

	m, ok := restored.Mission("CORP-001")
	require.True(t, ok)
	remaining, ok := m.TimeRemaining(gametest.Epoch.Add(4 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, 6*time.Minute, remaining)

	_, ok = restored.Mission("RETIRED-001")
	assert.False(t, ok)
}
