package mission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/game"
	"redline/internal/game/gametest"
)

func achievementIDs(list []Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestRarityPoints(t *testing.T) {
	assert.Equal(t, 10, Common.Points())
	assert.Equal(t, 25, Uncommon.Points())
	assert.Equal(t, 50, Rare.Points())
	assert.Equal(t, 100, Epic.Points())
	assert.Equal(t, 250, Legendary.Points())
}

func TestFirstTurnUnlocks(t *testing.T) {
	b := NewBook()
	require.Len(t, b.Achievements(), 10)

	s := game.NewGameState("neo", 120, gametest.Epoch)
	s.RecordScan()

	got := b.Evaluate(Turn{State: s, Now: gametest.Epoch})
	assert.Equal(t, []string{"first_login", "first_scan", "reputation_100"}, achievementIDs(got))
	assert.Equal(t, 10+10+25, b.Points())

	assert.Empty(t, b.Evaluate(Turn{State: s, Now: gametest.Epoch.Add(time.Minute)}), "achievements unlock once")

	for _, a := range b.Achievements() {
		if a.ID == "first_scan" {
			require.NotNil(t, a.UnlockedAt)
			assert.Equal(t, gametest.Epoch, *a.UnlockedAt)
		}
	}
}

func TestStealthMasterAccumulatesAcrossTurns(t *testing.T) {
	b := NewBook()
	s := game.NewGameState("neo", 0, gametest.Epoch)
	b.Evaluate(Turn{State: s, QuietHacks: 6, Now: gametest.Epoch})

	restored := RestoreBook(b.Snapshot())
	got := restored.Evaluate(Turn{State: s, QuietHacks: 4, Now: gametest.Epoch})
	assert.Equal(t, []string{"stealth_master"}, achievementIDs(got))
}

func TestMissionAchievements(t *testing.T) {
	s := game.NewGameState("neo", 0, gametest.Epoch)
	tr := NewTracker()
	_, err := tr.Accept("CORP-001", s, gametest.Epoch)
	require.NoError(t, err)
	tr.Record(TriggerFirewall, 2)
	tr.Record(TriggerExploit, 3)
	done := tr.Record(TriggerExfiltrate, 1)
	require.Len(t, done, 1)

	b := NewBook()
	got := b.Evaluate(Turn{State: s, Completed: done, Now: gametest.Epoch.Add(4 * time.Minute)})
	assert.Contains(t, achievementIDs(got), "speed_demon")
	assert.Contains(t, achievementIDs(got), "perfect_mission")

	slow := NewBook()
	s.IncreaseHeat(10)
	got = slow.Evaluate(Turn{State: s, Completed: done, Now: gametest.Epoch.Add(6 * time.Minute)})
	assert.NotContains(t, achievementIDs(got), "speed_demon")
	assert.NotContains(t, achievementIDs(got), "perfect_mission")
}

func TestMasterHackerNeedsEverything(t *testing.T) {
	s := game.NewGameState("neo", 2000, gametest.Epoch)
	for _, m := range Catalog() {
		s.StartMission(m.ID)
		s.CompleteMission(m.ID)
	}
	for i := 0; i < 50; i++ {
		s.RecordDecryption()
	}
	s.RecordScan()
	s.RecordSuccessfulHack()

	b := NewBook()
	got := b.Evaluate(Turn{State: s, QuietHacks: 10, Now: gametest.Epoch})
	assert.NotContains(t, achievementIDs(got), masterHacker, "speed and perfect runs are still missing")

	timed := Mission{TimeLimit: time.Minute, AcceptedAt: &gametest.Epoch}
	got = b.Evaluate(Turn{State: s, Completed: []Mission{timed}, Now: gametest.Epoch})
	assert.Equal(t, []string{"perfect_mission", "speed_demon", masterHacker}, achievementIDs(got))
}
