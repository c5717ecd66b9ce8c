package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redline/internal/game/gametest"
)

func newState(t *testing.T) *GameState {
	t.Helper()
	return NewGameState("neo", 100, gametest.Epoch)
}

func TestNewGameStateDefaults(t *testing.T) {
	s := newState(t)
	assert.Equal(t, "neo", s.Username())
	assert.Equal(t, 100, s.Reputation())
	assert.Equal(t, 0.0, s.Heat())
	assert.Equal(t, 1000, s.Credits())
	assert.Equal(t, []string{"scan", "decrypt"}, s.UnlockedTools())
	assert.Empty(t, s.ActiveMissions())
	assert.Equal(t, 0, s.NetworkMap().Len())
}

func TestReputationFloor(t *testing.T) {
	s := newState(t)
	s.AddReputation(50)
	assert.Equal(t, 150, s.Reputation())
	s.AddReputation(-200)
	assert.Equal(t, 0, s.Reputation())
}

func TestHeatIsClamped(t *testing.T) {
	s := newState(t)
	s.IncreaseHeat(50)
	assert.Equal(t, 50.0, s.Heat())
	s.IncreaseHeat(60)
	assert.Equal(t, 100.0, s.Heat())
	s.DecreaseHeat(30)
	assert.Equal(t, 70.0, s.Heat())
	s.ApplyHeatDecay(0.5)
	assert.Equal(t, 35.0, s.Heat())

	s.IncreaseHeat(-500)
	assert.Equal(t, 0.0, s.Heat())
	s.DecreaseHeat(-500)
	assert.Equal(t, 100.0, s.Heat())
	s.DecreaseHeat(1e9)
	assert.Equal(t, 0.0, s.Heat())
}

func TestHeatDecayIsMultiplicative(t *testing.T) {
	s := newState(t)
	s.IncreaseHeat(80)
	s.ApplyHeatDecay(0.5)
	assert.Equal(t, 40.0, s.Heat())
}

func TestSpendCredits(t *testing.T) {
	s := newState(t)
	s.AddCredits(-960)
	require.Equal(t, 40, s.Credits())

	assert.False(t, s.SpendCredits(100))
	assert.Equal(t, 40, s.Credits())

	assert.True(t, s.SpendCredits(40))
	assert.Equal(t, 0, s.Credits())

	s.AddCredits(-10)
	assert.Equal(t, 0, s.Credits())
}

func TestCounters(t *testing.T) {
	s := newState(t)
	assert.Equal(t, 0.0, s.SuccessRate())

	s.RecordSuccessfulHack()
	s.RecordSuccessfulHack()
	s.RecordSuccessfulHack()
	s.RecordFailedHack()
	s.RecordScan()
	s.RecordDecryption()

	assert.Equal(t, 3, s.SuccessfulHacks())
	assert.Equal(t, 3, s.SystemsCompromised())
	assert.Equal(t, 1, s.FailedHacks())
	assert.Equal(t, 1, s.TotalScans())
	assert.Equal(t, 1, s.FilesDecrypted())
	assert.Equal(t, 75.0, s.SuccessRate())
}

func TestMissionLifecycle(t *testing.T) {
	s := newState(t)

	assert.False(t, s.CompleteMission("INIT-001"), "completing an inactive mission is ignored")
	assert.Equal(t, 0, s.MissionsCompleted())

	assert.True(t, s.StartMission("INIT-001"))
	assert.False(t, s.StartMission("INIT-001"))
	assert.Equal(t, []string{"INIT-001"}, s.ActiveMissions())

	assert.True(t, s.CompleteMission("INIT-001"))
	assert.False(t, s.CompleteMission("INIT-001"))
	assert.Empty(t, s.ActiveMissions())
	assert.Equal(t, []string{"INIT-001"}, s.CompletedMissions())
	assert.Equal(t, 1, s.MissionsCompleted())

	assert.False(t, s.StartMission("INIT-001"), "completed missions cannot restart")
	assert.False(t, s.IsMissionActive("INIT-001"))
	assert.True(t, s.IsMissionCompleted("INIT-001"))
}

func TestUnlocksAreIdempotent(t *testing.T) {
	s := newState(t)
	assert.False(t, s.UnlockTool("scan"))
	assert.True(t, s.UnlockTool("elite_tools"))
	assert.False(t, s.UnlockTool("elite_tools"))
	assert.Equal(t, []string{"scan", "decrypt", "elite_tools"}, s.UnlockedTools())
	assert.True(t, s.HasTool("elite_tools"))

	assert.True(t, s.DiscoverExploit("AI_Slayer"))
	assert.False(t, s.DiscoverExploit("AI_Slayer"))
	assert.Equal(t, []string{"AI_Slayer"}, s.DiscoveredExploits())
}

func TestDangerAndBands(t *testing.T) {
	s := newState(t)
	s.IncreaseHeat(75)
	assert.False(t, s.IsInDanger())
	assert.Equal(t, StyleWarning, s.HeatBand())
	s.IncreaseHeat(0.5)
	assert.True(t, s.IsInDanger())
	assert.Equal(t, StyleError, s.HeatBand())
	assert.False(t, s.IsBusted(MaxHeat))
	s.IncreaseHeat(50)
	assert.True(t, s.IsBusted(MaxHeat))
}

func TestHeatBar(t *testing.T) {
	s := newState(t)
	assert.Equal(t, "░░░░░░░░░░░░░░░░░░░░ 0%", s.HeatBar())
	s.IncreaseHeat(50)
	assert.Equal(t, "██████████░░░░░░░░░░ 50%", s.HeatBar())
	s.IncreaseHeat(100)
	assert.Equal(t, "████████████████████ 100%", s.HeatBar())
}

func TestDisplayLevelIsSeparateFromReputationLevel(t *testing.T) {
	testCases := []struct {
		reputation int
		level      DisplayLevel
		title      string
	}{
		{0, 1, "Newbie"},
		{49, 1, "Newbie"},
		{50, 2, "Script Kiddie"},
		{150, 3, "Amateur Hacker"},
		{999, 6, "Expert Hacker"},
		{1000, 7, "Master Hacker"},
		{2999, 9, "Legendary Hacker"},
		{3000, 10, "Ghost"},
		{9000, 10, "Ghost"},
	}
	for _, tc := range testCases {
		s := NewGameState("neo", tc.reputation, gametest.Epoch)
		assert.Equal(t, tc.level, s.Level(), "reputation %d", tc.reputation)
		assert.Equal(t, tc.title, s.LevelTitle(), "reputation %d", tc.reputation)
	}

	assert.Equal(t, Legendary, LevelFromReputation(3000))
	assert.Equal(t, "Ghost", DisplayLevelFor(3000).Title())
	assert.Equal(t, "Unknown", DisplayLevel(11).Title())
}

func TestUpdateTimePlayed(t *testing.T) {
	s := newState(t)
	s.UpdateTimePlayed(gametest.Epoch.Add(90 * time.Second))
	s.UpdateTimePlayed(gametest.Epoch.Add(150 * time.Second))
	assert.Equal(t, 150*time.Second, s.TimePlayed())
	assert.Equal(t, gametest.Epoch.Add(150*time.Second), s.SessionStart())

	s.Resume(gametest.Epoch.Add(24 * time.Hour))
	s.UpdateTimePlayed(gametest.Epoch.Add(24*time.Hour + 10*time.Second))
	assert.Equal(t, 160*time.Second, s.TimePlayed())
}

func TestGameStateJSONRoundTrip(t *testing.T) {
	s := newState(t)
	s.IncreaseHeat(42.5)
	s.AddCredits(250)
	s.RecordSuccessfulHack()
	s.RecordScan()
	s.StartMission("INIT-001")
	s.StartMission("RECON-001")
	s.CompleteMission("INIT-001")
	s.UnlockTool("botnet")
	s.DiscoverExploit("AI_Slayer")
	s.UpdateTimePlayed(gametest.Epoch.Add(time.Hour))

	nm := s.NetworkMap()
	nm.AddNode(NetworkNode{IP: "10.0.0.1", Hostname: "GW-001", Type: NodeRouter, DiscoveredAt: gametest.Epoch})
	nm.AddNode(NetworkNode{IP: "10.0.0.7", Hostname: "DB-007", Type: NodeDatabase, SecurityLevel: SecurityHigh, DiscoveredAt: gametest.Epoch})
	require.NoError(t, nm.AddConnection("10.0.0.7", "10.0.0.1"))
	_, err := nm.MarkCompromised("10.0.0.7")
	require.NoError(t, err)

	first, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded GameState
	require.NoError(t, json.Unmarshal(first, &decoded))
	second, err := json.Marshal(&decoded)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, string(first), string(second))

	assert.Equal(t, s.Heat(), decoded.Heat())
	assert.Equal(t, s.CompletedMissions(), decoded.CompletedMissions())
	assert.Equal(t, s.TimePlayed(), decoded.TimePlayed())
	node, ok := decoded.NetworkMap().Node("10.0.0.7")
	require.True(t, ok)
	assert.True(t, node.Compromised)
	assert.Len(t, decoded.NetworkMap().ConnectedNodes("10.0.0.1"), 1)
	assert.NoError(t, decoded.Validate())
}

func TestValidateRejectsBrokenState(t *testing.T) {
	var s GameState
	require.NoError(t, json.Unmarshal([]byte(`{"username":"neo","heat_level":140}`), &s))
	assert.Error(t, s.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"username":"neo","credits":-4}`), &s))
	assert.Error(t, s.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"username":"neo","active_missions":["A"],"completed_missions":["A"]}`), &s))
	assert.Error(t, s.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"username":"neo","credits":5}`), &s))
	assert.NoError(t, s.Validate())
}
