package game

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

const (
	// StartingCredits is the balance a fresh agent begins with.
	StartingCredits = 1000
	// MaxHeat is the ceiling of the heat meter; reaching it means the agent is busted.
	MaxHeat = 100.0
	// DangerHeat is the level above which the agent is in danger.
	DangerHeat = 75.0
)

// DefaultTools are unlocked for every new agent.
var DefaultTools = []string{"scan", "decrypt"}

// GameState is the aggregate player record for one session.
// It is owned by a single session and is not safe for concurrent use.
type GameState struct {
	username string

	reputation int
	heat       float64
	credits    int

	missionsCompleted  int
	successfulHacks    int
	failedHacks        int
	totalScans         int
	filesDecrypted     int
	systemsCompromised int

	timePlayed   time.Duration
	sessionStart time.Time

	activeMissions     []string
	completedMissions  []string
	unlockedTools      []string
	discoveredExploits []string

	networkMap *NetworkMap
}

// NewGameState seeds a fresh agent from a username and reputation.
func NewGameState(username string, reputation int, now time.Time) *GameState {
	return &GameState{
		username:      username,
		reputation:    max(reputation, 0),
		credits:       StartingCredits,
		sessionStart:  now,
		unlockedTools: slices.Clone(DefaultTools),
		networkMap:    NewNetworkMap(),
	}
}

func (s *GameState) Username() string { return s.username }
func (s *GameState) Reputation() int { return s.reputation }
func (s *GameState) Heat() float64 { return s.heat }
func (s *GameState) Credits() int { return s.credits }
func (s *GameState) MissionsCompleted() int { return s.missionsCompleted }
func (s *GameState) SuccessfulHacks() int { return s.successfulHacks }
func (s *GameState) FailedHacks() int { return s.failedHacks }
func (s *GameState) TotalScans() int { return s.totalScans }
func (s *GameState) FilesDecrypted() int { return s.filesDecrypted }
func (s *GameState) SystemsCompromised() int { return s.systemsCompromised }
func (s *GameState) TimePlayed() time.Duration { return s.timePlayed }
func (s *GameState) SessionStart() time.Time { return s.sessionStart }
func (s *GameState) ActiveMissions() []string { return slices.Clone(s.activeMissions) }
func (s *GameState) CompletedMissions() []string { return slices.Clone(s.completedMissions) }
func (s *GameState) UnlockedTools() []string { return slices.Clone(s.unlockedTools) }
func (s *GameState) DiscoveredExploits() []string { return slices.Clone(s.discoveredExploits) }

// NetworkMap returns the live map of discovered hosts.
func (s *GameState) NetworkMap() *NetworkMap { return s.networkMap }

// AddReputation applies a signed delta, flooring at zero.
func (s *GameState) AddReputation(delta int) {
	s.reputation = max(s.reputation+delta, 0)
}

// IncreaseHeat raises heat, clamped to [0, MaxHeat].
func (s *GameState) IncreaseHeat(amount float64) {
	s.heat = clampHeat(s.heat + amount)
}

// DecreaseHeat lowers heat, clamped to [0, MaxHeat].
func (s *GameState) DecreaseHeat(amount float64) {
	s.heat = clampHeat(s.heat - amount)
}

// ApplyHeatDecay multiplies heat by rate, which is expected in (0, 1].
func (s *GameState) ApplyHeatDecay(rate float64) {
	s.heat = clampHeat(s.heat * rate)
}

func clampHeat(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(MaxHeat, v))
}

// AddCredits applies a signed delta, flooring at zero.
func (s *GameState) AddCredits(amount int) {
	s.credits = max(s.credits+amount, 0)
}

// SpendCredits deducts amount if the agent can afford it. Nothing changes otherwise.
func (s *GameState) SpendCredits(amount int) bool {
	if s.credits < amount {
		return false
	}
	s.credits -= amount
	return true
}

// RecordSuccessfulHack counts a successful hack and the system it compromised.
func (s *GameState) RecordSuccessfulHack() {
	s.successfulHacks++
	s.systemsCompromised++
}

func (s *GameState) RecordFailedHack() { s.failedHacks++ }
func (s *GameState) RecordScan() { s.totalScans++ }
func (s *GameState) RecordDecryption() { s.filesDecrypted++ }

// StartMission marks a mission active unless it is already active or completed.
func (s *GameState) StartMission(id string) bool {
	if slices.Contains(s.activeMissions, id) || slices.Contains(s.completedMissions, id) {
		return false
	}
	s.activeMissions = append(s.activeMissions, id)
	return true
}

// CompleteMission moves an active mission to completed. Missions that are not
// active are ignored.
func (s *GameState) CompleteMission(id string) bool {
	i := slices.Index(s.activeMissions, id)
	if i < 0 {
		return false
	}
	s.activeMissions = slices.Delete(s.activeMissions, i, i+1)
	s.completedMissions = append(s.completedMissions, id)
	s.missionsCompleted++
	return true
}

// IsMissionActive reports whether the mission has been started and not finished.
func (s *GameState) IsMissionActive(id string) bool {
	return slices.Contains(s.activeMissions, id)
}

// IsMissionCompleted reports whether the mission has been finished.
func (s *GameState) IsMissionCompleted(id string) bool {
	return slices.Contains(s.completedMissions, id)
}

// UnlockTool adds a tool; repeated unlocks are ignored.
func (s *GameState) UnlockTool(name string) bool {
	if slices.Contains(s.unlockedTools, name) {
		return false
	}
	s.unlockedTools = append(s.unlockedTools, name)
	return true
}

// HasTool reports whether a tool has been unlocked.
func (s *GameState) HasTool(name string) bool {
	return slices.Contains(s.unlockedTools, name)
}

// DiscoverExploit adds an exploit; repeated discoveries are ignored.
func (s *GameState) DiscoverExploit(name string) bool {
	if slices.Contains(s.discoveredExploits, name) {
		return false
	}
	s.discoveredExploits = append(s.discoveredExploits, name)
	return true
}

// UpdateTimePlayed folds the time since the last update into the total.
func (s *GameState) UpdateTimePlayed(now time.Time) {
	if elapsed := now.Sub(s.sessionStart); elapsed > 0 {
		s.timePlayed += elapsed
	}
	s.sessionStart = now
}

// Resume starts a new play period at now without counting the time since
// the state was saved.
func (s *GameState) Resume(now time.Time) {
	s.sessionStart = now
}

// SuccessRate is the percentage of hacks that succeeded, 0 with no attempts.
func (s *GameState) SuccessRate() float64 {
	total := s.successfulHacks + s.failedHacks
	if total == 0 {
		return 0
	}
	return float64(s.successfulHacks) / float64(total) * 100
}

// IsInDanger reports heat above DangerHeat.
func (s *GameState) IsInDanger() bool {
	return s.heat > DangerHeat
}

// IsBusted reports heat at or above the given ceiling.
func (s *GameState) IsBusted(ceiling float64) bool {
	return s.heat >= ceiling
}

// Level is the 1-10 display level.
func (s *GameState) Level() DisplayLevel {
	return DisplayLevelFor(s.reputation)
}

// LevelTitle is the title of the display level.
func (s *GameState) LevelTitle() string {
	return s.Level().Title()
}

// HeatBand classifies heat for coloring.
func (s *GameState) HeatBand() Style {
	switch {
	case s.heat > DangerHeat:
		return StyleError
	case s.heat > 50:
		return StyleWarning
	default:
		return StyleSuccess
	}
}

// HeatBar renders heat as a 20-cell bar followed by the percentage.
func (s *GameState) HeatBar() string {
	const width = 20
	filled := int(s.heat / MaxHeat * width)
	filled = max(0, min(width, filled))
	return fmt.Sprintf("%s%s %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), int(s.heat))
}

type gameStateJSON struct {
	Username           string        `json:"username"`
	Reputation         int           `json:"reputation"`
	HeatLevel          float64       `json:"heat_level"`
	Credits            int           `json:"credits"`
	MissionsCompleted  int           `json:"missions_completed"`
	SuccessfulHacks    int           `json:"successful_hacks"`
	FailedHacks        int           `json:"failed_hacks"`
	TotalScans         int           `json:"total_scans"`
	FilesDecrypted     int           `json:"files_decrypted"`
	SystemsCompromised int           `json:"systems_compromised"`
	TimePlayed         time.Duration `json:"time_played"`
	SessionStart       time.Time     `json:"session_start"`
	ActiveMissions     []string      `json:"active_missions"`
	CompletedMissions  []string      `json:"completed_missions"`
	UnlockedTools      []string      `json:"unlocked_tools"`
	DiscoveredExploits []string      `json:"discovered_exploits"`
	NetworkMap         *NetworkMap   `json:"network_map"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MarshalJSON encodes the full state.
func (s *GameState) MarshalJSON() ([]byte, error) {
	nm := s.networkMap
	if nm == nil {
		nm = NewNetworkMap()
	}
	return json.Marshal(gameStateJSON{
		Username:           s.username,
		Reputation:         s.reputation,
		HeatLevel:          s.heat,
		Credits:            s.credits,
		MissionsCompleted:  s.missionsCompleted,
		SuccessfulHacks:    s.successfulHacks,
		FailedHacks:        s.failedHacks,
		TotalScans:         s.totalScans,
		FilesDecrypted:     s.filesDecrypted,
		SystemsCompromised: s.systemsCompromised,
		TimePlayed:         s.timePlayed,
		SessionStart:       s.sessionStart,
		ActiveMissions:     nonNil(s.activeMissions),
		CompletedMissions:  nonNil(s.completedMissions),
		UnlockedTools:      nonNil(s.unlockedTools),
		DiscoveredExploits: nonNil(s.discoveredExploits),
		NetworkMap:         nm,
	})
}

// UnmarshalJSON decodes a state produced by MarshalJSON.
func (s *GameState) UnmarshalJSON(data []byte) error {
	doc := gameStateJSON{NetworkMap: NewNetworkMap()}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.NetworkMap == nil {
		doc.NetworkMap = NewNetworkMap()
	}
	*s = GameState{
		username:           doc.Username,
		reputation:         doc.Reputation,
		heat:               doc.HeatLevel,
		credits:            doc.Credits,
		missionsCompleted:  doc.MissionsCompleted,
		successfulHacks:    doc.SuccessfulHacks,
		failedHacks:        doc.FailedHacks,
		totalScans:         doc.TotalScans,
		filesDecrypted:     doc.FilesDecrypted,
		systemsCompromised: doc.SystemsCompromised,
		timePlayed:         doc.TimePlayed,
		sessionStart:       doc.SessionStart,
		activeMissions:     doc.ActiveMissions,
		completedMissions:  doc.CompletedMissions,
		unlockedTools:      doc.UnlockedTools,
		discoveredExploits: doc.DiscoveredExploits,
		networkMap:         doc.NetworkMap,
	}
	return nil
}

// Validate checks the invariants a decoded state must satisfy.
func (s *GameState) Validate() error {
	switch {
	case s.username == "":
		return fmt.Errorf("missing username")
	case s.reputation < 0:
		return fmt.Errorf("negative reputation %d", s.reputation)
	case s.credits < 0:
		return fmt.Errorf("negative credits %d", s.credits)
	case s.heat < 0 || s.heat > MaxHeat || math.IsNaN(s.heat):
		return fmt.Errorf("heat %.2f out of range", s.heat)
	}
	for _, id := range s.activeMissions {
		if slices.Contains(s.completedMissions, id) {
			return fmt.Errorf("mission %s is both active and completed", id)
		}
	}
	counters := []int{s.missionsCompleted, s.successfulHacks, s.failedHacks, s.totalScans, s.filesDecrypted, s.systemsCompromised}
	for _, c := range counters {
		if c < 0 {
			return fmt.Errorf("negative counter %d", c)
		}
	}
	return nil
}
