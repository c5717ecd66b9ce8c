package game

import (
	"math"
	"time"
)

// ReputationLevel is the progression tier derived from a reputation score.
//
// This is the progression table: it drives perks and the level progress bar.
// The numeric 1-10 level shown next to the agent name is DisplayLevel, which
// uses its own thresholds and titles.
type ReputationLevel int

const (
	Nobody ReputationLevel = iota
	Wannabe
	ScriptKiddie
	Amateur
	Competent
	Skilled
	Expert
	Master
	Elite
	Legendary
	Mythical
)

// Lower bounds, inclusive. The last tier is unbounded above.
var reputationThresholds = [...]int{0, 50, 150, 300, 500, 750, 1000, 1500, 2000, 3000, 5000}

var levelNames = [...]string{
	"Nobody", "Wannabe", "ScriptKiddie", "Amateur", "Competent", "Skilled",
	"Expert", "Master", "Elite", "Legendary", "Mythical",
}

var levelDisplayNames = [...]string{
	"Nobody", "Wannabe", "Script Kiddie", "Amateur Hacker", "Competent Hacker", "Skilled Hacker",
	"Expert Hacker", "Master Hacker", "Elite Hacker", "Legendary Hacker", "Mythical Hacker",
}

var levelStyles = [...]Style{
	StyleDim, StyleNormal, StyleNormal, StyleSecondary, StyleSecondary, StyleBright,
	StyleBright, StyleSuccess, StyleWarning, StyleError, StyleError,
}

var levelPerks = [...][]string{
	{"Basic commands unlocked"},
	{"Access to simple exploits", "+5% reputation bonus"},
	{"Intermediate exploits unlocked", "+10% reputation bonus", "Heat decay increased by 10%"},
	{"Advanced scanning tools", "+15% reputation bonus", "Access to underground markets"},
	{"Professional exploit kit", "+20% reputation bonus", "Heat decay increased by 20%", "Mission reward bonus +10%"},
	{"Elite tools unlocked", "+25% reputation bonus", "Stealth mode available"},
	{"Zero-day exploits access", "+30% reputation bonus", "Heat decay increased by 30%", "Mission reward bonus +20%"},
	{"Custom exploit development", "+40% reputation bonus", "Advanced evasion techniques"},
	{"Quantum decryption tools", "+50% reputation bonus", "Heat decay increased by 40%", "Mission reward bonus +30%"},
	{"AI-assisted hacking", "+75% reputation bonus", "Near-invisible operations", "All tools maximized"},
	{"God mode activated", "+100% reputation bonus", "Instant heat decay", "All content unlocked", "Fear and respect of the digital underground"},
}

// LevelFromReputation maps a score onto its tier. Negative scores are Nobody.
func LevelFromReputation(reputation int) ReputationLevel {
	for level := Mythical; level > Nobody; level-- {
		if reputation >= reputationThresholds[level] {
			return level
		}
	}
	return Nobody
}

// AllLevels returns every tier in ascending order.
func AllLevels() []ReputationLevel {
	levels := make([]ReputationLevel, 0, len(reputationThresholds))
	for level := Nobody; level <= Mythical; level++ {
		levels = append(levels, level)
	}
	return levels
}

func (l ReputationLevel) valid() bool {
	return l >= Nobody && l <= Mythical
}

// String returns the tier identifier, e.g. "ScriptKiddie".
func (l ReputationLevel) String() string {
	if !l.valid() {
		return "Unknown"
	}
	return levelNames[l]
}

// DisplayName returns the human title, e.g. "Script Kiddie".
func (l ReputationLevel) DisplayName() string {
	if !l.valid() {
		return "Unknown"
	}
	return levelDisplayNames[l]
}

// Style returns the output style the tier is rendered with.
func (l ReputationLevel) Style() Style {
	if !l.valid() {
		return StyleNormal
	}
	return levelStyles[l]
}

// Requirement returns the tier's inclusive lower bound.
func (l ReputationLevel) Requirement() int {
	if !l.valid() {
		return 0
	}
	return reputationThresholds[l]
}

// NextRequirement returns the lower bound of the following tier.
// It reports false for the top tier.
func (l ReputationLevel) NextRequirement() (int, bool) {
	if !l.valid() || l == Mythical {
		return 0, false
	}
	return reputationThresholds[l+1], true
}

// Perks returns the tier's perk descriptions. The slice is a copy.
func (l ReputationLevel) Perks() []string {
	if !l.valid() {
		return nil
	}
	return append([]string(nil), levelPerks[l]...)
}

// StreakWindow is the longest gap between two gains that still extends a streak.
const StreakWindow = 300 * time.Second

// ReputationManager applies streak multipliers to reputation gains.
type ReputationManager struct {
	current    int
	lifetime   int
	level      ReputationLevel
	multiplier float64
	streak     int
	lastAction *time.Time
	clock      Clock
}

// ReputationSnapshot is the persisted form of a ReputationManager.
type ReputationSnapshot struct {
	Current    int        `json:"current_reputation"`
	Lifetime   int        `json:"lifetime_reputation"`
	Multiplier float64    `json:"multiplier"`
	Streak     int        `json:"streak"`
	LastAction *time.Time `json:"last_action,omitempty"`
}

// NewReputationManager creates a manager seeded with a starting score.
// A nil clock uses the wall clock.
func NewReputationManager(starting int, clock Clock) *ReputationManager {
	if clock == nil {
		clock = SystemClock
	}
	if starting < 0 {
		starting = 0
	}
	return &ReputationManager{
		current:    starting,
		lifetime:   starting,
		level:      LevelFromReputation(starting),
		multiplier: 1.0,
		clock:      clock,
	}
}

// RestoreReputationManager rebuilds a manager from a snapshot.
func RestoreReputationManager(s ReputationSnapshot, clock Clock) *ReputationManager {
	m := NewReputationManager(s.Current, clock)
	m.lifetime = s.Lifetime
	m.multiplier = s.Multiplier
	if m.multiplier < 1.0 {
		m.multiplier = 1.0
	}
	m.streak = max(s.Streak, 0)
	if s.LastAction != nil {
		t := *s.LastAction
		m.lastAction = &t
	}
	return m
}

// Snapshot returns the persisted form of the manager.
func (m *ReputationManager) Snapshot() ReputationSnapshot {
	s := ReputationSnapshot{
		Current:    m.current,
		Lifetime:   m.lifetime,
		Multiplier: m.multiplier,
		Streak:     m.streak,
	}
	if m.lastAction != nil {
		t := *m.lastAction
		s.LastAction = &t
	}
	return s
}

func (m *ReputationManager) Current() int { return m.current }
func (m *ReputationManager) Lifetime() int { return m.lifetime }
func (m *ReputationManager) Level() ReputationLevel { return m.level }
func (m *ReputationManager) Multiplier() float64 { return m.multiplier }
func (m *ReputationManager) Streak() int { return m.streak }
func (m *ReputationManager) LastAction() *time.Time { return m.lastAction }

// AddReputation applies base scaled by the current multiplier and returns the
// delta actually applied. The streak is updated after the gain is computed.
func (m *ReputationManager) AddReputation(base int) int {
	final := int(math.Round(float64(base) * m.multiplier))
	m.current += final
	if m.current < 0 {
		m.current = 0
	}
	if final > 0 {
		m.lifetime += final
	}
	m.level = LevelFromReputation(m.current)
	m.updateStreak()
	return final
}

// RemoveReputation subtracts amount, clamping at zero, and breaks the streak.
func (m *ReputationManager) RemoveReputation(amount int) {
	m.current = max(m.current-amount, 0)
	m.level = LevelFromReputation(m.current)
	m.resetStreak()
}

// Adjust applies a raw delta with no multiplier and no streak effect.
// It keeps the manager in step with changes made elsewhere, such as event outcomes.
func (m *ReputationManager) Adjust(delta int) {
	m.current = max(m.current+delta, 0)
	if delta > 0 {
		m.lifetime += delta
	}
	m.level = LevelFromReputation(m.current)
}

func (m *ReputationManager) updateStreak() {
	now := m.clock.Now()
	if m.lastAction != nil {
		if now.Sub(*m.lastAction) < StreakWindow {
			m.streak++
			m.multiplier = StreakMultiplier(m.streak)
		} else {
			m.resetStreak()
		}
	}
	m.lastAction = &now
}

func (m *ReputationManager) resetStreak() {
	m.streak = 0
	m.multiplier = 1.0
}

// StreakMultiplier returns the gain multiplier for a streak length.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak < 5:
		return 1.0
	case streak < 10:
		return 1.1
	case streak < 20:
		return 1.25
	case streak < 30:
		return 1.5
	case streak < 50:
		return 1.75
	default:
		return 2.0
	}
}

// StreakBonusDescription describes the current streak band.
func (m *ReputationManager) StreakBonusDescription() string {
	switch {
	case m.streak < 5:
		return "No Streak"
	case m.streak < 10:
		return "Hot Streak! (+10% bonus)"
	case m.streak < 20:
		return "On Fire! (+25% bonus)"
	case m.streak < 30:
		return "Unstoppable! (+50% bonus)"
	case m.streak < 50:
		return "Legendary! (+75% bonus)"
	default:
		return "GODLIKE! (+100% bonus)"
	}
}

// ReputationToNextLevel reports how much reputation the next tier needs.
// It reports false at the top tier.
func (m *ReputationManager) ReputationToNextLevel() (int, bool) {
	next, ok := m.level.NextRequirement()
	if !ok {
		return 0, false
	}
	return next - m.current, true
}

// LevelProgress returns progress through the current tier as a percentage.
// The top tier measures against a ceiling 1000 above its lower bound.
func (m *ReputationManager) LevelProgress() float64 {
	floor := m.level.Requirement()
	next, ok := m.level.NextRequirement()
	if !ok {
		next = floor + 1000
	}
	progress := float64(m.current-floor) / float64(next-floor) * 100
	return math.Max(0, math.Min(100, progress))
}
