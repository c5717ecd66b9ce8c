package game

import (
	"sort"
	"time"
)

// PlayerStats are long-running statistics kept alongside the game state.
type PlayerStats struct {
	TotalReputationEarned int            `json:"total_reputation_earned"`
	TotalCreditsEarned    int            `json:"total_credits_earned"`
	TotalCreditsSpent     int            `json:"total_credits_spent"`
	HighestHeatLevel      float64        `json:"highest_heat_level"`
	LongestSession        time.Duration  `json:"longest_session"`
	FavoriteCommand       string         `json:"favorite_command"`
	MostHackedSystem      string         `json:"most_hacked_system"`
	TotalDataExtracted    int64          `json:"total_data_extracted"`
	UniqueExploitsUsed    int            `json:"unique_exploits_used"`
	PerfectHacks          int            `json:"perfect_hacks"`
	CloseCalls            int            `json:"close_calls"`
	CommandCounts         map[string]int `json:"command_counts"`
	HackCounts            map[string]int `json:"hack_counts"`
	ExploitsUsed          []string       `json:"exploits_used"`
}

// NewPlayerStats returns empty statistics.
func NewPlayerStats() PlayerStats {
	return PlayerStats{
		CommandCounts: make(map[string]int),
		HackCounts:    make(map[string]int),
		ExploitsUsed:  []string{},
	}
}

// RecordCommand counts a command and refreshes the favourite.
func (p *PlayerStats) RecordCommand(name string) {
	if p.CommandCounts == nil {
		p.CommandCounts = make(map[string]int)
	}
	p.CommandCounts[name]++
	p.FavoriteCommand = mostFrequent(p.CommandCounts)
}

// RecordCredits tracks money in (positive) or out (negative).
func (p *PlayerStats) RecordCredits(delta int) {
	if delta >= 0 {
		p.TotalCreditsEarned += delta
	} else {
		p.TotalCreditsSpent -= delta
	}
}

// RecordHack counts a successful hack against a host and the exploit used.
func (p *PlayerStats) RecordHack(hostname, exploit string) {
	if p.HackCounts == nil {
		p.HackCounts = make(map[string]int)
	}
	if hostname != "" {
		p.HackCounts[hostname]++
		p.MostHackedSystem = mostFrequent(p.HackCounts)
	}
	if exploit == "" {
		return
	}
	for _, e := range p.ExploitsUsed {
		if e == exploit {
			return
		}
	}
	p.ExploitsUsed = append(p.ExploitsUsed, exploit)
	p.UniqueExploitsUsed = len(p.ExploitsUsed)
}

// RecordExtraction adds extracted data volume in bytes.
func (p *PlayerStats) RecordExtraction(bytes int64) {
	if bytes > 0 {
		p.TotalDataExtracted += bytes
	}
}

// UpdateFromState folds the end-of-turn state into the statistics.
func (p *PlayerStats) UpdateFromState(s *GameState) {
	p.TotalReputationEarned = max(p.TotalReputationEarned, s.Reputation())
	if s.Heat() > p.HighestHeatLevel {
		p.HighestHeatLevel = s.Heat()
	}
	if s.Heat() == 0 && s.SuccessfulHacks() > 0 {
		p.PerfectHacks++
	}
	if s.Heat() > 90 {
		p.CloseCalls++
	}
	if s.TimePlayed() > p.LongestSession {
		p.LongestSession = s.TimePlayed()
	}
}

// mostFrequent returns the key with the highest count, ties broken by name.
func mostFrequent(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best := ""
	for _, k := range keys {
		if best == "" || counts[k] > counts[best] {
			best = k
		}
	}
	return best
}
