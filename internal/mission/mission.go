// Package mission holds the mission catalog, per-session mission progress
// and the achievement book.
package mission

import (
	"fmt"
	"math"
	"time"
)

// Difficulty is a mission's difficulty tier.
type Difficulty int

const (
	Trivial Difficulty = iota
	Easy
	Medium
	Hard
	Extreme
	Impossible
)

var difficultyNames = [...]string{"Trivial", "Easy", "Medium", "Hard", "Extreme", "Impossible"}

func (d Difficulty) String() string {
	if d < Trivial || d > Impossible {
		return "Unknown"
	}
	return difficultyNames[d]
}

func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Difficulty) UnmarshalText(text []byte) error {
	for i, name := range difficultyNames {
		if name == string(text) {
			*d = Difficulty(i)
			return nil
		}
	}
	return fmt.Errorf("invalid difficulty %q", text)
}

// Trigger is a gameplay signal that advances objectives bound to it.
type Trigger string

const (
	TriggerScan            Trigger = "scan"
	TriggerVulnerability   Trigger = "vulnerability"
	TriggerDecrypt         Trigger = "decrypt"
	TriggerExfiltrate      Trigger = "exfiltrate"
	TriggerHack            Trigger = "hack"
	TriggerExploit         Trigger = "exploit"
	TriggerFirewall        Trigger = "firewall"
	TriggerFirewallDisable Trigger = "firewall_disable"
	TriggerInject          Trigger = "inject"
	TriggerAIDefeated      Trigger = "ai_defeated"
)

// ConditionKind names a state predicate an objective can be bound to.
type ConditionKind string

const (
	// HeatBelow holds while heat is strictly below the threshold.
	HeatBelow ConditionKind = "heat_below"
	// NoFailures holds while no hack has failed since the mission was accepted.
	NoFailures ConditionKind = "no_failures"
)

// Condition is a state predicate. Condition objectives only progress once
// every trigger objective of the mission is complete.
type Condition struct {
	Kind      ConditionKind `json:"kind"`
	Threshold float64       `json:"threshold,omitempty"`
}

// Objective is one step of a mission.
type Objective struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
	Required    int        `json:"required"`
	Completed   bool       `json:"is_completed"`
	Trigger     Trigger    `json:"trigger,omitempty"`
	Condition   *Condition `json:"condition,omitempty"`
}

// Mission is a named set of objectives with completion rewards.
type Mission struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Objectives       []Objective   `json:"objectives"`
	RewardReputation int           `json:"reward_reputation"`
	RewardCredits    int           `json:"reward_credits"`
	Difficulty       Difficulty    `json:"difficulty"`
	TimeLimit        time.Duration `json:"time_limit,omitempty"`
	Completed        bool          `json:"is_completed"`
	Active           bool          `json:"is_active"`
	AcceptedAt       *time.Time    `json:"accepted_at,omitempty"`
	FailedBaseline   int           `json:"failed_baseline"`
}

// New creates a mission with no objectives. The credit reward is ten times
// the reputation reward.
func New(id, name, description string, difficulty Difficulty, rewardReputation int) *Mission {
	return &Mission{
		ID:               id,
		Name:             name,
		Description:      description,
		Objectives:       []Objective{},
		RewardReputation: rewardReputation,
		RewardCredits:    rewardReputation * 10,
		Difficulty:       difficulty,
	}
}

// AddObjective appends an objective with the next sequential id (obj_1, obj_2, ...).
func (m *Mission) AddObjective(description string, required int) *Objective {
	m.Objectives = append(m.Objectives, Objective{
		ID:          fmt.Sprintf("obj_%d", len(m.Objectives)+1),
		Description: description,
		Required:    required,
	})
	return &m.Objectives[len(m.Objectives)-1]
}

// UpdateObjective adds delta to an objective's progress, saturating instead
// of overflowing. Unknown ids change no progress. Mission completion is
// re-evaluated over all objectives after every update.
func (m *Mission) UpdateObjective(objectiveID string, delta int) {
	for i := range m.Objectives {
		o := &m.Objectives[i]
		if o.ID != objectiveID {
			continue
		}
		o.Progress = saturatingAdd(o.Progress, delta)
		if o.Progress >= o.Required {
			o.Completed = true
		}
		break
	}
	m.Completed = m.allObjectivesCompleted()
}

func (m *Mission) allObjectivesCompleted() bool {
	for _, o := range m.Objectives {
		if !o.Completed {
			return false
		}
	}
	return true
}

func saturatingAdd(a, b int) int {
	if b <= 0 {
		return a
	}
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// CompletionPercentage is the capped progress over the total required, in
// percent. It is 0 when there are no objectives or nothing is required.
func (m *Mission) CompletionPercentage() float64 {
	if len(m.Objectives) == 0 {
		return 0
	}
	var progress, required int
	for _, o := range m.Objectives {
		progress += min(o.Progress, o.Required)
		required += o.Required
	}
	if required == 0 {
		return 0
	}
	return float64(progress) / float64(required) * 100
}

// Objective returns the objective with the given id.
func (m *Mission) Objective(id string) (Objective, bool) {
	for _, o := range m.Objectives {
		if o.ID == id {
			return o, true
		}
	}
	return Objective{}, false
}

// TimeRemaining reports how much of the advisory time limit is left at now.
// It reports false for untimed or unaccepted missions.
func (m *Mission) TimeRemaining(now time.Time) (time.Duration, bool) {
	if m.TimeLimit <= 0 || m.AcceptedAt == nil {
		return 0, false
	}
	return m.TimeLimit - now.Sub(*m.AcceptedAt), true
}

func (m *Mission) clone() Mission {
	c := *m
	c.Objectives = make([]Objective, len(m.Objectives))
	for i, o := range m.Objectives {
		c.Objectives[i] = o
		if o.Condition != nil {
			cond := *o.Condition
			c.Objectives[i].Condition = &cond
		}
	}
	if m.AcceptedAt != nil {
		t := *m.AcceptedAt
		c.AcceptedAt = &t
	}
	return c
}
