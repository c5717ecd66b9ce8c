// Package events generates random events and resolves the player's choices.
package events

import (
	"slices"
	"time"
)

// EventType says whether an event is good or bad news.
type EventType int

const (
	Opportunity EventType = iota
	Threat
	Neutral
)

func (t EventType) String() string {
	switch t {
	case Opportunity:
		return "Opportunity"
	case Threat:
		return "Threat"
	default:
		return "Neutral"
	}
}

// Severity grades how urgent an event is.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// EventChoice is one option offered by an event. Cost is nil for free choices.
type EventChoice struct {
	Label   string
	Outcome Outcome
	Cost    Cost
}

// RandomEvent is one generated event. Template names the kind of event;
// ID is unique per generated instance.
type RandomEvent struct {
	ID          string
	Template    string
	Title       string
	Description string
	Type        EventType
	Severity    Severity
	Choices     []EventChoice
	TimeLimit   time.Duration
	CreatedAt   time.Time
}

// Deadline is the advisory time by which the player should choose.
// Nothing expires when it passes. It reports false for untimed events.
func (e RandomEvent) Deadline() (time.Time, bool) {
	if e.TimeLimit <= 0 {
		return time.Time{}, false
	}
	return e.CreatedAt.Add(e.TimeLimit), true
}

func (e RandomEvent) clone() RandomEvent {
	e.Choices = slices.Clone(e.Choices)
	return e
}
