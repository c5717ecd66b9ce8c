package mission

import (
	"errors"
	"time"

	"github.com/zyedidia/generic/mapset"

	"redline/internal/game"
)

var (
	ErrUnknownMission     = errors.New("unknown mission")
	ErrMissionUnavailable = errors.New("mission already active or completed")
)

// Tracker holds the per-session mission instances and routes gameplay
// signals to their objectives.
type Tracker struct {
	missions map[string]*Mission
	order    []string
}

// NewTracker returns a tracker over a fresh copy of the catalog.
func NewTracker() *Tracker {
	t := &Tracker{missions: make(map[string]*Mission)}
	for _, m := range Catalog() {
		t.missions[m.ID] = m
		t.order = append(t.order, m.ID)
	}
	return t
}

// RestoreTracker rebuilds a tracker from saved missions. Texts and objective
// bindings come from the catalog; progress and lifecycle come from the save.
// Saved missions that are no longer in the catalog are dropped.
func RestoreTracker(saved []Mission) *Tracker {
	t := NewTracker()
	for _, s := range saved {
		m, ok := t.missions[s.ID]
		if !ok {
			continue
		}
		m.Completed = s.Completed
		m.Active = s.Active
		m.FailedBaseline = s.FailedBaseline
		if s.AcceptedAt != nil {
			at := *s.AcceptedAt
			m.AcceptedAt = &at
		}
		for _, so := range s.Objectives {
			for i := range m.Objectives {
				if m.Objectives[i].ID == so.ID {
					m.Objectives[i].Progress = so.Progress
					m.Objectives[i].Completed = so.Completed
				}
			}
		}
	}
	return t
}

// Missions returns copies of every mission in catalog order.
func (t *Tracker) Missions() []Mission {
	out := make([]Mission, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.missions[id].clone())
	}
	return out
}

// Mission returns a copy of the mission with the given id.
func (t *Tracker) Mission(id string) (Mission, bool) {
	m, ok := t.missions[id]
	if !ok {
		return Mission{}, false
	}
	return m.clone(), true
}

// Available lists catalog missions the agent has neither started nor finished.
func (t *Tracker) Available(s *game.GameState) []Mission {
	var out []Mission
	for _, id := range t.order {
		if s.IsMissionActive(id) || s.IsMissionCompleted(id) {
			continue
		}
		out = append(out, t.missions[id].clone())
	}
	return out
}

// Active lists the missions in progress.
func (t *Tracker) Active() []Mission {
	var out []Mission
	for _, id := range t.order {
		if m := t.missions[id]; m.Active {
			out = append(out, m.clone())
		}
	}
	return out
}

// Accept starts a mission on the game state and records when it was
// accepted along with the failed-hack baseline.
func (t *Tracker) Accept(id string, s *game.GameState, now time.Time) (Mission, error) {
	m, ok := t.missions[id]
	if !ok {
		return Mission{}, ErrUnknownMission
	}
	if !s.StartMission(id) {
		return Mission{}, ErrMissionUnavailable
	}
	m.Active = true
	m.AcceptedAt = &now
	m.FailedBaseline = s.FailedHacks()
	return m.clone(), nil
}

// Record advances every open objective bound to trigger by n and returns
// the missions that became complete. Each mission is returned once.
func (t *Tracker) Record(trigger Trigger, n int) []Mission {
	if n <= 0 {
		return nil
	}
	touched := mapset.New[string]()
	for _, id := range t.order {
		m := t.missions[id]
		if !m.Active || m.Completed {
			continue
		}
		for _, o := range m.Objectives {
			if o.Trigger == trigger && !o.Completed {
				m.UpdateObjective(o.ID, n)
				touched.Put(id)
			}
		}
	}
	return t.collectCompleted(touched)
}

// CheckConditions advances condition objectives that hold for s. A condition
// is only checked once all trigger objectives of its mission are complete.
func (t *Tracker) CheckConditions(s *game.GameState) []Mission {
	touched := mapset.New[string]()
	for _, id := range t.order {
		m := t.missions[id]
		if !m.Active || m.Completed || !m.triggersComplete() {
			continue
		}
		for _, o := range m.Objectives {
			if o.Condition == nil || o.Completed {
				continue
			}
			if o.Condition.holds(s, m) {
				m.UpdateObjective(o.ID, o.Required-o.Progress)
				touched.Put(id)
			}
		}
	}
	return t.collectCompleted(touched)
}

func (t *Tracker) collectCompleted(touched mapset.Set[string]) []Mission {
	if touched.Size() == 0 {
		return nil
	}
	var done []Mission
	for _, id := range t.order {
		m := t.missions[id]
		if touched.Has(id) && m.Completed && m.Active {
			m.Active = false
			done = append(done, m.clone())
		}
	}
	return done
}

func (m *Mission) triggersComplete() bool {
	for _, o := range m.Objectives {
		if o.Condition == nil && !o.Completed {
			return false
		}
	}
	return true
}

func (c Condition) holds(s *game.GameState, m *Mission) bool {
	switch c.Kind {
	case HeatBelow:
		return s.Heat() < c.Threshold
	case NoFailures:
		return s.FailedHacks() == m.FailedBaseline
	default:
		return false
	}
}
