package game

// ReputationEvent names a gameplay occurrence with a fixed reputation value.
type ReputationEvent int

const (
	SuccessfulHack ReputationEvent = iota
	VulnerabilityDiscovered
	SystemCompromised
	DataExtracted
	MissionCompleted
	PerfectOperation
	FirstBlood

	DetectionTriggered
	HackFailed
	SystemLocked
	MissionFailed
	TraceCompleted
)

var reputationEvents = map[ReputationEvent]struct {
	amount      int
	description string
}{
	SuccessfulHack:          {10, "Successful hack completed"},
	VulnerabilityDiscovered: {5, "New vulnerability discovered"},
	SystemCompromised:       {15, "System successfully compromised"},
	DataExtracted:           {8, "Sensitive data extracted"},
	MissionCompleted:        {25, "Mission completed"},
	PerfectOperation:        {30, "Perfect operation - no detection"},
	FirstBlood:              {50, "First successful hack on new target"},
	DetectionTriggered:      {-5, "Detection systems triggered"},
	HackFailed:              {-10, "Hack attempt failed"},
	SystemLocked:            {-15, "Locked out of system"},
	MissionFailed:           {-25, "Mission failed"},
	TraceCompleted:          {-20, "Traced back to origin"},
}

// BaseAmount is the signed reputation change for the event.
func (e ReputationEvent) BaseAmount() int {
	return reputationEvents[e].amount
}

// Description is a one-line human description of the event.
func (e ReputationEvent) Description() string {
	if info, ok := reputationEvents[e]; ok {
		return info.description
	}
	return "Unknown event"
}

// Apply routes the event through the manager: gains are multiplied,
// penalties are removed and break the streak. It returns the signed change.
func (e ReputationEvent) Apply(m *ReputationManager) int {
	amount := e.BaseAmount()
	if amount >= 0 {
		return m.AddReputation(amount)
	}
	before := m.Current()
	m.RemoveReputation(-amount)
	return m.Current() - before
}
