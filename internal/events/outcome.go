package events

import (
	"fmt"
	"time"
)

// Outcome is what choosing an EventChoice does. The set of outcomes is
// closed: GainCredits, GainReputation, ReduceHeat, IncreaseHeat,
// UnlockContent, MaintainAccess, SafeExit and Special.
type Outcome interface {
	fmt.Stringer
	outcome()
}

type (
	GainCredits    int
	GainReputation int
	ReduceHeat     float64
	IncreaseHeat   float64
	UnlockContent  string
	MaintainAccess struct{}
	SafeExit       struct{}
)

func (GainCredits) outcome()    {}
func (GainReputation) outcome() {}
func (ReduceHeat) outcome()     {}
func (IncreaseHeat) outcome()   {}
func (UnlockContent) outcome()  {}
func (MaintainAccess) outcome() {}
func (SafeExit) outcome()       {}
func (Special) outcome()        {}

func (o GainCredits) String() string    { return fmt.Sprintf("+%d credits", int(o)) }
func (o GainReputation) String() string { return fmt.Sprintf("+%d reputation", int(o)) }
func (o ReduceHeat) String() string     { return fmt.Sprintf("-%g%% heat", float64(o)) }
func (o IncreaseHeat) String() string   { return fmt.Sprintf("+%g%% heat", float64(o)) }
func (o UnlockContent) String() string  { return "unlock " + string(o) }
func (MaintainAccess) String() string   { return "maintain access" }
func (SafeExit) String() string         { return "safe exit" }

// Cost is paid before an outcome is applied. Only CreditCost can veto the
// outcome, when the agent cannot afford it.
type Cost interface {
	fmt.Stringer
	cost()
}

type (
	CreditCost     int
	ReputationCost int
	HeatCost       float64
	// TimeCost suspends resolution for the duration.
	TimeCost time.Duration
)

func (CreditCost) cost()     {}
func (ReputationCost) cost() {}
func (HeatCost) cost()       {}
func (TimeCost) cost()       {}

func (c CreditCost) String() string     { return fmt.Sprintf("%d credits", int(c)) }
func (c ReputationCost) String() string { return fmt.Sprintf("%d reputation", int(c)) }
func (c HeatCost) String() string       { return fmt.Sprintf("%g%% heat", float64(c)) }
func (c TimeCost) String() string       { return fmt.Sprintf("%ds", int(time.Duration(c).Seconds())) }

// Special is a named sub-resolution: a themed delay followed by a win or
// lose roll with its own effects. The zero value is not a Special.
type Special int

const (
	Negotiation Special = iota + 1
	RaceRival
	AIBattle
	EncryptedFile
	PersistentAccess
	HoneypotReversed
	Sabotage
)

func (s Special) String() string {
	switch s {
	case Negotiation:
		return "negotiation"
	case RaceRival:
		return "race_rival"
	case AIBattle:
		return "ai_battle"
	case EncryptedFile:
		return "encrypted_file"
	case PersistentAccess:
		return "persistent_access"
	case HoneypotReversed:
		return "honeypot_reversed"
	case Sabotage:
		return "sabotage"
	default:
		return "none"
	}
}
