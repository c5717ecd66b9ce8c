package mission

import (
	"fmt"
	"time"

	"redline/internal/game"
)

// Rarity grades an achievement and decides its point value.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

var rarityNames = [...]string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}
var rarityPoints = [...]int{10, 25, 50, 100, 250}

func (r Rarity) String() string {
	if r < Common || r > Legendary {
		return "Unknown"
	}
	return rarityNames[r]
}

// Points is the score awarded for an achievement of this rarity.
func (r Rarity) Points() int {
	if r < Common || r > Legendary {
		return 0
	}
	return rarityPoints[r]
}

func (r Rarity) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Rarity) UnmarshalText(text []byte) error {
	for i, name := range rarityNames {
		if name == string(text) {
			*r = Rarity(i)
			return nil
		}
	}
	return fmt.Errorf("invalid rarity %q", text)
}

// Achievement is a one-time unlockable.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Rarity      Rarity     `json:"rarity"`
	Points      int        `json:"points"`
	Unlocked    bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// QuietHackHeat is the heat below which a successful hack counts toward
// the stealth achievement.
const QuietHackHeat = 25.0

const masterHacker = "master_hacker"

type rule func(b *Book, t Turn) bool

var achievementRules = []struct {
	id, name, description string
	rarity                Rarity
	unlocked              rule
}{
	{"first_login", "Welcome to the Grid", "Successfully login for the first time", Common,
		func(*Book, Turn) bool { return true }},
	{"first_scan", "Network Explorer", "Complete your first network scan", Common,
		func(_ *Book, t Turn) bool { return t.State.TotalScans() >= 1 }},
	{"first_exploit", "Script Kiddie", "Successfully exploit your first vulnerability", Common,
		func(_ *Book, t Turn) bool { return t.State.SuccessfulHacks() >= 1 }},
	{"decrypt_master", "Codebreaker", "Decrypt 50 encrypted files", Uncommon,
		func(_ *Book, t Turn) bool { return t.State.FilesDecrypted() >= 50 }},
	{"stealth_master", "Ghost in the Machine", "Complete 10 operations with heat level below 25%", Rare,
		func(b *Book, _ Turn) bool { return b.quietHacks >= 10 }},
	{"reputation_100", "Notorious", "Reach 100 reputation points", Uncommon,
		func(_ *Book, t Turn) bool { return t.State.Reputation() >= 100 }},
	{"reputation_1000", "Elite Hacker", "Reach 1000 reputation points", Epic,
		func(_ *Book, t Turn) bool { return t.State.Reputation() >= 1000 }},
	{"perfect_mission", "Flawless Victory", "Complete a mission with 100% objectives and 0% heat", Rare,
		func(_ *Book, t Turn) bool { return len(t.Completed) > 0 && t.State.Heat() < 1 }},
	{"speed_demon", "Speed Demon", "Complete a timed mission with over 50% time remaining", Epic,
		func(_ *Book, t Turn) bool {
			for _, m := range t.Completed {
				if left, ok := m.TimeRemaining(t.Now); ok && left > m.TimeLimit/2 {
					return true
				}
			}
			return false
		}},
	{masterHacker, "Master of the Digital Domain", "Complete all missions and unlock all achievements", Legendary,
		func(b *Book, t Turn) bool { return b.allOthersUnlocked() && allMissionsCompleted(t.State) }},
}

// Turn is what the book needs to know about the turn that just ended.
type Turn struct {
	State *game.GameState
	// Completed are the missions finished during the turn.
	Completed []Mission
	// QuietHacks are successful hacks made this turn below QuietHackHeat.
	QuietHacks int
	Now        time.Time
}

// Book tracks which achievements are unlocked.
type Book struct {
	achievements []*Achievement
	rules        map[string]rule
	quietHacks   int
}

// BookSnapshot is the persisted form of a Book.
type BookSnapshot struct {
	Achievements []Achievement `json:"achievements"`
	QuietHacks   int           `json:"quiet_hacks"`
}

// NewBook returns a book with every achievement locked.
func NewBook() *Book {
	b := &Book{rules: make(map[string]rule)}
	for _, r := range achievementRules {
		b.achievements = append(b.achievements, &Achievement{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Rarity:      r.rarity,
			Points:      r.rarity.Points(),
		})
		b.rules[r.id] = r.unlocked
	}
	return b
}

// RestoreBook rebuilds a book from a snapshot.
func RestoreBook(s BookSnapshot) *Book {
	b := NewBook()
	b.quietHacks = max(s.QuietHacks, 0)
	for _, saved := range s.Achievements {
		for _, a := range b.achievements {
			if a.ID == saved.ID && saved.Unlocked {
				a.Unlocked = true
				if saved.UnlockedAt != nil {
					at := *saved.UnlockedAt
					a.UnlockedAt = &at
				}
			}
		}
	}
	return b
}

// Snapshot returns the persisted form of the book.
func (b *Book) Snapshot() BookSnapshot {
	return BookSnapshot{Achievements: b.Achievements(), QuietHacks: b.quietHacks}
}

// Achievements returns copies of all achievements in catalog order.
func (b *Book) Achievements() []Achievement {
	out := make([]Achievement, 0, len(b.achievements))
	for _, a := range b.achievements {
		c := *a
		if a.UnlockedAt != nil {
			at := *a.UnlockedAt
			c.UnlockedAt = &at
		}
		out = append(out, c)
	}
	return out
}

// Points totals the points of unlocked achievements.
func (b *Book) Points() int {
	total := 0
	for _, a := range b.achievements {
		if a.Unlocked {
			total += a.Points
		}
	}
	return total
}

// Evaluate unlocks everything the turn qualifies for and returns what was
// newly unlocked.
func (b *Book) Evaluate(t Turn) []Achievement {
	b.quietHacks += max(t.QuietHacks, 0)
	var unlocked []Achievement
	for _, a := range b.achievements {
		if a.Unlocked || !b.rules[a.ID](b, t) {
			continue
		}
		now := t.Now
		a.Unlocked = true
		a.UnlockedAt = &now
		unlocked = append(unlocked, *a)
	}
	return unlocked
}

func (b *Book) allOthersUnlocked() bool {
	for _, a := range b.achievements {
		if a.ID != masterHacker && !a.Unlocked {
			return false
		}
	}
	return true
}

func allMissionsCompleted(s *game.GameState) bool {
	for _, m := range Catalog() {
		if !s.IsMissionCompleted(m.ID) {
			return false
		}
	}
	return true
}
