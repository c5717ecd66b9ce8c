package database

import "time"

// UserRecord is one row of the users table.
type UserRecord struct {
	Username       string
	PasswordHash   string
	CreatedAt      time.Time
	LastLogin      *time.Time
	LoginCount     int
	Reputation     int
	IsActive       bool
	FailedAttempts int
}

// SlotRecord is one row of the saves table: the single save slot of a user.
type SlotRecord struct {
	Username string
	Version  string
	SavedAt  time.Time
	Payload  []byte
}

// timeLayout is how timestamps are stored in TEXT columns. It is fixed
// width so that string order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
