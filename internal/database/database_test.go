package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Database = (*SQLiteDatabase)(nil)

func openTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "redline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDatabase() })
	return db
}

func TestMigrationsApplyOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "redline.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	v, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
	require.NoError(t, db.CloseDatabase())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.CloseDatabase()

	var rows int
	require.NoError(t, db.GetDB().QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version;`).Scan(&rows))
	assert.Equal(t, len(migrations), rows)
}

func TestClosedDatabase(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	assert.False(t, db.GetDatabaseOpen())

	_, err := db.LoadUser(ctx, "neo")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, db.SaveSlot(ctx, SlotRecord{Username: "neo"}), ErrNotOpen)
	assert.NoError(t, db.CloseDatabase())
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	created := time.Date(2024, 3, 15, 12, 0, 0, 123456789, time.UTC)
	u := UserRecord{
		Username:     "neo",
		PasswordHash: "$2a$04$hash",
		CreatedAt:    created,
		LoginCount:   2,
		Reputation:   150,
		IsActive:     true,
	}
	require.NoError(t, db.SaveUser(ctx, u))

	got, err := db.LoadUser(ctx, "neo")
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt))
	got.CreatedAt = u.CreatedAt
	assert.Equal(t, u, got)
	assert.Nil(t, got.LastLogin)

	login := created.Add(time.Hour)
	u.LastLogin = &login
	u.FailedAttempts = 3
	u.IsActive = false
	require.NoError(t, db.SaveUser(ctx, u))

	got, err = db.LoadUser(ctx, "neo")
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.True(t, login.Equal(*got.LastLogin))
	assert.Equal(t, 3, got.FailedAttempts)
	assert.False(t, got.IsActive)

	_, err = db.LoadUser(ctx, "trinity")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDeleteUsers(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	for _, name := range []string{"trinity", "morpheus", "neo"} {
		require.NoError(t, db.SaveUser(ctx, UserRecord{Username: name, PasswordHash: "x", CreatedAt: time.Now(), IsActive: true}))
	}
	require.NoError(t, db.SaveSlot(ctx, SlotRecord{Username: "neo", Version: "dev", SavedAt: time.Now(), Payload: []byte("{}")}))

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "morpheus", users[0].Username)
	assert.Equal(t, "trinity", users[2].Username)

	require.NoError(t, db.DeleteUser(ctx, "neo"))
	_, err = db.LoadSlot(ctx, "neo")
	assert.ErrorIs(t, err, ErrNotFound, "deleting a user drops their slot")
	assert.ErrorIs(t, db.DeleteUser(ctx, "neo"), ErrNotFound)
}

func TestSlots(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveSlot(ctx, SlotRecord{Username: "neo", Version: "1.0.0", SavedAt: base, Payload: []byte(`{"a":1}`)}))
	require.NoError(t, db.SaveSlot(ctx, SlotRecord{Username: "trinity", Version: "1.0.0", SavedAt: base.Add(500 * time.Millisecond), Payload: []byte(`{"b":2}`)}))
	require.NoError(t, db.SaveSlot(ctx, SlotRecord{Username: "neo", Version: "1.1.0", SavedAt: base.Add(time.Second), Payload: []byte(`{"a":2}`)}))

	s, err := db.LoadSlot(ctx, "neo")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", s.Version)
	assert.Equal(t, []byte(`{"a":2}`), s.Payload)
	assert.True(t, base.Add(time.Second).Equal(s.SavedAt))

	slots, err := db.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "neo", slots[0].Username, "newest first")

	require.NoError(t, db.DeleteSlot(ctx, "neo"))
	_, err = db.LoadSlot(ctx, "neo")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteSlot(ctx, "neo"), ErrNotFound)
}
