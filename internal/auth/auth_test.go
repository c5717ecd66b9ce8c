package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"redline/internal/database"
	"redline/internal/game/gametest"
)

const goodPassword = "Tr1n1ty!x"

func newService(t *testing.T) (*Service, *gametest.Clock) {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "redline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDatabase() })

	policy := DefaultPolicy()
	policy.BcryptCost = bcrypt.MinCost
	clock := gametest.NewClock(gametest.Epoch)
	return NewService(db, policy, clock), clock
}

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"min length", "neo", true},
		{"max length", strings.Repeat("a", 20), true},
		{"underscore and digits", "agent_007", true},
		{"empty", "", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 21), false},
		{"space", "mr anderson", false},
		{"dash", "mr-anderson", false},
		{"non ascii", "nëo", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.input)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "username", ve.Field)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	p := DefaultPolicy()
	assert.NoError(t, p.ValidatePassword(goodPassword))
	assert.Error(t, p.ValidatePassword(""))
	assert.Error(t, p.ValidatePassword("Ab1!"), "too short")
	assert.Error(t, p.ValidatePassword("abcdefg1!"), "no upper")
	assert.Error(t, p.ValidatePassword("ABCDEFG1!"), "no lower")
	assert.Error(t, p.ValidatePassword("Abcdefgh!"), "no digit")
	assert.Error(t, p.ValidatePassword("Abcdefgh1"), "no special")

	p.RequireSpecialChars = false
	assert.NoError(t, p.ValidatePassword("Abcdefgh1"))
}

func TestPasswordStrength(t *testing.T) {
	testCases := []struct {
		pw   string
		want Strength
	}{
		{"", StrengthNone},
		{"abc", StrengthWeak},
		{"abcdefgh", StrengthWeak},
		{"abcdefgH1", StrengthMedium},
		{"abcdefghijkL1", StrengthStrong},
		{"abcdefghijklmnoP1!", StrengthVeryStrong},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, PasswordStrength(tc.pw), tc.pw)
	}
	assert.Empty(t, StrengthNone.String())
	assert.Contains(t, StrengthWeak.String(), "WEAK")
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	u, err := s.Register(ctx, "neo", goodPassword, goodPassword)
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.Equal(t, gametest.Epoch, u.CreatedAt)
	assert.NotEqual(t, goodPassword, u.PasswordHash)

	_, err = s.Register(ctx, "neo", goodPassword, goodPassword)
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = s.Register(ctx, "trinity", goodPassword, "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = s.Register(ctx, "trinity", "weak", "weak")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"neo"}, names)
}

func TestLoginAndLockout(t *testing.T) {
	ctx := context.Background()
	s, clock := newService(t)
	_, err := s.Register(ctx, "neo", goodPassword, goodPassword)
	require.NoError(t, err)

	_, err = s.Login(ctx, "nobody", goodPassword)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "neo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	clock.Advance(time.Minute)
	u, err := s.Login(ctx, "neo", goodPassword)
	require.NoError(t, err)
	assert.Equal(t, 0, u.FailedAttempts)
	assert.Equal(t, 1, u.LoginCount)
	require.NotNil(t, u.LastLogin)
	assert.True(t, gametest.Epoch.Add(time.Minute).Equal(*u.LastLogin))

	for range s.Policy().MaxLoginAttempts {
		_, err = s.Login(ctx, "neo", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	_, err = s.Login(ctx, "neo", goodPassword)
	assert.ErrorIs(t, err, ErrAccountLocked)

	require.NoError(t, s.Unlock(ctx, "neo"))
	_, err = s.Login(ctx, "neo", goodPassword)
	assert.NoError(t, err)
}

func TestUpdateReputationClamps(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	_, err := s.Register(ctx, "neo", goodPassword, goodPassword)
	require.NoError(t, err)

	u, err := s.UpdateReputation(ctx, "neo", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, u.Reputation)

	u, err = s.UpdateReputation(ctx, "neo", -80)
	require.NoError(t, err)
	assert.Equal(t, 0, u.Reputation)

	_, err = s.UpdateReputation(ctx, "ghost", 1)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	_, err := s.Register(ctx, "neo", goodPassword, goodPassword)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "neo"))
	err = s.Delete(ctx, "neo")
	assert.True(t, errors.Is(err, ErrUnknownUser))
}
