package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"redline/internal/database"
	"redline/internal/game"
	"redline/internal/log"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account is locked due to multiple failed login attempts")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUnknownUser        = errors.New("unknown user")
)

// Store is the subset of the database used for accounts.
type Store interface {
	SaveUser(ctx context.Context, user database.UserRecord) error
	LoadUser(ctx context.Context, username string) (database.UserRecord, error)
	DeleteUser(ctx context.Context, username string) error
	ListUsers(ctx context.Context) ([]database.UserRecord, error)
}

// User is a local account.
type User struct {
	Username       string
	PasswordHash   string
	CreatedAt      time.Time
	LastLogin      *time.Time
	LoginCount     int
	Reputation     int
	IsActive       bool
	FailedAttempts int
}

func fromRecord(r database.UserRecord) User {
	return User(r)
}

func (u User) record() database.UserRecord {
	return database.UserRecord(u)
}

// Locked reports whether the account refuses logins.
func (u User) Locked(maxAttempts int) bool {
	return !u.IsActive || u.FailedAttempts >= maxAttempts
}

// Service registers and authenticates accounts.
type Service struct {
	store  Store
	policy Policy
	clock  game.Clock
}

// NewService creates an account service. A nil clock uses the wall clock.
func NewService(store Store, policy Policy, clock game.Clock) *Service {
	if clock == nil {
		clock = game.SystemClock
	}
	return &Service{store: store, policy: policy, clock: clock}
}

// Policy returns the active password policy.
func (s *Service) Policy() Policy { return s.policy }

// Register creates an account after checking the confirmation, uniqueness,
// and the username and password rules, in that order.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (User, error) {
	if password != confirm {
		return User{}, ErrPasswordMismatch
	}
	if err := ValidateUsername(username); err != nil {
		return User{}, err
	}

	if _, err := s.store.LoadUser(ctx, username); err == nil {
		return User{}, fmt.Errorf("%w: %s", ErrUserExists, username)
	} else if !errors.Is(err, database.ErrNotFound) {
		return User{}, fmt.Errorf("failed to check username: %w", err)
	}

	if err := s.policy.ValidatePassword(password); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.policy.BcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	u := User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
		IsActive:     true,
	}
	if err := s.store.SaveUser(ctx, u.record()); err != nil {
		return User{}, err
	}
	log.Info("user registered", "username", username)
	return u, nil
}

// Login verifies the password. Failures count towards the lockout limit and
// a successful login clears them.
func (s *Service) Login(ctx context.Context, username, password string) (User, error) {
	rec, err := s.store.LoadUser(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to load user: %w", err)
	}
	u := fromRecord(rec)

	if u.Locked(s.policy.MaxLoginAttempts) {
		log.Warn("login refused for locked account", "username", username)
		return User{}, ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		u.FailedAttempts++
		if u.FailedAttempts >= s.policy.MaxLoginAttempts {
			u.IsActive = false
		}
		if err := s.store.SaveUser(ctx, u.record()); err != nil {
			return User{}, err
		}
		log.Warn("login failed", "username", username, "failed_attempts", u.FailedAttempts)
		return User{}, ErrInvalidCredentials
	}

	now := s.clock.Now()
	u.FailedAttempts = 0
	u.LastLogin = &now
	u.LoginCount++
	if err := s.store.SaveUser(ctx, u.record()); err != nil {
		return User{}, err
	}
	log.Info("user logged in", "username", username, "login_count", u.LoginCount)
	return u, nil
}

// Get returns an account.
func (s *Service) Get(ctx context.Context, username string) (User, error) {
	rec, err := s.store.LoadUser(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return User{}, fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	if err != nil {
		return User{}, err
	}
	return fromRecord(rec), nil
}

// UpdateReputation adds delta to the account reputation, clamped at zero.
func (s *Service) UpdateReputation(ctx context.Context, username string, delta int) (User, error) {
	u, err := s.Get(ctx, username)
	if err != nil {
		return User{}, err
	}
	u.Reputation = max(0, u.Reputation+delta)
	if err := s.store.SaveUser(ctx, u.record()); err != nil {
		return User{}, err
	}
	return u, nil
}

// Unlock reactivates an account and clears its failed attempts.
func (s *Service) Unlock(ctx context.Context, username string) error {
	u, err := s.Get(ctx, username)
	if err != nil {
		return err
	}
	u.IsActive = true
	u.FailedAttempts = 0
	return s.store.SaveUser(ctx, u.record())
}

// Delete removes an account.
func (s *Service) Delete(ctx context.Context, username string) error {
	err := s.store.DeleteUser(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	return err
}

// List returns every account name.
func (s *Service) List(ctx context.Context) ([]string, error) {
	recs, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(recs))
	for _, r := range recs {
		names = append(names, r.Username)
	}
	return names, nil
}
