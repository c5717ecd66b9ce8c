package save

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"redline/internal/database"
	"redline/internal/game"
	"redline/internal/log"
	"redline/internal/mission"
)

var (
	// ErrNoSave is returned when the user has no save slot.
	ErrNoSave = errors.New("no save game")
	// ErrCorruptSave is returned when a slot cannot be decoded or fails validation.
	ErrCorruptSave = errors.New("corrupt save game")
)

// SaveGame is a complete snapshot of a session.
type SaveGame struct {
	ID           string                  `json:"id"`
	Username     string                  `json:"username"`
	Version      string                  `json:"version"`
	Timestamp    time.Time               `json:"timestamp"`
	GameState    *game.GameState         `json:"game_state"`
	Reputation   game.ReputationSnapshot `json:"reputation"`
	Missions     []mission.Mission       `json:"missions"`
	Achievements mission.BookSnapshot    `json:"achievements"`
	Stats        game.PlayerStats        `json:"stats"`
}

// NewID returns a fresh save id.
func NewID() string {
	return "save-" + uuid.NewString()
}

// Encode serialises a save game.
func Encode(sg SaveGame) ([]byte, error) {
	data, err := json.Marshal(sg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save game: %w", err)
	}
	return data, nil
}

// Decode parses and validates a save game. Every failure wraps ErrCorruptSave.
func Decode(data []byte) (SaveGame, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var sg SaveGame
	if err := dec.Decode(&sg); err != nil {
		return SaveGame{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	if err := sg.Validate(); err != nil {
		return SaveGame{}, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	return sg, nil
}

// Validate checks the invariants a loaded save must satisfy.
func (sg SaveGame) Validate() error {
	if sg.Username == "" {
		return errors.New("missing username")
	}
	if sg.GameState == nil {
		return errors.New("missing game state")
	}
	if sg.GameState.Username() != sg.Username {
		return fmt.Errorf("game state belongs to %q", sg.GameState.Username())
	}
	if err := sg.GameState.Validate(); err != nil {
		return err
	}
	if sg.Reputation.Current < 0 {
		return fmt.Errorf("negative reputation %d", sg.Reputation.Current)
	}
	if sg.Reputation.Current != sg.GameState.Reputation() {
		return fmt.Errorf("reputation %d does not match game state reputation %d", sg.Reputation.Current, sg.GameState.Reputation())
	}
	for _, m := range sg.Missions {
		if m.Active && m.Completed {
			return fmt.Errorf("mission %s is both active and completed", m.ID)
		}
	}
	return nil
}

// SlotStore is the subset of the database used for save slots.
type SlotStore interface {
	SaveSlot(ctx context.Context, slot database.SlotRecord) error
	LoadSlot(ctx context.Context, username string) (database.SlotRecord, error)
	DeleteSlot(ctx context.Context, username string) error
	ListSlots(ctx context.Context) ([]database.SlotRecord, error)
}

// Store reads and writes the single save slot of each user.
type Store struct {
	slots SlotStore
}

// NewStore creates a save store.
func NewStore(slots SlotStore) *Store {
	return &Store{slots: slots}
}

// Save writes sg into its user's slot, replacing the previous save.
func (s *Store) Save(ctx context.Context, sg SaveGame) error {
	if err := sg.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid save: %w", err)
	}
	data, err := Encode(sg)
	if err != nil {
		return err
	}
	err = s.slots.SaveSlot(ctx, database.SlotRecord{
		Username: sg.Username,
		Version:  sg.Version,
		SavedAt:  sg.Timestamp,
		Payload:  data,
	})
	if err != nil {
		return err
	}
	log.Info("save written", "username", sg.Username, "id", sg.ID, "version", sg.Version)
	return nil
}

// Load reads the user's slot.
func (s *Store) Load(ctx context.Context, username string) (SaveGame, error) {
	slot, err := s.slots.LoadSlot(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return SaveGame{}, ErrNoSave
	}
	if err != nil {
		return SaveGame{}, err
	}

	sg, err := Decode(slot.Payload)
	if err != nil {
		log.Warn("corrupt save slot", "username", username, "error", err)
		return SaveGame{}, err
	}
	if sg.Username != username {
		return SaveGame{}, fmt.Errorf("%w: slot for %s holds %s", ErrCorruptSave, username, sg.Username)
	}
	return sg, nil
}

// Delete removes the user's slot. Deleting a missing slot returns ErrNoSave.
func (s *Store) Delete(ctx context.Context, username string) error {
	err := s.slots.DeleteSlot(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNoSave
	}
	if err == nil {
		log.Info("save deleted", "username", username)
	}
	return err
}

// Summary describes a slot without decoding it.
type Summary struct {
	Username string
	Version  string
	SavedAt  time.Time
	Size     int
}

// List summarises every slot, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	slots, err := s.slots.ListSlots(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(slots))
	for _, sl := range slots {
		out = append(out, Summary{Username: sl.Username, Version: sl.Version, SavedAt: sl.SavedAt, Size: len(sl.Payload)})
	}
	return out, nil
}
