package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"redline/internal/auth"
	"redline/internal/config"
	"redline/internal/events"
	"redline/internal/game"
	"redline/internal/log"
	"redline/internal/save"
	"redline/internal/session"
)

// ErrNotLoggedIn is returned by turn operations before a successful login.
var ErrNotLoggedIn = errors.New("no agent logged in")

// Deps wire the controller to storage and the game settings.
type Deps struct {
	Accounts *auth.Service
	Saves    *save.Store
	Config   config.Config
	Version  string

	// Optional; nil uses the real ones.
	Rand    game.Rand
	Clock   game.Clock
	Sleeper events.Sleeper
}

// Welcome describes how a session was started.
type Welcome struct {
	User    auth.User
	Resumed bool
	// Corrupt is set when a save existed but could not be loaded.
	Corrupt bool
}

// Turn is the result of one submitted command.
type Turn struct {
	session.Result
	// Event is raised at the start of the next turn, if any.
	Event *events.RandomEvent
}

// Controller owns the logged-in agent and their session. Calls are
// serialized, so the UI may invoke it from worker goroutines.
type Controller struct {
	deps Deps

	mu   sync.Mutex
	user auth.User
	sess *session.Session
}

// NewController creates a controller with nobody logged in.
func NewController(deps Deps) *Controller {
	if deps.Clock == nil {
		deps.Clock = game.SystemClock
	}
	return &Controller{deps: deps}
}

// Policy is the password policy the login screen shows.
func (c *Controller) Policy() auth.Policy {
	return c.deps.Accounts.Policy()
}

// Login authenticates and starts or resumes the agent's session.
func (c *Controller) Login(ctx context.Context, username, password string, fresh bool) (Welcome, error) {
	u, err := c.deps.Accounts.Login(ctx, username, password)
	if err != nil {
		return Welcome{}, err
	}
	return c.start(ctx, u, fresh)
}

// Register creates an account and starts a fresh session for it.
func (c *Controller) Register(ctx context.Context, username, password, confirm string) (Welcome, error) {
	u, err := c.deps.Accounts.Register(ctx, username, password, confirm)
	if err != nil {
		return Welcome{}, err
	}
	return c.start(ctx, u, true)
}

func (c *Controller) sessionDeps() session.Deps {
	return session.Deps{
		Rand:    c.deps.Rand,
		Clock:   c.deps.Clock,
		Sleeper: c.deps.Sleeper,
		Game:    c.deps.Config.Game,
		Version: c.deps.Version,
	}
}

func (c *Controller) start(ctx context.Context, u auth.User, fresh bool) (Welcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := Welcome{User: u}
	player := session.Player{Username: u.Username, Reputation: u.Reputation}
	c.user = u

	if !fresh {
		sg, err := c.deps.Saves.Load(ctx, u.Username)
		switch {
		case err == nil:
			sess, err := session.Resume(player, sg, c.sessionDeps())
			if err == nil {
				c.sess = sess
				w.Resumed = true
				log.Info("session resumed", "username", u.Username, "saved_at", sg.Timestamp)
				return w, nil
			}
			w.Corrupt = true
			log.Warn("saved session rejected, starting fresh", "username", u.Username, "error", err)
		case errors.Is(err, save.ErrCorruptSave):
			w.Corrupt = true
			log.Warn("corrupt save, starting fresh", "username", u.Username, "error", err)
		case errors.Is(err, save.ErrNoSave):
		default:
			return Welcome{}, fmt.Errorf("failed to load save: %w", err)
		}
	}

	c.sess = session.New(player, c.sessionDeps())
	return w, nil
}

// Session returns the running session, or nil.
func (c *Controller) Session() *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// User returns the logged-in account.
func (c *Controller) User() auth.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Execute runs one command, persists its side effects, and begins the next
// turn unless the session ended.
func (c *Controller) Execute(ctx context.Context, input string) (Turn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return Turn{}, ErrNotLoggedIn
	}

	res, err := c.sess.Execute(ctx, input)
	turn := Turn{Result: res}
	if perr := c.persist(ctx, res); perr != nil {
		return turn, perr
	}
	if err != nil {
		return turn, err
	}

	switch res.Outcome {
	case session.OutcomeBusted:
		return turn, c.endBusted(ctx)
	case session.OutcomeLogout:
		return turn, c.end(ctx)
	}

	turn.Event, err = c.sess.BeginTurn(ctx)
	return turn, err
}

// Resolve answers an event shown in the event dialog.
func (c *Controller) Resolve(ctx context.Context, eventID string, index int) (session.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return session.Result{}, ErrNotLoggedIn
	}

	res, err := c.sess.Resolve(ctx, eventID, index)
	if perr := c.persist(ctx, res); perr != nil {
		return res, perr
	}
	if err != nil {
		return res, err
	}
	if res.Outcome == session.OutcomeBusted || c.sess.Busted() {
		res.Outcome = session.OutcomeBusted
		return res, c.endBusted(ctx)
	}
	return res, nil
}

// persist pushes the turn's reputation change to the account and writes any
// checkpoint the turn produced.
func (c *Controller) persist(ctx context.Context, res session.Result) error {
	if res.ReputationDelta != 0 {
		u, err := c.deps.Accounts.UpdateReputation(ctx, c.user.Username, res.ReputationDelta)
		if err != nil {
			return fmt.Errorf("failed to update account reputation: %w", err)
		}
		c.user = u
	}
	if res.Save != nil {
		if err := c.deps.Saves.Save(ctx, *res.Save); err != nil {
			return err
		}
	}
	return nil
}

// Save writes a checkpoint of the running session.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return ErrNotLoggedIn
	}
	return c.save(ctx)
}

func (c *Controller) save(ctx context.Context) error {
	if c.sess.Busted() {
		return nil
	}
	sg, err := c.sess.Snapshot()
	if err != nil {
		return err
	}
	return c.deps.Saves.Save(ctx, sg)
}

// Logout saves and ends the session. It is a no-op when nobody is logged in.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return nil
	}
	return c.end(ctx)
}

func (c *Controller) end(ctx context.Context) error {
	err := c.save(ctx)
	log.Info("agent logged out", "username", c.user.Username)
	c.sess = nil
	c.user = auth.User{}
	return err
}

func (c *Controller) endBusted(ctx context.Context) error {
	username := c.user.Username
	c.sess = nil
	c.user = auth.User{}
	if err := c.deps.Saves.Delete(ctx, username); err != nil && !errors.Is(err, save.ErrNoSave) {
		return err
	}
	log.Warn("agent busted, save deleted", "username", username)
	return nil
}
