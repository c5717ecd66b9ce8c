// Package session runs one agent's game: it executes terminal commands
// against the game state, drives random events and missions, and reports
// what happened each turn.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"redline/internal/commands"
	"redline/internal/config"
	"redline/internal/events"
	"redline/internal/game"
	"redline/internal/log"
	"redline/internal/mission"
	"redline/internal/save"
)

// EntryIP is the agent's own machine, the first node on every network map.
const EntryIP = "127.0.0.1"

// ErrWrongPlayer is returned when a save is resumed by someone else.
var ErrWrongPlayer = errors.New("save belongs to another player")

// Player is the account a session is played by.
type Player struct {
	Username   string
	Reputation int
}

// Deps are the collaborators and settings a session runs with.
// Nil Rand, Clock and Sleeper fall back to the real ones.
type Deps struct {
	Rand    game.Rand
	Clock   game.Clock
	Sleeper events.Sleeper
	Game    config.Game
	Version string
}

// Outcome tells the caller what to do after a command.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeLogout
	OutcomeBusted
	OutcomeClear
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeLogout:
		return "logout"
	case OutcomeBusted:
		return "busted"
	case OutcomeClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Line is one line of terminal output.
type Line struct {
	Style game.Style
	Text  string
}

// Result is everything a command produced.
type Result struct {
	Lines   []Line
	Outcome Outcome
	// ReputationDelta is the reputation change over the turn, for the
	// account record.
	ReputationDelta int
	Completed       []mission.Mission
	Unlocked        []mission.Achievement
	// Save is set by the save command. The caller writes it.
	Save *save.SaveGame
}

func (r *Result) say(style game.Style, text string) {
	r.Lines = append(r.Lines, Line{Style: style, Text: text})
}

func (r *Result) sayf(style game.Style, format string, args ...any) {
	r.say(style, fmt.Sprintf(format, args...))
}

type turn struct {
	reputation int
	credits    int
	quietHacks int
	completed  []mission.Mission
}

// Session owns the game state of one agent. It is not safe for concurrent use.
type Session struct {
	player   Player
	state    *game.GameState
	rep      *game.ReputationManager
	missions *mission.Tracker
	book     *mission.Book
	events   *events.Manager
	stats    game.PlayerStats
	registry *commands.Registry

	cfg     config.Game
	version string
	rand    game.Rand
	clock   game.Clock

	turn   turn
	busted bool
}

func newSession(player Player, deps Deps) *Session {
	if deps.Rand == nil {
		deps.Rand = game.NewRand(0)
	}
	if deps.Clock == nil {
		deps.Clock = game.SystemClock
	}
	s := &Session{
		player:   player,
		registry: commands.NewRegistry(),
		cfg:      deps.Game,
		version:  deps.Version,
		rand:     deps.Rand,
		clock:    deps.Clock,
		events:   events.NewManager(deps.Rand, deps.Clock, deps.Sleeper),
	}
	s.events.SetEventChance(deps.Game.EventChance)
	return s
}

// New starts a fresh session for player.
func New(player Player, deps Deps) *Session {
	s := newSession(player, deps)
	now := s.clock.Now()

	s.state = game.NewGameState(player.Username, player.Reputation, now)
	s.state.AddCredits(deps.Game.StartingCredits - game.StartingCredits)
	s.rep = game.NewReputationManager(player.Reputation, s.clock)
	s.missions = mission.NewTracker()
	s.book = mission.NewBook()
	s.stats = game.NewPlayerStats()
	s.addEntryNode()

	log.Info("session started", "username", player.Username, "reputation", player.Reputation, "difficulty", deps.Game.Difficulty)
	return s
}

// Resume continues the session stored in sg.
func Resume(player Player, sg save.SaveGame, deps Deps) (*Session, error) {
	if sg.Username != player.Username {
		return nil, fmt.Errorf("%w: %s", ErrWrongPlayer, sg.Username)
	}
	if err := sg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", save.ErrCorruptSave, err)
	}
	s := newSession(player, deps)

	s.state = sg.GameState
	s.state.Resume(s.clock.Now())
	s.rep = game.RestoreReputationManager(sg.Reputation, s.clock)
	s.missions = mission.RestoreTracker(sg.Missions)
	s.book = mission.RestoreBook(sg.Achievements)
	s.stats = sg.Stats
	s.addEntryNode()

	log.Info("session resumed", "username", player.Username, "save_id", sg.ID, "saved_version", sg.Version)
	return s, nil
}

func (s *Session) addEntryNode() {
	s.state.NetworkMap().AddNode(game.NetworkNode{
		IP:            EntryIP,
		Hostname:      "localhost",
		Type:          game.NodeWorkstation,
		Compromised:   true,
		SecurityLevel: game.SecurityMaximum,
		DiscoveredAt:  s.clock.Now(),
	})
}

func (s *Session) Player() Player                      { return s.player }
func (s *Session) State() *game.GameState              { return s.state }
func (s *Session) Reputation() *game.ReputationManager { return s.rep }
func (s *Session) Missions() *mission.Tracker          { return s.missions }
func (s *Session) Achievements() *mission.Book         { return s.book }
func (s *Session) Events() *events.Manager             { return s.events }
func (s *Session) Stats() game.PlayerStats             { return s.stats }
func (s *Session) Registry() *commands.Registry        { return s.registry }
func (s *Session) Busted() bool                        { return s.busted }

// BeginTurn runs the start of a turn: it may raise a random event and then
// cools the heat by the configured decay rate.
func (s *Session) BeginTurn(ctx context.Context) (*events.RandomEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var event *events.RandomEvent
	if s.cfg.EnableRandomEvents && !s.busted && s.events.ShouldTriggerEvent() {
		e := s.events.GenerateEvent(s.state.Heat(), s.state.Reputation())
		event = &e
		log.Info("event generated", "id", e.ID, "template", e.Template, "severity", e.Severity.String())
	}
	s.state.ApplyHeatDecay(s.cfg.HeatDecayRate)
	return event, nil
}

// Execute runs one line of player input.
func (s *Session) Execute(ctx context.Context, input string) (Result, error) {
	var res Result
	if s.busted {
		res.Outcome = OutcomeBusted
		res.say(game.StyleError, "  [✗] Connection lost. This agent has been traced.")
		return res, nil
	}

	name, args := commands.ParseArgs(input)
	if name == "" {
		return res, nil
	}
	info, ok := s.registry.Lookup(name)
	if !ok {
		res.sayf(game.StyleError, "  [!] Unknown command: %s", name)
		res.say(game.StyleDim, "  Type 'help' for available commands")
		return res, nil
	}
	s.stats.RecordCommand(info.Name)

	switch info.Name {
	case "clear":
		res.Outcome = OutcomeClear
		return res, nil
	case "logout":
		res.Outcome = OutcomeLogout
		res.sayf(game.StyleSuccess, "  [✓] Agent %s successfully logged out", s.player.Username)
		return res, nil
	}

	s.startTurn()
	var err error
	switch info.Name {
	case "help":
		s.help(args, &res)
	case "scan":
		s.scan(args, &res)
	case "exploit":
		s.exploit(args, &res)
	case "decrypt":
		s.decrypt(args, &res)
	case "inject":
		s.inject(args, &res)
	case "trace":
		s.trace(args, &res)
	case "status":
		s.status(&res)
	case "mission":
		s.mission(args, &res)
	case "darkweb":
		s.darkweb(args, &res)
	case "firewall":
		s.firewall(args, &res)
	case "netmap":
		s.netmap(args, &res)
	case "events":
		s.listEvents(&res)
	case "choose":
		err = s.choose(ctx, args, &res)
	case "achievements":
		s.achievements(&res)
	case "save":
		err = s.checkpoint(&res)
	}
	s.finishTurn(&res)
	return res, err
}

// Resolve answers a pending event with the choice at index (0-based).
func (s *Session) Resolve(ctx context.Context, eventID string, index int) (Result, error) {
	var res Result
	if s.busted {
		res.Outcome = OutcomeBusted
		return res, nil
	}
	s.startTurn()
	err := s.resolve(ctx, eventID, index, &res)
	s.finishTurn(&res)
	return res, err
}

func (s *Session) resolve(ctx context.Context, eventID string, index int, res *Result) error {
	r, err := s.events.HandleChoice(ctx, eventID, index, s.state)
	s.rep.Adjust(r.ReputationDelta)

	switch r.Status {
	case events.StatusUnknownEvent:
		res.sayf(game.StyleError, "  [!] No pending event %s", eventID)
		return err
	case events.StatusInvalidChoice:
		res.sayf(game.StyleError, "  [!] Invalid choice for %s. The opportunity has passed.", r.Event.Title)
		return err
	}

	res.sayf(game.StyleBright, "  [>] %s: %s", r.Event.Title, r.Choice.Label)
	for _, e := range r.Effects {
		res.say(e.Style, "  "+e.Text)
	}
	if err != nil {
		res.say(game.StyleError, "  [!] Interrupted.")
		log.Warn("event resolution interrupted", "id", eventID, "error", err)
		return err
	}

	if r.Special == events.AIBattle && r.Won {
		s.record(mission.TriggerAIDefeated, 1, res)
	}
	if r.Special == events.EncryptedFile && r.Won {
		s.record(mission.TriggerDecrypt, 1, res)
	}
	log.Info("event resolved", "id", eventID, "status", r.Status.String(), "reputation_delta", r.ReputationDelta)
	return nil
}

// Snapshot captures the session for saving.
func (s *Session) Snapshot() (save.SaveGame, error) {
	now := s.clock.Now()
	s.state.UpdateTimePlayed(now)

	data, err := json.Marshal(s.state)
	if err != nil {
		return save.SaveGame{}, fmt.Errorf("failed to snapshot game state: %w", err)
	}
	var state game.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return save.SaveGame{}, fmt.Errorf("failed to snapshot game state: %w", err)
	}

	return save.SaveGame{
		ID:           save.NewID(),
		Username:     s.player.Username,
		Version:      s.version,
		Timestamp:    now,
		GameState:    &state,
		Reputation:   s.rep.Snapshot(),
		Missions:     s.missions.Missions(),
		Achievements: s.book.Snapshot(),
		Stats:        s.stats,
	}, nil
}

func (s *Session) startTurn() {
	s.turn = turn{reputation: s.state.Reputation(), credits: s.state.Credits()}
}

func (s *Session) finishTurn(res *Result) {
	s.completeMissions(s.missions.CheckConditions(s.state), res)

	now := s.clock.Now()
	s.state.UpdateTimePlayed(now)
	res.Unlocked = s.book.Evaluate(mission.Turn{
		State:      s.state,
		Completed:  s.turn.completed,
		QuietHacks: s.turn.quietHacks,
		Now:        now,
	})
	for _, a := range res.Unlocked {
		res.sayf(game.StyleWarning, "  [★] ACHIEVEMENT UNLOCKED: %s (+%d pts)", a.Name, a.Points)
	}

	if s.state.IsBusted(s.cfg.MaxHeatLevel) {
		s.bust(res)
	}

	s.stats.RecordCredits(s.state.Credits() - s.turn.credits)
	s.stats.UpdateFromState(s.state)
	res.Completed = s.turn.completed
	res.ReputationDelta = s.state.Reputation() - s.turn.reputation
}

func (s *Session) bust(res *Result) {
	s.busted = true
	penalty := s.penalize(game.TraceCompleted)
	res.Outcome = OutcomeBusted
	res.say(game.StyleError, "  !!! SYSTEM COMPROMISED !!!")
	res.say(game.StyleError, "  [✗] Your location has been traced!")
	res.say(game.StyleError, "  [✗] Security forces have been dispatched!")
	res.say(game.StyleError, "  [✗] Emergency disconnect initiated!")
	log.Warn("agent busted", "username", s.player.Username, "heat", s.state.Heat(), "penalty", penalty)
}

// gain routes a reputation reward through the streak multiplier and mirrors
// the applied amount onto the game state.
func (s *Session) gain(base int) int {
	before := s.rep.Current()
	if s.cfg.EnableStreaks {
		s.rep.AddReputation(base)
	} else {
		s.rep.Adjust(base)
	}
	applied := s.rep.Current() - before
	s.state.AddReputation(applied)
	return applied
}

func (s *Session) penalize(e game.ReputationEvent) int {
	before := s.rep.Current()
	if s.cfg.EnableStreaks {
		e.Apply(s.rep)
	} else {
		s.rep.Adjust(e.BaseAmount())
	}
	applied := s.rep.Current() - before
	s.state.AddReputation(applied)
	return applied
}

// heat raises heat by amount scaled by difficulty and returns the increase.
func (s *Session) heat(amount float64) float64 {
	v := amount * s.cfg.HeatFactor()
	s.state.IncreaseHeat(v)
	return v
}

func (s *Session) record(trigger mission.Trigger, n int, res *Result) {
	s.completeMissions(s.missions.Record(trigger, n), res)
}

func (s *Session) completeMissions(done []mission.Mission, res *Result) {
	for _, m := range done {
		if !s.state.CompleteMission(m.ID) {
			continue
		}
		s.rep.Adjust(m.RewardReputation)
		s.state.AddReputation(m.RewardReputation)
		s.state.AddCredits(m.RewardCredits)
		s.turn.completed = append(s.turn.completed, m)

		res.sayf(game.StyleSuccess, "  [✓] MISSION COMPLETE: %s", m.Name)
		res.sayf(game.StyleSuccess, "      +%d reputation, +%d credits", m.RewardReputation, m.RewardCredits)
		log.Info("mission completed", "username", s.player.Username, "mission", m.ID)
	}
}
