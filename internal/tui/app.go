package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"redline/internal/events"
	"redline/internal/game"
	"redline/internal/log"
	"redline/internal/session"
	"redline/internal/theme"
	"redline/internal/tui/components"
)

const (
	pageLogin    = "login"
	pageTerminal = "terminal"
	pageEvent    = "event"
)

// App is the full-screen terminal client.
type App struct {
	app        *tview.Application
	pages      *tview.Pages
	mainLayout *tview.Flex
	ctrl       *Controller
	ctx        context.Context

	login    *components.LoginDialog
	terminal *components.TerminalComponent
	status   *components.StatusComponent
	network  *components.NetworkPanel

	shortcuts *ShortcutManager
}

// NewApp builds the login and terminal pages around a controller.
func NewApp(ctrl *Controller) *App {
	a := &App{
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		ctrl:      ctrl,
		ctx:       context.Background(),
		status:    components.NewStatusComponent(),
		network:   components.NewNetworkPanel(),
		shortcuts: NewShortcutManager(),
	}
	a.login = components.NewLoginDialog(components.LoginCallbacks{
		Login:    a.doLogin,
		Register: a.doRegister,
		Quit:     a.quit,
	})
	a.terminal = components.NewTerminalComponent(a.submit)

	a.setupUI()
	a.setupShortcuts()
	return a
}

func (a *App) setupUI() {
	a.mainLayout = theme.NewFlex().
		AddItem(a.status.GetView(), 30, 0, false).
		AddItem(a.terminal.GetWrapper(), 0, 1, true).
		AddItem(a.network.GetView(), 44, 0, false)

	a.pages.AddPage(pageLogin, a.login.GetView(), true, true)
	a.pages.AddPage(pageTerminal, a.mainLayout, true, false)
	a.app.SetRoot(a.pages, true)
	a.app.SetFocus(a.login.GetForm())
}

func (a *App) setupShortcuts() {
	a.shortcuts.RegisterShortcut("f1", func() { a.submit("help") })
	a.shortcuts.RegisterShortcut("ctrl+s", a.saveNow)
	a.shortcuts.RegisterShortcut("ctrl+l", a.terminal.Clear)
	a.shortcuts.RegisterShortcut("ctrl+q", a.quit)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			a.quit()
			return nil
		}
		if name, _ := a.pages.GetFrontPage(); name != pageTerminal {
			return event
		}
		if a.shortcuts.HandleKeyEvent(event) {
			return nil
		}
		return event
	})
}

// Run shows the UI until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}

// SetFresh makes the login screen default to a fresh start.
func (a *App) SetFresh(fresh bool) {
	a.login.SetFresh(fresh)
}

// Shutdown saves and logs out the current agent.
func (a *App) Shutdown(ctx context.Context) error {
	return a.ctrl.Logout(ctx)
}

func (a *App) quit() {
	go func() {
		if err := a.ctrl.Logout(a.ctx); err != nil {
			log.Error("failed to save on quit", "error", err)
		}
		a.app.Stop()
	}()
}

func (a *App) doLogin(username, password string, fresh bool) {
	a.login.SetMessage(game.StyleDim, "Authenticating...")
	go func() {
		w, err := a.ctrl.Login(a.ctx, username, password, fresh)
		a.app.QueueUpdateDraw(func() { a.enter(w, err) })
	}()
}

func (a *App) doRegister(username, password, confirm string) {
	a.login.SetMessage(game.StyleDim, "Creating agent...")
	go func() {
		w, err := a.ctrl.Register(a.ctx, username, password, confirm)
		a.app.QueueUpdateDraw(func() { a.enter(w, err) })
	}()
}

// WelcomeLines greets an agent entering the terminal.
func WelcomeLines(w Welcome) []session.Line {
	lines := []session.Line{
		{Style: game.StyleBright, Text: "CRIMSON REDLINE // secure shell established"},
		{Style: game.StyleNormal, Text: fmt.Sprintf("Welcome, %s. Reputation: %d", w.User.Username, w.User.Reputation)},
	}
	switch {
	case w.Corrupt:
		lines = append(lines, session.Line{Style: game.StyleWarning, Text: "Saved session was unreadable. Starting a fresh operation."})
	case w.Resumed:
		lines = append(lines, session.Line{Style: game.StyleSuccess, Text: "Previous session restored."})
	default:
		lines = append(lines, session.Line{Style: game.StyleSecondary, Text: "New operation started."})
	}
	return append(lines, session.Line{Style: game.StyleDim, Text: "Type 'help' for commands. F1 help, Ctrl+S save, Ctrl+L clear, Ctrl+Q quit."})
}

func (a *App) enter(w Welcome, err error) {
	if err != nil {
		a.login.SetMessage(game.StyleError, err.Error())
		return
	}
	a.login.Reset()
	a.login.SetMessage(game.StyleNormal, "")
	a.terminal.Clear()
	a.terminal.Write(WelcomeLines(w))
	a.refresh()
	a.pages.SwitchToPage(pageTerminal)
	a.app.SetFocus(a.terminal.GetInput())
}

func (a *App) refresh() {
	s := a.ctrl.Session()
	a.status.Update(s)
	if s == nil {
		a.network.Update(nil)
		return
	}
	a.network.Update(s.State().NetworkMap())
}

func (a *App) submit(command string) {
	if a.ctrl.Session() == nil {
		return
	}
	a.terminal.Echo(command)
	a.terminal.SetBusy(true)
	go func() {
		turn, err := a.ctrl.Execute(a.ctx, command)
		a.app.QueueUpdateDraw(func() {
			a.terminal.SetBusy(false)
			a.handleTurn(turn, err)
		})
	}()
}

func (a *App) handleTurn(turn Turn, err error) {
	if turn.Outcome == session.OutcomeClear {
		a.terminal.Clear()
	} else {
		a.terminal.Write(turn.Lines)
	}
	if err != nil {
		log.Error("command failed", "error", err)
		a.terminal.Write([]session.Line{{Style: game.StyleError, Text: "Error: " + err.Error()}})
	}

	switch turn.Outcome {
	case session.OutcomeBusted:
		a.showBusted()
		return
	case session.OutcomeLogout:
		a.backToLogin("Session saved. Goodbye, agent.")
		return
	}
	a.refresh()
	if turn.Event != nil {
		a.showEvent(*turn.Event)
	}
}

func (a *App) showEvent(e events.RandomEvent) {
	modal := components.NewEventModal(e, time.Now(), func(index int) {
		a.closeModal()
		if index < 0 {
			a.terminal.Write([]session.Line{{Style: game.StyleDim, Text: "Event left pending. Use 'events' and 'choose' to respond."}})
			return
		}
		a.terminal.SetBusy(true)
		go func() {
			res, err := a.ctrl.Resolve(a.ctx, e.ID, index)
			a.app.QueueUpdateDraw(func() {
				a.terminal.SetBusy(false)
				a.handleTurn(Turn{Result: res}, err)
			})
		}()
	})
	a.showModal(modal)
}

func (a *App) showBusted() {
	modal := theme.NewModal().
		SetText("BUSTED\n\nTrace complete. Your operation has been burned and the save wiped.").
		AddButtons([]string{"Disconnect"}).
		SetDoneFunc(func(int, string) {
			a.closeModal()
			a.backToLogin("Connection terminated by the authorities.")
		})
	a.showModal(modal)
}

func (a *App) backToLogin(message string) {
	a.refresh()
	a.login.SetMessage(game.StyleWarning, message)
	a.pages.SwitchToPage(pageLogin)
	a.app.SetFocus(a.login.GetForm())
}

func (a *App) saveNow() {
	go func() {
		err := a.ctrl.Save(a.ctx)
		a.app.QueueUpdateDraw(func() {
			switch {
			case errors.Is(err, ErrNotLoggedIn):
			case err != nil:
				log.Error("manual save failed", "error", err)
				a.terminal.Write([]session.Line{{Style: game.StyleError, Text: "Save failed: " + err.Error()}})
			default:
				a.terminal.Write([]session.Line{{Style: game.StyleSuccess, Text: "Session saved."}})
			}
		})
	}()
}

func (a *App) showModal(p tview.Primitive) {
	a.pages.AddPage(pageEvent, p, true, true)
	a.app.SetFocus(p)
}

func (a *App) closeModal() {
	a.pages.RemovePage(pageEvent)
	if name, _ := a.pages.GetFrontPage(); name == pageTerminal {
		a.app.SetFocus(a.terminal.GetInput())
	}
}
