package events

import (
	"context"
	"time"

	"redline/internal/game"
)

type specialPlan struct {
	delay     time.Duration
	progress  string
	threshold float64
	win       func(s *game.GameState, res *Resolution)
	lose      func(s *game.GameState, res *Resolution)
}

func (sp Special) plan() specialPlan {
	switch sp {
	case Negotiation:
		return specialPlan{
			delay: 2 * time.Second, progress: "[>] Negotiating price...", threshold: 0.5,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] Negotiation successful! 50%% discount obtained!")
				credits(s, res, 250)
			},
			lose: func(_ *game.GameState, res *Resolution) {
				res.note(game.StyleWarning, "[!] Negotiation failed. Seller vanished.")
			},
		}
	case RaceRival:
		return specialPlan{
			delay: 3 * time.Second, progress: "[>] Racing against rival hacker...", threshold: 0.4,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] Victory! You beat the rival!")
				reputation(s, res, 30)
				credits(s, res, 300)
			},
			lose: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleError, "[✗] The rival was faster!")
				reputation(s, res, -10)
			},
		}
	case AIBattle:
		return specialPlan{
			delay: 5 * time.Second, progress: "[>] Engaging AI defense system...", threshold: 0.3,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] AI defeated! System compromised!")
				reputation(s, res, 100)
				exploit(s, res, "AI_Slayer")
			},
			lose: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleError, "[✗] AI victorious. Connection terminated.")
				heat(s, res, 50)
			},
		}
	case EncryptedFile:
		return specialPlan{
			delay: 2 * time.Second, progress: "[>] Cracking downloaded archive...", threshold: 0.4,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] Archive cracked! Sold the contents.")
				credits(s, res, 150)
				s.RecordDecryption()
			},
			lose: func(_ *game.GameState, res *Resolution) {
				res.note(game.StyleWarning, "[!] Archive was corrupted. Nothing recovered.")
			},
		}
	case PersistentAccess:
		return specialPlan{
			delay: 2 * time.Second, progress: "[>] Installing custom backdoor...", threshold: 0.3,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] Backdoor installed. Persistent access secured!")
				exploit(s, res, "Persistent_Backdoor")
				reputation(s, res, 20)
			},
			lose: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleError, "[✗] Installation detected by an admin!")
				heat(s, res, 15)
			},
		}
	case HoneypotReversed:
		return specialPlan{
			delay: 3 * time.Second, progress: "[>] Feeding the honeypot poisoned data...", threshold: 0.5,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] Trap reversed! Their logs now point elsewhere.")
				reputation(s, res, 50)
				heat(s, res, -20)
			},
			lose: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleError, "[✗] The watchers noticed. Trap sprung!")
				heat(s, res, 30)
			},
		}
	case Sabotage:
		return specialPlan{
			delay: 2 * time.Second, progress: "[>] Sabotaging rival connection...", threshold: 0.4,
			win: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleSuccess, "[+] Rival knocked offline!")
				reputation(s, res, 20)
			},
			lose: func(s *game.GameState, res *Resolution) {
				res.note(game.StyleError, "[✗] Sabotage traced back to you!")
				reputation(s, res, -15)
				heat(s, res, 10)
			},
		}
	default:
		return specialPlan{}
	}
}

func (m *Manager) resolveSpecial(ctx context.Context, sp Special, s *game.GameState, res *Resolution) error {
	res.Special = sp
	p := sp.plan()
	if p.win == nil {
		res.note(game.StyleNormal, "[>] Special action: %s", sp)
		return nil
	}

	res.note(game.StyleNormal, "%s", p.progress)
	if err := m.sleeper.Sleep(ctx, p.delay); err != nil {
		return err
	}

	if m.rand.Float64() > p.threshold {
		res.Won = true
		p.win(s, res)
	} else {
		p.lose(s, res)
	}
	return nil
}

func credits(s *game.GameState, res *Resolution, n int) {
	s.AddCredits(n)
	res.note(game.StyleSuccess, "[+] %+d credits", n)
}

func reputation(s *game.GameState, res *Resolution, n int) {
	s.AddReputation(n)
	style := game.StyleSuccess
	if n < 0 {
		style = game.StyleError
	}
	res.note(style, "[%s] %+d reputation", sign(n), n)
}

func heat(s *game.GameState, res *Resolution, delta float64) {
	if delta < 0 {
		s.DecreaseHeat(-delta)
		res.note(game.StyleSuccess, "[+] Heat reduced by %g%%", -delta)
		return
	}
	s.IncreaseHeat(delta)
	res.note(game.StyleWarning, "[!] Heat increased by %g%%", delta)
}

func exploit(s *game.GameState, res *Resolution, name string) {
	if s.DiscoverExploit(name) {
		res.note(game.StyleSuccess, "[+] Exploit discovered: %s", name)
	}
}

func sign(n int) string {
	if n < 0 {
		return "-"
	}
	return "+"
}
