package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"redline/internal/commands"
	"redline/internal/events"
	"redline/internal/game"
	"redline/internal/log"
	"redline/internal/mission"
)

const rule = "═══════════════════════════════════════════════════════════════"

var exploitChances = map[game.SecurityLevel]float64{
	game.SecurityNone:    0.75,
	game.SecurityLow:     0.65,
	game.SecurityMedium:  0.5,
	game.SecurityHigh:    0.35,
	game.SecurityMaximum: 0.2,
}

const (
	unknownTargetChance = 0.5
	zeroDayBonus        = 0.15
	maxExploitChance    = 0.95
	injectChance        = 0.5
)

var printer = message.NewPrinter(language.English)

func banner(res *Result, title string) {
	res.say(game.StyleNormal, rule)
	res.say(game.StyleBright, "                    "+title)
	res.say(game.StyleNormal, rule)
}

func (s *Session) help(args []string, res *Result) {
	if len(args) > 0 {
		info, ok := s.registry.Lookup(args[0])
		if !ok {
			res.sayf(game.StyleError, "  [!] Unknown command: %s", args[0])
			return
		}
		res.sayf(game.StyleBright, "  %s", strings.ToUpper(info.Name))
		res.sayf(game.StyleNormal, "    %s", info.Description)
		res.sayf(game.StyleSecondary, "    Usage: %s", info.Usage)
		if len(info.Aliases) > 0 {
			res.sayf(game.StyleDim, "    Aliases: %s", strings.Join(info.Aliases, ", "))
		}
		return
	}

	banner(res, "AVAILABLE COMMANDS")
	for _, info := range s.registry.All() {
		res.sayf(game.StyleNormal, "  %-14s %s", info.Name, info.Description)
	}
	res.say(game.StyleNormal, rule)
	res.say(game.StyleDim, "  Type 'help <command>' for detailed usage")
}

// findNode resolves a target by IP or, failing that, by hostname.
func (s *Session) findNode(target string) (game.NetworkNode, bool) {
	nm := s.state.NetworkMap()
	if n, ok := nm.Node(target); ok {
		return n, true
	}
	for _, n := range nm.Nodes() {
		if strings.EqualFold(n.Hostname, target) {
			return n, true
		}
	}
	return game.NetworkNode{}, false
}

func (s *Session) scan(args []string, res *Result) {
	target := commands.NetworkTarget
	if len(args) > 0 {
		target = args[0]
	}
	deep := len(args) > 1 && (args[1] == "--deep" || args[1] == "deep")

	var result commands.ScanResult
	if deep && target != commands.NetworkTarget {
		result = commands.ScanResult{Target: target, Devices: []commands.Device{commands.DeepScan(s.rand, target)}}
	} else {
		result = commands.Scan(s.rand, target)
	}

	res.sayf(game.StyleNormal, "  [>] Scanning %s...", target)
	banner(res, "SCAN RESULTS")
	now := s.clock.Now()
	nm := s.state.NetworkMap()
	for _, d := range result.Devices {
		res.sayf(game.StyleBright, "  [+] %s", d.Hostname)
		res.sayf(game.StyleNormal, "      IP: %s", d.IP)
		res.sayf(game.StyleNormal, "      MAC: %s", d.MAC)
		res.sayf(game.StyleNormal, "      OS: %s", d.OS)
		if len(d.OpenPorts) > 0 {
			ports := make([]string, 0, len(d.OpenPorts))
			for _, p := range d.OpenPorts {
				ports = append(ports, strconv.Itoa(p))
			}
			res.sayf(game.StyleSuccess, "      Open Ports: %s", strings.Join(ports, " "))
		}
		for _, svc := range d.Services {
			res.sayf(game.StyleDim, "        %d/tcp %s %s", svc.Port, svc.Name, svc.Version)
		}
		if len(d.Vulnerabilities) > 0 {
			res.say(game.StyleWarning, "      Vulnerabilities:")
			for _, v := range d.Vulnerabilities {
				res.sayf(game.StyleError, "        - %s", v)
			}
		}

		node := d.Node()
		node.DiscoveredAt = now
		nm.AddNode(node)
		if d.IP != EntryIP {
			if err := nm.AddConnection(EntryIP, d.IP); err != nil {
				log.Debug("failed to link scanned host", "ip", d.IP, "error", err)
			}
		}
	}
	res.say(game.StyleNormal, rule)
	res.sayf(game.StyleDim, "  Total devices found: %d", len(result.Devices))

	s.state.RecordScan()
	s.gain(5)
	heat := 10.0
	if deep {
		heat = 20
	}
	s.heat(heat)
	s.record(mission.TriggerScan, 1, res)
	s.record(mission.TriggerVulnerability, result.VulnerabilityCount(), res)
}

func (s *Session) exploitChance(target string) float64 {
	chance := unknownTargetChance
	if n, ok := s.findNode(target); ok {
		chance = exploitChances[n.SecurityLevel]
	}
	if s.state.HasTool("zero_day_kit") {
		chance += zeroDayBonus
	}
	return min(chance, maxExploitChance)
}

func (s *Session) exploit(args []string, res *Result) {
	if len(args) < 1 {
		res.say(game.StyleError, "  [!] Usage: exploit <target> [vulnerability_id]")
		return
	}
	target := args[0]
	vuln := "auto"
	if len(args) > 1 {
		vuln = args[1]
	}

	res.sayf(game.StyleNormal, "  [>] Deploying exploit %s against %s...", vuln, target)
	heatBefore := s.state.Heat()
	if s.rand.Float64() >= s.exploitChance(target) {
		s.state.RecordFailedHack()
		s.penalize(game.HackFailed)
		s.heat(15)
		res.say(game.StyleError, "  [✗] Exploit failed!")
		return
	}

	s.state.RecordSuccessfulHack()
	hostname := target
	if n, ok := s.findNode(target); ok {
		hostname = n.Hostname
		if _, err := s.state.NetworkMap().MarkCompromised(n.IP); err != nil {
			log.Debug("failed to mark host compromised", "ip", n.IP, "error", err)
		}
	}
	exploitName := ""
	if vuln != "auto" {
		exploitName = vuln
		s.state.DiscoverExploit(vuln)
	}
	s.stats.RecordHack(hostname, exploitName)
	if heatBefore < mission.QuietHackHeat {
		s.turn.quietHacks++
	}

	gained := s.gain(20)
	s.heat(25)
	res.sayf(game.StyleSuccess, "  [✓] Exploit successful! Gained %d reputation", gained)
	s.record(mission.TriggerExploit, 1, res)
	s.record(mission.TriggerHack, 1, res)
}

func (s *Session) decrypt(args []string, res *Result) {
	switch {
	case len(args) == 0:
		blob := commands.EncryptedBlob(s.rand)
		res.sayf(game.StyleDim, "  [>] Decrypting %s...", blob)
		res.sayf(game.StyleSuccess, "  [✓] Decrypted: %s", commands.DecryptPayload(s.rand))
	case commands.LooksLikeFile(args[0]):
		fc := commands.DecryptFile(s.rand, args[0])
		res.sayf(game.StyleDim, "  [>] Decrypting %s...", fc.Filename)
		res.sayf(game.StyleBright, "  FILE: %s  TYPE: %s  SIZE: %s bytes  OWNER: %s",
			fc.Filename, fc.Type, printer.Sprintf("%d", fc.Size), fc.Owner)
		for _, line := range strings.Split(fc.Content, "\n") {
			res.say(game.StyleNormal, "    "+line)
		}
		s.stats.RecordExtraction(fc.Size)
		if fc.Type == commands.FileDatabase {
			s.record(mission.TriggerExfiltrate, 1, res)
		}
	default:
		data := strings.Join(args, " ")
		res.sayf(game.StyleDim, "  [>] Decrypting %s...", data)
		res.sayf(game.StyleSuccess, "  [✓] Decrypted: %s", commands.DecryptPayload(s.rand))
	}

	s.state.RecordDecryption()
	s.gain(10)
	s.heat(5)
	s.record(mission.TriggerDecrypt, 1, res)
}

func (s *Session) inject(args []string, res *Result) {
	if len(args) == 0 {
		res.say(game.StyleError, "  [!] Usage: inject <target> [payload_type]")
		return
	}
	target := args[0]
	payload := "trojan"
	if len(args) > 1 {
		payload = args[1]
	}

	res.sayf(game.StyleNormal, "  [>] Preparing %s payload for %s...", payload, target)
	res.say(game.StyleNormal, "  [>] Establishing connection...")
	res.say(game.StyleNormal, "  [>] Bypassing security...")
	res.say(game.StyleNormal, "  [>] Injecting payload...")

	heatBefore := s.state.Heat()
	if s.rand.Float64() >= injectChance {
		s.state.RecordFailedHack()
		s.heat(10)
		res.say(game.StyleError, "  [✗] Injection failed - Target secured")
		return
	}

	s.state.RecordSuccessfulHack()
	hostname := target
	if n, ok := s.findNode(target); ok {
		hostname = n.Hostname
	}
	s.stats.RecordHack(hostname, payload)
	if heatBefore < mission.QuietHackHeat {
		s.turn.quietHacks++
	}
	s.gain(15)
	s.heat(20)
	res.sayf(game.StyleSuccess, "  [✓] %s successfully injected into %s", payload, target)
	s.record(mission.TriggerInject, 1, res)
	s.record(mission.TriggerHack, 1, res)
}

func (s *Session) trace(args []string, res *Result) {
	var target string
	if len(args) > 0 {
		target = args[0]
	} else {
		target = commands.RandomIP(s.rand)
	}

	res.sayf(game.StyleNormal, "  [>] Tracing route to %s...", target)
	hops := commands.TraceRoute(s.rand, target)
	for i, h := range hops {
		line := fmt.Sprintf("  %2d  %-15s  [%d ms]", h.N, h.IP, h.Latency.Milliseconds())
		if i == len(hops)-1 {
			res.say(game.StyleSuccess, line+"  [TARGET REACHED]")
			continue
		}
		res.say(game.StyleNormal, line)
	}
	res.sayf(game.StyleSuccess, "  [✓] Trace complete: %d hops to target", len(hops))

	if n, ok := s.findNode(target); ok && n.IP != EntryIP {
		if route, err := s.state.NetworkMap().Route(EntryIP, n.IP); err == nil {
			res.sayf(game.StyleSecondary, "  [*] Known route: %s", strings.Join(route, " -> "))
		}
	}
	s.heat(3)
}

func (s *Session) status(res *Result) {
	st := s.state
	banner(res, "AGENT STATUS")
	res.sayf(game.StyleNormal, "  Agent:      %s", st.Username())
	res.sayf(game.StyleNormal, "  Level:      %d - %s", int(st.Level()), st.LevelTitle())
	res.sayf(game.StyleNormal, "  Rank:       %s (%.0f%%)", s.rep.Level().DisplayName(), s.rep.LevelProgress())
	res.sayf(game.StyleNormal, "  Reputation: %d", st.Reputation())
	res.sayf(game.StyleNormal, "  Streak:     %d (%s)", s.rep.Streak(), s.rep.StreakBonusDescription())
	res.sayf(game.StyleNormal, "  Credits:    %s", printer.Sprintf("%d", st.Credits()))
	res.say(st.HeatBand(), "  Heat Level: "+st.HeatBar())
	res.sayf(game.StyleNormal, "  Missions:   %d completed", st.MissionsCompleted())
	res.sayf(game.StyleNormal, "  Hacks:      %d successful, %d failed (%.0f%%)", st.SuccessfulHacks(), st.FailedHacks(), st.SuccessRate())
	res.sayf(game.StyleNormal, "  Scans:      %d", st.TotalScans())
	res.sayf(game.StyleNormal, "  Decrypted:  %d", st.FilesDecrypted())
	res.sayf(game.StyleNormal, "  Tools:      %s", strings.Join(st.UnlockedTools(), ", "))
	res.say(game.StyleNormal, rule)
}

func (s *Session) mission(args []string, res *Result) {
	action := "list"
	if len(args) > 0 {
		action = strings.ToLower(args[0])
	}
	var id string
	if len(args) > 1 {
		id = strings.ToUpper(args[1])
	}

	switch action {
	case "list":
		banner(res, "MISSION BRIEFING")
		for _, m := range s.missions.Active() {
			res.sayf(game.StyleSuccess, "  [%s] %s (ACTIVE, %.0f%%)", m.ID, m.Name, m.CompletionPercentage())
		}
		for _, m := range s.missions.Available(s.state) {
			res.sayf(game.StyleBright, "  [%s] %s", m.ID, m.Name)
			res.sayf(game.StyleNormal, "    Description: %s", m.Description)
			res.sayf(difficultyStyle(m.Difficulty), "    Risk: %s", strings.ToUpper(m.Difficulty.String()))
			res.sayf(game.StyleNormal, "    Reward: %d reputation, %d credits", m.RewardReputation, m.RewardCredits)
		}
		res.say(game.StyleNormal, rule)
		res.say(game.StyleDim, "  Type 'mission accept <id>' to accept a mission")
	case "view":
		m, ok := s.missions.Mission(id)
		if !ok {
			res.sayf(game.StyleError, "  [!] Unknown mission: %s", id)
			return
		}
		res.sayf(game.StyleBright, "  [%s] %s", m.ID, m.Name)
		res.sayf(game.StyleNormal, "    %s", m.Description)
		for _, o := range m.Objectives {
			mark, style := "[ ]", game.StyleNormal
			if o.Completed {
				mark, style = "[✓]", game.StyleSuccess
			}
			res.sayf(style, "    %s %s (%d/%d)", mark, o.Description, o.Progress, o.Required)
		}
		if left, ok := m.TimeRemaining(s.clock.Now()); ok {
			res.sayf(game.StyleWarning, "    Time remaining: %s", left.Round(time.Second))
		}
		res.sayf(game.StyleDim, "    Progress: %.1f%%", m.CompletionPercentage())
	case "accept":
		m, err := s.missions.Accept(id, s.state, s.clock.Now())
		if err != nil {
			res.sayf(game.StyleError, "  [!] Cannot accept %s: %v", id, err)
			return
		}
		res.sayf(game.StyleSuccess, "  [✓] Mission accepted: %s", m.Name)
		if m.TimeLimit > 0 {
			res.sayf(game.StyleWarning, "  [!] Time limit: %s", m.TimeLimit)
		}
		log.Info("mission accepted", "username", s.player.Username, "mission", m.ID)
	default:
		res.say(game.StyleError, "  [!] Usage: mission [list|view|accept] [mission_id]")
	}
}

func difficultyStyle(d mission.Difficulty) game.Style {
	switch {
	case d >= mission.Extreme:
		return game.StyleError
	case d >= mission.Hard:
		return game.StyleWarning
	default:
		return game.StyleSuccess
	}
}

func (s *Session) darkweb(args []string, res *Result) {
	if len(args) > 0 && strings.EqualFold(args[0], "buy") {
		s.buy(args[1:], res)
		return
	}

	res.say(game.StyleNormal, "  [>] Connecting to dark web...")
	banner(res, "DARK WEB MARKETPLACE")
	for i, item := range commands.Market() {
		res.sayf(game.StyleNormal, "  [%d] %s", i+1, item.Name)
		res.sayf(game.StyleDim, "      Price: %s credits", printer.Sprintf("%d", item.Price))
	}
	res.say(game.StyleNormal, rule)
	res.say(game.StyleDim, "  Type 'darkweb buy <item_number>' to purchase")
	s.heat(5)
}

func (s *Session) buy(args []string, res *Result) {
	if len(args) == 0 {
		res.say(game.StyleError, "  [!] Usage: darkweb buy <item_number>")
		return
	}
	n, err := strconv.Atoi(args[0])
	item, ok := commands.MarketItemByNumber(n)
	if err != nil || !ok {
		res.sayf(game.StyleError, "  [!] No such item: %s", args[0])
		return
	}
	if s.state.HasTool(item.Tool) {
		res.sayf(game.StyleWarning, "  [!] You already own %s", item.Name)
		return
	}
	if !s.state.SpendCredits(item.Price) {
		res.sayf(game.StyleError, "  [!] Insufficient credits! %s costs %s", item.Name, printer.Sprintf("%d", item.Price))
		return
	}
	s.state.UnlockTool(item.Tool)
	res.sayf(game.StyleSuccess, "  [✓] Purchased %s", item.Name)
	log.Info("market purchase", "username", s.player.Username, "tool", item.Tool, "price", item.Price)
}

func (s *Session) firewall(args []string, res *Result) {
	if len(args) == 0 {
		res.say(game.StyleError, "  [!] Usage: firewall <target> [bypass|disable|analyze]")
		return
	}
	target := args[0]
	action := "analyze"
	if len(args) > 1 {
		action = strings.ToLower(args[1])
	}

	res.sayf(game.StyleNormal, "  [>] Analyzing firewall on %s...", target)
	switch action {
	case "bypass":
		res.say(game.StyleNormal, "  [>] Attempting to bypass firewall...")
		res.say(game.StyleSuccess, "  [✓] Firewall bypassed successfully")
		s.gain(25)
		s.heat(30)
		s.record(mission.TriggerFirewall, 1, res)
	case "disable":
		res.say(game.StyleNormal, "  [>] Attempting to disable firewall...")
		res.say(game.StyleWarning, "  [!] Firewall temporarily disabled")
		s.gain(30)
		s.heat(40)
		s.record(mission.TriggerFirewall, 1, res)
		s.record(mission.TriggerFirewallDisable, 1, res)
	default:
		res.say(game.StyleNormal, "  Firewall Analysis:")
		res.say(game.StyleNormal, "    Type: Next-Gen Enterprise Firewall")
		res.say(game.StyleNormal, "    Rules: 247 active")
		res.say(game.StyleNormal, "    IDS/IPS: Enabled")
		res.say(game.StyleWarning, "    Vulnerabilities: 3 potential weaknesses detected")
		s.heat(5)
	}
}

func (s *Session) netmap(args []string, res *Result) {
	nm := s.state.NetworkMap()
	if len(args) > 0 && strings.EqualFold(args[0], "route") {
		if len(args) < 3 {
			res.say(game.StyleError, "  [!] Usage: netmap route <from> <to>")
			return
		}
		route, err := nm.Route(args[1], args[2])
		if err != nil {
			res.sayf(game.StyleError, "  [!] %v", err)
			return
		}
		res.sayf(game.StyleSuccess, "  [✓] %s (%d hops)", strings.Join(route, " -> "), len(route)-1)
		return
	}

	banner(res, "NETWORK MAP")
	for _, n := range nm.Nodes() {
		style, mark := game.StyleNormal, " "
		if n.Compromised {
			style, mark = game.StyleSuccess, "*"
		}
		res.sayf(style, "  %s %-15s %-10s %-12s security: %s", mark, n.IP, n.Hostname, n.Type, n.SecurityLevel)
		for _, peer := range nm.ConnectedNodes(n.IP) {
			res.sayf(game.StyleDim, "      -> %s (%s)", peer.IP, peer.Hostname)
		}
	}
	res.say(game.StyleNormal, rule)
	res.sayf(game.StyleDim, "  %d hosts, %d links. * = compromised", nm.Len(), len(nm.Connections()))
}

func (s *Session) listEvents(res *Result) {
	now := s.clock.Now()
	pending := s.events.PendingEvents()
	if len(pending) == 0 {
		res.say(game.StyleDim, "  No pending events.")
	}
	for _, e := range pending {
		RenderEvent(e, now, res)
	}
	if last, ok := s.events.LastEventTime(); ok {
		res.sayf(game.StyleDim, "  Last event: %s ago", now.Sub(last).Round(time.Second))
	}
	if len(pending) > 0 {
		res.say(game.StyleDim, "  Type 'choose <event_id> <choice_number>' to respond")
	}
}

// RenderEvent writes an event and its numbered choices.
func RenderEvent(e events.RandomEvent, now time.Time, res *Result) {
	res.say(game.StyleNormal, rule)
	switch e.Severity {
	case events.SeverityCritical:
		res.sayf(game.StyleError, "  [!!!] %s [!!!]", e.Title)
	case events.SeverityHigh:
		res.sayf(game.StyleWarning, "  [!!] %s [!!]", e.Title)
	case events.SeverityMedium:
		res.sayf(game.StyleBright, "  [!] %s [!]", e.Title)
	default:
		res.sayf(game.StyleNormal, "  [*] %s [*]", e.Title)
	}
	res.say(game.StyleNormal, rule)
	res.sayf(game.StyleSecondary, "  %s", e.Description)
	res.sayf(game.StyleDim, "  id: %s", e.ID)
	for i, c := range e.Choices {
		res.say(game.StyleNormal, fmt.Sprintf("  [%d] ", i+1)+ChoiceLabel(c))
	}
	if deadline, ok := e.Deadline(); ok {
		if left := deadline.Sub(now); left > 0 {
			res.sayf(game.StyleWarning, "  Respond within %s", left.Round(time.Second))
		} else {
			res.say(game.StyleDim, "  The suggested response window has passed")
		}
	}
}

// ChoiceLabel is the label of a choice with its cost, if any.
func ChoiceLabel(c events.EventChoice) string {
	if c.Cost == nil {
		return c.Label
	}
	return fmt.Sprintf("%s (Cost: %s)", c.Label, c.Cost)
}

// findEvent matches a pending event by id or unique id prefix.
func (s *Session) findEvent(ref string) (events.RandomEvent, bool) {
	var match events.RandomEvent
	found := 0
	for _, e := range s.events.PendingEvents() {
		if e.ID == ref {
			return e, true
		}
		if strings.HasPrefix(e.ID, ref) {
			match = e
			found++
		}
	}
	return match, found == 1
}

func (s *Session) choose(ctx context.Context, args []string, res *Result) error {
	if len(args) < 2 {
		res.say(game.StyleError, "  [!] Usage: choose <event_id> <choice_number>")
		return nil
	}
	id := args[0]
	if e, ok := s.findEvent(id); ok {
		id = e.ID
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		res.sayf(game.StyleError, "  [!] Invalid choice number: %s", args[1])
		return nil
	}
	return s.resolve(ctx, id, n-1, res)
}

func (s *Session) achievements(res *Result) {
	banner(res, "ACHIEVEMENTS")
	for _, a := range s.book.Achievements() {
		if a.Unlocked {
			res.sayf(game.StyleSuccess, "  [★] %s (%s, %d pts)", a.Name, a.Rarity, a.Points)
		} else {
			res.sayf(game.StyleDim, "  [ ] %s (%s)", a.Name, a.Rarity)
		}
		res.sayf(game.StyleDim, "      %s", a.Description)
	}
	res.say(game.StyleNormal, rule)
	res.sayf(game.StyleBright, "  Total points: %d", s.book.Points())
	res.say(game.StyleNormal, rule)
	current := s.rep.Level()
	for _, level := range game.AllLevels() {
		switch {
		case level == current:
			res.sayf(level.Style(), "  [>] %-17s %5d+", level.DisplayName(), level.Requirement())
		case level < current:
			res.sayf(game.StyleSuccess, "  [x] %-17s %5d+", level.DisplayName(), level.Requirement())
		default:
			res.sayf(game.StyleDim, "  [ ] %-17s %5d+", level.DisplayName(), level.Requirement())
		}
	}
}

func (s *Session) checkpoint(res *Result) error {
	sg, err := s.Snapshot()
	if err != nil {
		res.say(game.StyleError, "  [!] Checkpoint failed")
		return err
	}
	res.Save = &sg
	res.say(game.StyleNormal, "  [>] Writing checkpoint...")
	return nil
}
