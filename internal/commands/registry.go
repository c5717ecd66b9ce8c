package commands

import (
	"sort"
	"strings"
)

// Info describes one terminal command.
type Info struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
}

// Registry resolves command names and aliases.
type Registry struct {
	commands map[string]Info
	aliases  map[string]string
}

// NewRegistry returns a registry populated with every terminal command.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]Info),
		aliases:  make(map[string]string),
	}
	for _, info := range builtins {
		r.register(info)
	}
	return r
}

func (r *Registry) register(info Info) {
	r.commands[info.Name] = info
	for _, alias := range info.Aliases {
		r.aliases[alias] = info.Name
	}
}

var builtins = []Info{
	{"help", "Display available commands and their usage", "help [command]", []string{"?", "h"}},
	{"scan", "Scan network for targets and vulnerabilities", "scan [target_ip]", []string{"nmap", "recon"}},
	{"exploit", "Deploy exploit against identified vulnerability", "exploit <target> [vulnerability_id]", []string{"pwn", "attack"}},
	{"decrypt", "Decrypt intercepted data or files", "decrypt [encrypted_data|filename]", []string{"decode", "decipher"}},
	{"inject", "Inject payload into target system", "inject <target> [payload_type]", []string{"payload", "implant"}},
	{"trace", "Trace network route to target", "trace [target_ip]", []string{"traceroute", "track"}},
	{"status", "Display current agent status and statistics", "status", []string{"stats", "info"}},
	{"mission", "Access mission briefings and objectives", "mission [list|view|accept] [mission_id]", []string{"objective", "task"}},
	{"darkweb", "Access underground marketplace", "darkweb [browse|buy] [item_number]", []string{"market", "underground"}},
	{"firewall", "Analyze and breach firewall defenses", "firewall <target> [bypass|disable|analyze]", []string{"fw", "barrier"}},
	{"netmap", "Show the discovered network topology", "netmap [route <from> <to>]", []string{"map", "topology"}},
	{"events", "List pending events awaiting a response", "events", []string{"alerts"}},
	{"choose", "Respond to a pending event", "choose <event_id> <choice_number>", []string{"respond", "answer"}},
	{"achievements", "List achievements and points", "achievements", []string{"trophies"}},
	{"save", "Write a checkpoint of the current session", "save", []string{"checkpoint"}},
	{"clear", "Clear terminal screen", "clear", []string{"cls", "cl"}},
	{"logout", "Disconnect from the system", "logout", []string{"exit", "quit", "disconnect"}},
}

// Lookup resolves a command name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (Info, bool) {
	name = strings.ToLower(name)
	if info, ok := r.commands[name]; ok {
		return info, true
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.commands[canonical], true
	}
	return Info{}, false
}

// All returns every command sorted by name.
func (r *Registry) All() []Info {
	out := make([]Info, 0, len(r.commands))
	for _, info := range r.commands {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseArgs splits input on whitespace into a command and its arguments.
func ParseArgs(input string) (string, []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
