package commands

import (
	"fmt"
	"strings"

	"redline/internal/game"
)

var hostnamePrefixes = []string{
	"SRV", "WKS", "DB", "WEB", "APP", "FILE", "MAIL", "PROXY",
	"GW", "FW", "ROUTER", "SWITCH", "NODE", "HOST", "CLIENT",
}

var prefixNodeTypes = map[string]game.NodeType{
	"SRV":    game.NodeServer,
	"WKS":    game.NodeWorkstation,
	"CLIENT": game.NodeWorkstation,
	"HOST":   game.NodeWorkstation,
	"ROUTER": game.NodeRouter,
	"GW":     game.NodeRouter,
	"SWITCH": game.NodeRouter,
	"FW":     game.NodeFirewall,
	"DB":     game.NodeDatabase,
	"WEB":    game.NodeWebServer,
	"APP":    game.NodeWebServer,
	"PROXY":  game.NodeWebServer,
	"MAIL":   game.NodeMailServer,
	"FILE":   game.NodeServer,
	"NODE":   game.NodeServer,
}

var operatingSystems = []string{
	"Windows Server 2019",
	"Windows Server 2022",
	"Windows 10 Pro",
	"Windows 11 Enterprise",
	"Ubuntu 22.04 LTS",
	"Debian 11",
	"CentOS 8",
	"Red Hat Enterprise Linux 8",
	"macOS Monterey",
	"FreeBSD 13.0",
	"Kali Linux 2023.3",
	"pfSense 2.6",
	"VMware ESXi 7.0",
	"Cisco IOS 15.9",
	"Unknown/Custom OS",
}

// RandomIP returns a public-looking IPv4 address.
func RandomIP(r game.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		game.IntRange(r, 1, 255),
		game.IntRange(r, 0, 255),
		game.IntRange(r, 0, 255),
		game.IntRange(r, 1, 255))
}

// LocalIP returns an address in one of the private ranges.
func LocalIP(r game.Rand) string {
	prefix := game.Pick(r, []string{"192.168", "10.0", "172.16"})
	return fmt.Sprintf("%s.%d.%d", prefix, game.IntRange(r, 0, 255), game.IntRange(r, 1, 255))
}

// RandomMAC returns six colon-separated uppercase hex pairs.
func RandomMAC(r game.Rand) string {
	parts := make([]string, 6)
	for i := range parts {
		parts[i] = fmt.Sprintf("%02X", r.IntN(256))
	}
	return strings.Join(parts, ":")
}

// RandomHostname returns a PREFIX-NNN host name.
func RandomHostname(r game.Rand) string {
	return fmt.Sprintf("%s-%03d", game.Pick(r, hostnamePrefixes), game.IntRange(r, 1, 999))
}

// RandomOS returns an operating system banner.
func RandomOS(r game.Rand) string {
	return game.Pick(r, operatingSystems)
}

// NodeTypeFor classifies a host by its hostname prefix.
func NodeTypeFor(hostname string) game.NodeType {
	prefix, _, _ := strings.Cut(hostname, "-")
	if t, ok := prefixNodeTypes[strings.ToUpper(prefix)]; ok {
		return t
	}
	return game.NodeUnknown
}

// SecurityLevelFor rates a host by how many vulnerabilities it exposes.
// More holes means weaker security.
func SecurityLevelFor(vulnerabilities int) game.SecurityLevel {
	switch {
	case vulnerabilities >= 4:
		return game.SecurityNone
	case vulnerabilities == 3:
		return game.SecurityLow
	case vulnerabilities == 2:
		return game.SecurityMedium
	case vulnerabilities == 1:
		return game.SecurityHigh
	default:
		return game.SecurityMaximum
	}
}
