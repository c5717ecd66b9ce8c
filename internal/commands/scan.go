package commands

import (
	"fmt"
	"net/netip"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"redline/internal/game"
)

// NetworkTarget is the scan target that sweeps the local network.
const NetworkTarget = "network"

var commonPorts = []int{21, 22, 23, 25, 53, 80, 110, 443, 445, 3306, 3389, 8080, 8443}

// Service is a listening service found on an open port.
type Service struct {
	Port       int
	Name       string
	Version    string
	Vulnerable bool
}

// Device is one host found by a scan.
type Device struct {
	IP              string
	Hostname        string
	MAC             string
	OS              string
	OpenPorts       []int
	Services        []Service
	Vulnerabilities []string
}

// Node converts the device into a network map node.
func (d Device) Node() game.NetworkNode {
	return game.NetworkNode{
		IP:            d.IP,
		Hostname:      d.Hostname,
		Type:          NodeTypeFor(d.Hostname),
		SecurityLevel: SecurityLevelFor(len(d.Vulnerabilities)),
	}
}

// ScanResult is the output of a scan.
type ScanResult struct {
	Target  string
	Devices []Device
}

// VulnerabilityCount totals the vulnerabilities across every device.
func (s ScanResult) VulnerabilityCount() int {
	n := 0
	for _, d := range s.Devices {
		n += len(d.Vulnerabilities)
	}
	return n
}

// Scan sweeps the local network for 5 to 14 devices, or probes a single
// target. A target that parses as an IP keeps that address.
func Scan(r game.Rand, target string) ScanResult {
	if target == "" {
		target = NetworkTarget
	}
	if target == NetworkTarget {
		count := game.IntRange(r, 5, 15)
		devices := make([]Device, 0, count)
		for range count {
			devices = append(devices, generateDevice(r, LocalIP(r)))
		}
		return ScanResult{Target: target, Devices: devices}
	}

	ip := target
	if _, err := netip.ParseAddr(target); err != nil {
		ip = RandomIP(r)
	}
	return ScanResult{Target: target, Devices: []Device{generateDevice(r, ip)}}
}

func generateDevice(r game.Rand, ip string) Device {
	d := Device{
		IP:       ip,
		Hostname: RandomHostname(r),
		MAC:      RandomMAC(r),
		OS:       RandomOS(r),
	}

	seen := mapset.New[int]()
	for range game.IntRange(r, 2, 8) {
		port := game.Pick(r, commonPorts)
		if !seen.Has(port) {
			seen.Put(port)
			d.OpenPorts = append(d.OpenPorts, port)
		}
	}
	slices.Sort(d.OpenPorts)

	d.Services = generateServices(r, d.OpenPorts)
	if r.Float64() > 0.3 {
		d.Vulnerabilities = generateVulnerabilities(r, d.Services)
	}
	return d
}

func generateServices(r game.Rand, ports []int) []Service {
	services := make([]Service, 0, len(ports))
	for _, port := range ports {
		name, version := serviceBanner(r, port)
		services = append(services, Service{
			Port:       port,
			Name:       name,
			Version:    version,
			Vulnerable: r.Float64() > 0.6,
		})
	}
	return services
}

func serviceBanner(r game.Rand, port int) (string, string) {
	n := func(lo, hi int) int { return game.IntRange(r, lo, hi) }
	switch port {
	case 21:
		return "FTP", fmt.Sprintf("vsftpd %d.%d.%d", n(2, 4), n(0, 10), n(0, 20))
	case 22:
		return "SSH", fmt.Sprintf("OpenSSH_%d.%dp%d", n(7, 9), n(0, 10), n(1, 5))
	case 23:
		return "Telnet", "Generic Telnet Service"
	case 25:
		return "SMTP", fmt.Sprintf("Postfix %d.%d", n(2, 4), n(0, 20))
	case 53:
		return "DNS", fmt.Sprintf("BIND %d.%d.%d", n(9, 10), n(10, 20), n(0, 10))
	case 80:
		return "HTTP", fmt.Sprintf("Apache/%d.%d.%d", n(2, 3), n(2, 5), n(0, 50))
	case 110:
		return "POP3", "Dovecot pop3d"
	case 443:
		return "HTTPS", fmt.Sprintf("nginx/%d.%d.%d", n(1, 2), n(18, 25), n(0, 10))
	case 445:
		return "SMB", "Windows SMB Service"
	case 3306:
		return "MySQL", fmt.Sprintf("MySQL %d.%d.%d", n(5, 9), n(0, 8), n(0, 40))
	case 3389:
		return "RDP", "Microsoft Terminal Services"
	case 8080:
		return "HTTP-Alt", fmt.Sprintf("Tomcat/%d.%d.%d", n(8, 11), n(0, 6), n(0, 80))
	case 8443:
		return "HTTPS-Alt", "Alternative HTTPS Service"
	default:
		return "Unknown", "Unknown Service"
	}
}

var serviceVulnerabilities = map[string][]string{
	"SSH": {
		"CVE-2021-28041: OpenSSH Privilege Escalation",
		"CVE-2020-15778: OpenSSH Command Injection",
		"Weak SSH Key Exchange Algorithm",
	},
	"HTTP":  webVulnerabilities,
	"HTTPS": webVulnerabilities,
	"SMB": {
		"CVE-2020-0796: SMBGhost",
		"CVE-2017-0144: EternalBlue",
		"SMB Signing Disabled",
	},
	"RDP": {
		"CVE-2019-0708: BlueKeep",
		"Weak RDP Encryption Level",
		"Network Level Authentication Disabled",
	},
	"MySQL": {
		"CVE-2021-2471: MySQL Server RCE",
		"Default MySQL Credentials",
		"MySQL User Enumeration",
	},
	"FTP": {
		"Anonymous FTP Login Enabled",
		"FTP Bounce Attack Possible",
		"Clear Text Authentication",
	},
}

var webVulnerabilities = []string{
	"CVE-2021-44228: Log4Shell RCE",
	"CVE-2021-34527: PrintNightmare",
	"Directory Traversal Vulnerability",
	"SQL Injection Point Detected",
	"Cross-Site Scripting (XSS) Vector",
}

var genericVulnerabilities = []string{
	"Outdated Service Version",
	"Missing Security Headers",
	"Weak Encryption Configuration",
}

func generateVulnerabilities(r game.Rand, services []Service) []string {
	var out []string
	for _, s := range services {
		if !s.Vulnerable {
			continue
		}
		pool, ok := serviceVulnerabilities[s.Name]
		if !ok {
			pool = genericVulnerabilities
		}
		out = append(out, game.Pick(r, pool))
	}
	return out
}

var advancedVulnerabilities = []string{
	"Zero-Day Buffer Overflow in Kernel Module",
	"Unpatched Remote Code Execution Vector",
	"Authentication Bypass via Header Injection",
	"Privilege Escalation through Race Condition",
	"Memory Corruption in Network Stack",
	"Cryptographic Key Recovery Attack Vector",
	"Side-Channel Information Disclosure",
	"Heap Spray Attack Surface Detected",
}

// DeepScan probes one target intensively, adding 2 to 4 advanced findings
// on top of a regular device profile.
func DeepScan(r game.Rand, target string) Device {
	d := generateDevice(r, target)
	for range game.IntRange(r, 2, 5) {
		d.Vulnerabilities = append(d.Vulnerabilities, game.Pick(r, advancedVulnerabilities))
	}
	return d
}
