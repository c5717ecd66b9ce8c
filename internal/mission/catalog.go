package mission

import "time"

// Catalog returns fresh copies of every predefined mission, in order.
func Catalog() []*Mission {
	var missions []*Mission

	m := New("INIT-001", "First Steps", "Learn the basics of the system", Trivial, 10)
	m.AddObjective("Scan a network", 1).Trigger = TriggerScan
	m.AddObjective("Decrypt a file", 1).Trigger = TriggerDecrypt
	missions = append(missions, m)

	m = New("RECON-001", "Network Reconnaissance", "Map out a corporate network", Easy, 25)
	m.AddObjective("Scan 5 different targets", 5).Trigger = TriggerScan
	m.AddObjective("Identify 3 vulnerabilities", 3).Trigger = TriggerVulnerability
	missions = append(missions, m)

	m = New("DATA-001", "Data Extraction", "Extract sensitive data from a secure server", Medium, 50)
	m.AddObjective("Exploit a vulnerability", 1).Trigger = TriggerExploit
	m.AddObjective("Decrypt 3 files", 3).Trigger = TriggerDecrypt
	m.AddObjective("Maintain heat level below 50%", 1).Condition = &Condition{Kind: HeatBelow, Threshold: 50}
	missions = append(missions, m)

	m = New("CORP-001", "Corporate Espionage", "Infiltrate a rival corporation's mainframe", Hard, 100)
	m.AddObjective("Bypass 2 firewalls", 2).Trigger = TriggerFirewall
	m.AddObjective("Successfully exploit 3 systems", 3).Trigger = TriggerExploit
	m.AddObjective("Extract database", 1).Trigger = TriggerExfiltrate
	m.TimeLimit = 10 * time.Minute
	missions = append(missions, m)

	m = New("GHOST-001", "Ghost Protocol", "Complete operations without detection", Extreme, 200)
	m.AddObjective("Complete 5 hacks", 5).Trigger = TriggerHack
	m.AddObjective("Keep heat level at 0%", 1).Condition = &Condition{Kind: HeatBelow, Threshold: 1}
	m.AddObjective("Leave no traces", 1).Condition = &Condition{Kind: NoFailures}
	missions = append(missions, m)

	m = New("IMPOSSIBLE-001", "The Impossible", "Hack the unhackable", Impossible, 500)
	m.AddObjective("Breach quantum encryption", 1).Trigger = TriggerFirewallDisable
	m.AddObjective("Defeat AI defense system", 1).Trigger = TriggerAIDefeated
	m.AddObjective("Extract the crown jewels", 1).Trigger = TriggerExfiltrate
	m.TimeLimit = 5 * time.Minute
	missions = append(missions, m)

	return missions
}
