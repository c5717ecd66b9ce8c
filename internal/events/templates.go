package events

import "time"

func highHeatEvents() []RandomEvent {
	return []RandomEvent{
		{
			Template:    "trace_initiated",
			Title:       "TRACE INITIATED",
			Description: "Security forces are attempting to trace your location!",
			Type:        Threat,
			Severity:    SeverityCritical,
			Choices: []EventChoice{
				{Label: "Deploy countermeasures", Outcome: ReduceHeat(30), Cost: CreditCost(100)},
				{Label: "Go dark immediately", Outcome: ReduceHeat(50), Cost: ReputationCost(20)},
				{Label: "Risk it", Outcome: IncreaseHeat(20)},
			},
			TimeLimit: 30 * time.Second,
		},
		{
			Template:    "system_lockdown",
			Title:       "SYSTEM LOCKDOWN",
			Description: "Target system is initiating emergency lockdown procedures!",
			Type:        Threat,
			Severity:    SeverityHigh,
			Choices: []EventChoice{
				{Label: "Force override", Outcome: MaintainAccess{}, Cost: HeatCost(25)},
				{Label: "Extract and flee", Outcome: SafeExit{}},
			},
			TimeLimit: 20 * time.Second,
		},
	}
}

func highReputationEvents() []RandomEvent {
	return []RandomEvent{
		{
			Template:    "elite_invitation",
			Title:       "ELITE INVITATION",
			Description: "You've been invited to join an elite hacker collective",
			Type:        Opportunity,
			Severity:    SeverityLow,
			Choices: []EventChoice{
				{Label: "Accept invitation", Outcome: UnlockContent("elite_tools"), Cost: ReputationCost(50)},
				{Label: "Decline respectfully", Outcome: GainReputation(10)},
			},
		},
		{
			Template:    "black_market_deal",
			Title:       "BLACK MARKET OPPORTUNITY",
			Description: "A mysterious contact offers rare zero-day exploits",
			Type:        Opportunity,
			Severity:    SeverityMedium,
			Choices: []EventChoice{
				{Label: "Purchase exploits", Outcome: UnlockContent("zero_day_pack"), Cost: CreditCost(500)},
				{Label: "Negotiate better price", Outcome: Negotiation, Cost: ReputationCost(10)},
				{Label: "Report to authorities", Outcome: ReduceHeat(20), Cost: ReputationCost(30)},
			},
			TimeLimit: 60 * time.Second,
		},
	}
}

func opportunityEvents() []RandomEvent {
	return []RandomEvent{
		{
			Template:    "vulnerable_system",
			Title:       "VULNERABLE SYSTEM DETECTED",
			Description: "Scans reveal a highly vulnerable system with valuable data",
			Type:        Opportunity,
			Severity:    SeverityLow,
			Choices: []EventChoice{
				{Label: "Exploit immediately", Outcome: GainCredits(200), Cost: HeatCost(15)},
				{Label: "Document and save for later", Outcome: UnlockContent("saved_target")},
			},
			TimeLimit: 45 * time.Second,
		},
		{
			Template:    "data_cache",
			Title:       "ENCRYPTED DATA CACHE",
			Description: "You've discovered an encrypted data cache during your scan",
			Type:        Opportunity,
			Severity:    SeverityLow,
			Choices: []EventChoice{
				{Label: "Decrypt now", Outcome: GainCredits(100), Cost: TimeCost(30 * time.Second)},
				{Label: "Download for later", Outcome: EncryptedFile},
			},
		},
		{
			Template:    "backdoor_found",
			Title:       "BACKDOOR DISCOVERED",
			Description: "You've found an existing backdoor in the system",
			Type:        Opportunity,
			Severity:    SeverityMedium,
			Choices: []EventChoice{
				{Label: "Use the backdoor", Outcome: MaintainAccess{}},
				{Label: "Replace with your own", Outcome: PersistentAccess, Cost: HeatCost(10)},
				{Label: "Report and patch", Outcome: GainReputation(25)},
			},
		},
	}
}

func threatEvents() []RandomEvent {
	return []RandomEvent{
		{
			Template:    "honeypot",
			Title:       "HONEYPOT DETECTED",
			Description: "This system appears to be a honeypot trap!",
			Type:        Threat,
			Severity:    SeverityHigh,
			Choices: []EventChoice{
				{Label: "Abort immediately", Outcome: SafeExit{}, Cost: ReputationCost(5)},
				{Label: "Leave false trail", Outcome: ReduceHeat(10), Cost: CreditCost(50)},
				{Label: "Turn it to your advantage", Outcome: HoneypotReversed, Cost: HeatCost(30)},
			},
			TimeLimit: 15 * time.Second,
		},
		{
			Template:    "rival_hacker",
			Title:       "RIVAL HACKER DETECTED",
			Description: "Another hacker is targeting the same system!",
			Type:        Threat,
			Severity:    SeverityMedium,
			Choices: []EventChoice{
				{Label: "Race to the prize", Outcome: RaceRival, Cost: HeatCost(20)},
				{Label: "Collaborate", Outcome: GainReputation(15)},
				{Label: "Sabotage their attempt", Outcome: Sabotage, Cost: ReputationCost(10)},
			},
			TimeLimit: 30 * time.Second,
		},
		{
			Template:    "ai_defense",
			Title:       "AI DEFENSE SYSTEM",
			Description: "An advanced AI is defending this system!",
			Type:        Threat,
			Severity:    SeverityCritical,
			Choices: []EventChoice{
				{Label: "Engage in cyber warfare", Outcome: AIBattle, Cost: HeatCost(40)},
				{Label: "Attempt to confuse it", Outcome: MaintainAccess{}, Cost: CreditCost(150)},
				{Label: "Tactical retreat", Outcome: SafeExit{}},
			},
			TimeLimit: 20 * time.Second,
		},
	}
}
