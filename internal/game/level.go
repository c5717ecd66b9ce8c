package game

// DisplayLevel is the 1-10 level shown beside the agent name.
//
// It is deliberately separate from ReputationLevel: the thresholds are shifted
// (3000 and above is already the top band here) and the titles differ, e.g.
// level 1 is "Newbie" and level 10 is "Ghost". Callers that need perks or the
// progress bar use ReputationLevel; callers that print "LVL n" use this.
type DisplayLevel int

var displayThresholds = [...]int{0, 50, 150, 300, 500, 750, 1000, 1500, 2000, 3000}

var displayTitles = [...]string{
	"Newbie", "Script Kiddie", "Amateur Hacker", "Competent Hacker", "Skilled Hacker",
	"Expert Hacker", "Master Hacker", "Elite Hacker", "Legendary Hacker", "Ghost",
}

// DisplayLevelFor maps a reputation score onto the 1-10 scale.
func DisplayLevelFor(reputation int) DisplayLevel {
	for i := len(displayThresholds) - 1; i > 0; i-- {
		if reputation >= displayThresholds[i] {
			return DisplayLevel(i + 1)
		}
	}
	return 1
}

// Title returns the level title.
func (l DisplayLevel) Title() string {
	if l < 1 || int(l) > len(displayTitles) {
		return "Unknown"
	}
	return displayTitles[l-1]
}
