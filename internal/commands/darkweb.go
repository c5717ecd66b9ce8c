package commands

// MarketItem is something for sale on the dark web.
type MarketItem struct {
	Name  string
	Price int
	// Tool is unlocked on the game state when the item is bought.
	Tool string
}

var market = []MarketItem{
	{"Zero-Day Exploit Kit", 1000, "zero_day_kit"},
	{"Botnet Access (10k nodes)", 5000, "botnet"},
	{"Database Dump (Fortune 500)", 2500, "db_dump"},
	{"Custom Malware Framework", 3000, "malware_framework"},
	{"Stolen Credentials Pack", 500, "credentials_pack"},
}

// Market lists the items for sale in display order.
func Market() []MarketItem {
	out := make([]MarketItem, len(market))
	copy(out, market)
	return out
}

// MarketItemByNumber returns the item at 1-based position n.
func MarketItemByNumber(n int) (MarketItem, bool) {
	if n < 1 || n > len(market) {
		return MarketItem{}, false
	}
	return market[n-1], true
}
