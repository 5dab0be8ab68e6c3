package portfolio

// Column describes one renderable portfolio column.
type Column struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Numeric bool   `json:"numeric"`
}

// AvailableColumns is the full column catalog in its default order.
var AvailableColumns = []Column{
	{Key: "tickerSymbol", Name: "Ticker"},
	{Key: "avgPrice", Name: "Average Price", Numeric: true},
	{Key: "numShares", Name: "Shares", Numeric: true},
	{Key: "lastPrice", Name: "Current Price", Numeric: true},
	{Key: "costBasis", Name: "Cost Basis", Numeric: true},
	{Key: "totalValue", Name: "Total Value", Numeric: true},
	{Key: "profit", Name: "Profit", Numeric: true},
	{Key: "profitPct", Name: "Profit %", Numeric: true},
	{Key: "changeToday", Name: "Change Today", Numeric: true},
	{Key: "changePctToday", Name: "Change % Today", Numeric: true},
	{Key: "gapPct", Name: "Gap %", Numeric: true},
	{Key: "lastTime", Name: "Time Since Last Trade"},
}

// DefaultColumnKeys returns the catalog's keys in default order.
func DefaultColumnKeys() []string {
	keys := make([]string, len(AvailableColumns))
	for i, column := range AvailableColumns {
		keys[i] = column.Key
	}
	return keys
}

// knownColumn reports whether key exists in the catalog.
func knownColumn(key string) bool {
	for _, column := range AvailableColumns {
		if column.Key == key {
			return true
		}
	}
	return false
}

// NormalizeColumns collapses duplicate keys to their first occurrence and
// drops keys that are not in the catalog, preserving order.
func NormalizeColumns(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	normalized := make([]string, 0, len(keys))
	for _, key := range keys {
		if seen[key] || !knownColumn(key) {
			continue
		}
		seen[key] = true
		normalized = append(normalized, key)
	}
	return normalized
}
