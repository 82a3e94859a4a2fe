package contracts

import "math"

// Round2 rounds to 2 decimal places. All currency amounts and percentages
// are rounded with this before they are treated as final.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places (ledger stock quantities).
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round4 rounds to 4 decimal places (utilization, avg daily consumption).
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
