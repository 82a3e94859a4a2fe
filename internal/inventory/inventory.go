package inventory

import (
	"math"
	"sort"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/seed"
	"github.com/grovyn/core-platform/pkg/logger"
)

// daysRemainingCap is reported when stock exists but nothing consumed it.
const daysRemainingCap = 999

// Service owns the per-store ingredient ledger. The ledger is seeded
// once, reduced by the consumption replay, and read-only afterwards.
type Service struct {
	logger     *logger.Logger
	globalSeed uint32

	// storeID -> ingredientID -> row
	ledger map[string]map[string]*contracts.LedgerRow
	// ordered store ids for stable snapshots
	storeIDs []string

	bomCache map[string][]contracts.BOMLine

	totalConsumed    map[string]map[string]float64
	orderCountByItem map[string]int
}

func NewService(log *logger.Logger, globalSeed uint32) *Service {
	return &Service{
		logger:           log,
		globalSeed:       globalSeed,
		ledger:           map[string]map[string]*contracts.LedgerRow{},
		bomCache:         map[string][]contracts.BOMLine{},
		totalConsumed:    map[string]map[string]float64{},
		orderCountByItem: map[string]int{},
	}
}

// BOM returns the bill of materials for an item, memoized.
func (s *Service) BOM(itemID string) []contracts.BOMLine {
	if lines, ok := s.bomCache[itemID]; ok {
		return lines
	}
	lines := buildBOM(itemID, s.globalSeed)
	s.bomCache[itemID] = lines
	return lines
}

// InitLedger seeds every (store, ingredient) stock position. Each cell
// gets its own RNG stream derived from the pair's ids, so the ledger
// does not depend on store iteration order.
func (s *Service) InitLedger(stores []contracts.Store) {
	for _, store := range stores {
		rows := map[string]*contracts.LedgerRow{}
		for _, ing := range Ingredients {
			r := seed.New(seed.HashString(store.ID+ing.ID) + s.globalSeed)
			const reorderThreshold = 5
			maxCapacity := 50 + float64(r.Int(0, 50))
			upper := math.Max(reorderThreshold+2, maxCapacity-1)
			current := float64(r.Int(reorderThreshold+1, int64(upper)))
			rows[ing.ID] = &contracts.LedgerRow{
				CurrentStock:     current,
				ReorderThreshold: reorderThreshold,
				MaxCapacity:      maxCapacity,
			}
		}
		s.ledger[store.ID] = rows
		s.storeIDs = append(s.storeIDs, store.ID)
	}
	s.logger.WithFields(map[string]interface{}{
		"stores":      len(s.storeIDs),
		"ingredients": len(Ingredients),
	}).Info("Inventory ledger seeded")
}

// consume reduces one cell, flooring at zero.
func (s *Service) consume(storeID, ingredientID string, qty float64) {
	rows, ok := s.ledger[storeID]
	if !ok {
		return
	}
	row, ok := rows[ingredientID]
	if !ok {
		return
	}
	row.CurrentStock = math.Max(0, contracts.Round3(row.CurrentStock-qty))
}

// CurrentStock reads one cell; unknown pairs read as zero.
func (s *Service) CurrentStock(storeID, ingredientID string) float64 {
	rows, ok := s.ledger[storeID]
	if !ok {
		return 0
	}
	row, ok := rows[ingredientID]
	if !ok {
		return 0
	}
	return row.CurrentStock
}

// RunConsumption replays the canonical order sequence against the
// ledger. Each order maps to one item of its brand by replay position,
// then the item's BOM is consumed. Derived metrics are filled for every
// cell afterwards, including cells nothing consumed.
func (s *Service) RunConsumption(replay []contracts.ReplayOrder, itemsByBrand map[string][]contracts.Item) {
	if len(replay) == 0 {
		return
	}

	dateSet := map[string]bool{}
	for _, o := range replay {
		dateSet[o.DateKey()] = true
	}
	numDays := len(dateSet)

	s.totalConsumed = map[string]map[string]float64{}
	s.orderCountByItem = map[string]int{}

	for _, o := range replay {
		items := itemsByBrand[o.BrandID]
		if len(items) == 0 {
			continue
		}
		item := items[o.Pos%len(items)]
		s.orderCountByItem[item.ID]++
		for _, line := range s.BOM(item.ID) {
			s.consume(o.StoreID, line.IngredientID, line.QuantityPerOrder)
			byIng, ok := s.totalConsumed[o.StoreID]
			if !ok {
				byIng = map[string]float64{}
				s.totalConsumed[o.StoreID] = byIng
			}
			byIng[line.IngredientID] += line.QuantityPerOrder
		}
	}

	for storeID, rows := range s.ledger {
		for ingID, row := range rows {
			total := s.totalConsumed[storeID][ingID]
			avg := 0.0
			if numDays > 0 {
				avg = total / float64(numDays)
			}
			days := 0.0
			switch {
			case avg > 0:
				days = row.CurrentStock / avg
			case row.CurrentStock > 0:
				days = daysRemainingCap
			}
			row.AvgDailyConsumption = contracts.Round4(avg)
			row.DaysRemaining = contracts.Round2(days)
		}
	}

	s.logger.WithField("days", numDays).Info("Consumption replay complete")
}

// Snapshot renders the full ledger for the API, stores in seeded order
// and ingredients in catalog order.
func (s *Service) Snapshot() []contracts.StoreInventory {
	out := make([]contracts.StoreInventory, 0, len(s.storeIDs))
	for _, storeID := range s.storeIDs {
		rows := s.ledger[storeID]
		positions := make([]contracts.IngredientPosition, 0, len(Ingredients))
		for _, ing := range Ingredients {
			row, ok := rows[ing.ID]
			if !ok {
				continue
			}
			positions = append(positions, contracts.IngredientPosition{
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Unit:           ing.Unit,
				LedgerRow:      *row,
			})
		}
		out = append(out, contracts.StoreInventory{StoreID: storeID, Ingredients: positions})
	}
	return out
}

// Rows exposes one store's ledger for the insight rules. The returned
// map must be treated as read-only.
func (s *Service) Rows(storeID string) map[string]*contracts.LedgerRow {
	return s.ledger[storeID]
}

// StoreIDs returns the seeded store order.
func (s *Service) StoreIDs() []string {
	out := make([]string, len(s.storeIDs))
	copy(out, s.storeIDs)
	return out
}

// OrderCountByItem reports how many replayed orders each item served.
func (s *Service) OrderCountByItem() map[string]int {
	return s.orderCountByItem
}

// TotalConsumed reports replayed quantities per (store, ingredient).
func (s *Service) TotalConsumed() map[string]map[string]float64 {
	return s.totalConsumed
}

// ItemsSortedByOrderCount lists item ids by ascending served-order
// count, ties broken by id, for stable low-volume scans.
func (s *Service) ItemsSortedByOrderCount() []string {
	ids := make([]string, 0, len(s.orderCountByItem))
	for id := range s.orderCountByItem {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.orderCountByItem[ids[i]] != s.orderCountByItem[ids[j]] {
			return s.orderCountByItem[ids[i]] < s.orderCountByItem[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
