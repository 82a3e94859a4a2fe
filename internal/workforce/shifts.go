package workforce

import (
	"regexp"
	"strconv"

	"github.com/grovyn/core-platform/internal/contracts"
)

var operatingHoursRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)

// parseOperatingHours reads "08:00-22:00" into UTC hours. Malformed
// strings fall back to the default window.
func parseOperatingHours(s string) (startHour, endHour int) {
	m := operatingHoursRe.FindStringSubmatch(s)
	if m == nil {
		return 8, 22
	}
	startHour, _ = strconv.Atoi(m[1])
	endHour, _ = strconv.Atoi(m[3])
	return startHour, endHour
}

// shiftSplit halves the operating window. The midpoint hour belongs to
// the evening shift.
func shiftSplit(startHour, endHour int) int {
	return startHour + (endHour-startHour)/2
}

// ShiftResult is the coverage model for one boot.
type ShiftResult struct {
	Assignments []contracts.ShiftAssignment
	Metrics     []contracts.ShiftMetrics
}

// BuildShifts assigns each roster to morning and evening halves and
// joins the assignments with observed order load per shift.
// Assignment rule: staff sorted by id, first half (rounded up) works
// mornings.
func (r *Roster) BuildShifts(stores []contracts.Store, orders []contracts.OrderWithCommission) ShiftResult {
	storeByID := make(map[string]contracts.Store, len(stores))
	for _, s := range stores {
		storeByID[s.ID] = s
	}

	var assignments []contracts.ShiftAssignment
	for _, storeID := range r.storeIDs {
		sorted := sortedByID(r.byStore[storeID])
		half := (len(sorted) + 1) / 2
		for _, part := range []struct {
			shift contracts.Shift
			staff []contracts.StaffMember
		}{
			{contracts.ShiftMorning, sorted[:half]},
			{contracts.ShiftEvening, sorted[half:]},
		} {
			var capScore float64
			ids := make([]string, 0, len(part.staff))
			for _, m := range part.staff {
				capScore += m.HourlyCapacityScore
				ids = append(ids, m.StaffID)
			}
			assignments = append(assignments, contracts.ShiftAssignment{
				StoreID:            storeID,
				Shift:              part.shift,
				StaffCount:         len(part.staff),
				TotalCapacityScore: contracts.Round2(capScore),
				StaffIDs:           ids,
			})
		}
	}

	counts := countOrdersPerShift(storeByID, orders)
	metrics := make([]contracts.ShiftMetrics, 0, len(assignments))
	for _, a := range assignments {
		ordersInShift := counts[a.StoreID][a.Shift]
		capScore := a.TotalCapacityScore
		if capScore == 0 {
			capScore = 1
		}
		ordersPerStaff := 0.0
		if a.StaffCount > 0 {
			ordersPerStaff = contracts.Round2(float64(ordersInShift) / float64(a.StaffCount))
		}
		metrics = append(metrics, contracts.ShiftMetrics{
			StoreID:            a.StoreID,
			Shift:              a.Shift,
			OrdersInShift:      ordersInShift,
			StaffCount:         a.StaffCount,
			TotalCapacityScore: a.TotalCapacityScore,
			OrdersPerStaff:     ordersPerStaff,
			Utilization:        contracts.Round4(float64(ordersInShift) / capScore),
		})
	}

	return ShiftResult{Assignments: assignments, Metrics: metrics}
}

// countOrdersPerShift buckets orders by UTC hour against each store's
// operating window. Orders outside the window count for neither shift.
func countOrdersPerShift(storeByID map[string]contracts.Store, orders []contracts.OrderWithCommission) map[string]map[contracts.Shift]int {
	counts := map[string]map[contracts.Shift]int{}
	for id := range storeByID {
		counts[id] = map[contracts.Shift]int{contracts.ShiftMorning: 0, contracts.ShiftEvening: 0}
	}
	for _, o := range orders {
		store, ok := storeByID[o.StoreID]
		if !ok {
			continue
		}
		start, end := parseOperatingHours(store.OperatingHours)
		mid := shiftSplit(start, end)
		hour := o.CreatedAt.UTC().Hour()
		switch {
		case hour >= start && hour < mid:
			counts[o.StoreID][contracts.ShiftMorning]++
		case hour >= mid && hour < end:
			counts[o.StoreID][contracts.ShiftEvening]++
		}
	}
	return counts
}

// MetricsByStore filters shift metrics for one store.
func (sr ShiftResult) MetricsByStore(storeID string) []contracts.ShiftMetrics {
	var out []contracts.ShiftMetrics
	for _, m := range sr.Metrics {
		if m.StoreID == storeID {
			out = append(out, m)
		}
	}
	return out
}
