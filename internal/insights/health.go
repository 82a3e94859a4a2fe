package insights

import (
	"regexp"
	"strconv"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/seed"
	"github.com/grovyn/core-platform/pkg/config"
	"github.com/grovyn/core-platform/pkg/logger"
)

var hoursRe = regexp.MustCompile(`^(\d{1,2}):\d{2}-(\d{1,2}):\d{2}$`)

// operatingHoursSpan reads "08:00-22:00" as 14 hours. Malformed
// strings fall back to a 14 hour day.
func operatingHoursSpan(s string) float64 {
	m := hoursRe.FindStringSubmatch(s)
	if m == nil {
		return 14
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end <= start {
		return 14
	}
	return float64(end - start)
}

// HealthEvaluator classifies stores with rule-based logic only. The
// failure-rate signal is drawn from each store's seeded stream, never
// from wall-clock randomness.
type HealthEvaluator struct {
	logger     *logger.Logger
	rules      config.StoreHealthThresholds
	globalSeed uint32
}

func NewHealthEvaluator(log *logger.Logger, rules config.StoreHealthThresholds, globalSeed uint32) *HealthEvaluator {
	return &HealthEvaluator{logger: log, rules: rules, globalSeed: globalSeed}
}

func (h *HealthEvaluator) failureRate(storeID string) float64 {
	r := seed.New(seed.HashString(storeID) + h.globalSeed)
	return r.Float(0, 0.10, 2)
}

// Evaluate scores every store. The reference day is the max order date;
// "yesterday" is one day before it. Baselines span the whole order
// history.
func (h *HealthEvaluator) Evaluate(stores []contracts.Store, orders []contracts.NormalizedOrder) []contracts.StoreHealthResult {
	dateSet := map[string]bool{}
	refKey := ""
	byStore := map[string][]contracts.NormalizedOrder{}
	for _, o := range orders {
		key := o.DateKey()
		dateSet[key] = true
		if key > refKey {
			refKey = key
		}
		byStore[o.StoreID] = append(byStore[o.StoreID], o)
	}
	numDays := len(dateSet)
	yesterdayKey := contracts.AddDays(refKey, -1)
	evaluatedAt := contracts.EvaluationTime(refKey)

	counts := map[contracts.HealthStatus]int{}
	results := make([]contracts.StoreHealthResult, 0, len(stores))
	for _, store := range stores {
		storeOrders := byStore[store.ID]
		hours := operatingHoursSpan(store.OperatingHours)

		dailyBaseline := 0.0
		if numDays > 0 {
			dailyBaseline = float64(len(storeOrders)) / float64(numDays)
		}
		avgPerHour := 0.0
		if hours > 0 {
			avgPerHour = dailyBaseline / hours
		}

		yesterdayOrders := 0
		for _, o := range storeOrders {
			if o.DateKey() == yesterdayKey {
				yesterdayOrders++
			}
		}

		deviation := 0.0
		if dailyBaseline > 0 {
			deviation = contracts.Round2((float64(yesterdayOrders) - dailyBaseline) / dailyBaseline * 100)
		}
		loadFactor := 0.0
		if avgPerHour > 0 && hours > 0 {
			loadFactor = contracts.Round2(float64(yesterdayOrders) / hours / avgPerHour)
		}
		failureRate := h.failureRate(store.ID)

		breaches := 0
		if deviation < -h.rules.OrderDropPercent {
			breaches++
		}
		if loadFactor > h.rules.LoadFactor {
			breaches++
		}
		if failureRate > h.rules.FailureRate {
			breaches++
		}
		status := contracts.HealthHealthy
		switch {
		case breaches >= 2:
			status = contracts.HealthCritical
		case breaches == 1:
			status = contracts.HealthAtRisk
		}
		counts[status]++

		results = append(results, contracts.StoreHealthResult{
			StoreID:   store.ID,
			StoreName: store.Name,
			Status:    status,
			Signals: contracts.HealthSignals{
				OrderDeviationPercent: deviation,
				LoadFactor:            loadFactor,
				FailureRate:           failureRate,
			},
			LastEvaluatedAt: evaluatedAt,
		})
	}

	h.logger.WithFields(map[string]interface{}{
		"stores":   len(stores),
		"healthy":  counts[contracts.HealthHealthy],
		"at_risk":  counts[contracts.HealthAtRisk],
		"critical": counts[contracts.HealthCritical],
	}).Info("Store health evaluated")

	return results
}
