package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds holds every rule threshold used by the insight generators and
// the autopilot. These are fixed operating constants, not values derived
// from the data distribution; the YAML override exists for tuning, not
// learning.
type Thresholds struct {
	StoreHealth StoreHealthThresholds `yaml:"store_health"`
	Partner     PartnerThresholds     `yaml:"partner"`
	Inventory   InventoryThresholds   `yaml:"inventory"`
	Workforce   WorkforceThresholds   `yaml:"workforce"`
	Finance     FinanceThresholds     `yaml:"finance"`
	Growth      GrowthThresholds      `yaml:"growth"`
	Autopilot   AutopilotWeights      `yaml:"autopilot"`
}

// StoreHealthThresholds drive the composite health status.
type StoreHealthThresholds struct {
	OrderDropPercent float64 `yaml:"order_drop_percent"` // breach when deviation < -20
	LoadFactor       float64 `yaml:"load_factor"`        // breach when > 0.85
	FailureRate      float64 `yaml:"failure_rate"`       // breach when > 0.05
}

// PartnerThresholds drive the partner/commission insight rules.
type PartnerThresholds struct {
	CommissionIncreasePoints float64 `yaml:"commission_increase_points"` // week vs baseline
	CommissionCapPercent     float64 `yaml:"commission_cap_percent"`
	HighVolumeOrders         int     `yaml:"high_volume_orders"`
	LowNetRevenue            float64 `yaml:"low_net_revenue"`
}

// InventoryThresholds drive low-stock, overstock and waste-risk rules.
type InventoryThresholds struct {
	LowStockDays        float64 `yaml:"low_stock_days"`
	OverstockMultiplier float64 `yaml:"overstock_multiplier"` // × weekly avg consumption
	WasteLowOrderVolume int     `yaml:"waste_low_order_volume"`
}

// WorkforceThresholds drive shortage/overstaffing/productivity rules.
type WorkforceThresholds struct {
	Shortage         float64 `yaml:"shortage"`          // utilization above
	ShortageCritical float64 `yaml:"shortage_critical"` // utilization above
	Overstaffing     float64 `yaml:"overstaffing"`      // utilization below
}

// FinanceThresholds drive margin leakage, low item margin and churn rules.
type FinanceThresholds struct {
	MarginLeakagePoints  float64 `yaml:"margin_leakage_points"`
	MarginLeakageCrit    float64 `yaml:"margin_leakage_critical_points"`
	LowItemMarginPercent float64 `yaml:"low_item_margin_percent"`
	ChurnInactiveDays    int     `yaml:"churn_inactive_days"`
	ChurnLTV             float64 `yaml:"churn_ltv"`
}

// GrowthThresholds drive the nine growth intelligence rules.
type GrowthThresholds struct {
	RepeatDropPoints      float64 `yaml:"repeat_drop_points"`
	MarginDeclineWoW      float64 `yaml:"margin_decline_wow"`      // fire when delta below
	CommissionRisingWoW   float64 `yaml:"commission_rising_wow"`   // fire when delta above
	ReorderMinOrders      int     `yaml:"reorder_min_orders"`
	ReorderWindowDays     int     `yaml:"reorder_window_days"`
	LowMarginItemPercent  float64 `yaml:"low_margin_item_percent"`
	StoreRepeatGapPoints  float64 `yaml:"store_repeat_gap_points"`
	DormantCustomersAbove int     `yaml:"dormant_customers_above"`
	ChampionMinOrders     int     `yaml:"champion_min_orders"`
}

// AutopilotWeights score and boost insights in the priority engine.
type AutopilotWeights struct {
	CriticalScore  float64 `yaml:"critical_score"`
	WarningScore   float64 `yaml:"warning_score"`
	InfoScore      float64 `yaml:"info_score"`
	FinanceBoost   float64 `yaml:"finance_boost"`
	SameStoreBoost float64 `yaml:"same_store_boost"`
	TopN           int     `yaml:"top_n"`
}

// DefaultThresholds returns the compiled-in rule constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StoreHealth: StoreHealthThresholds{
			OrderDropPercent: 20,
			LoadFactor:       0.85,
			FailureRate:      0.05,
		},
		Partner: PartnerThresholds{
			CommissionIncreasePoints: 3,
			CommissionCapPercent:     20,
			HighVolumeOrders:         500,
			LowNetRevenue:            50000,
		},
		Inventory: InventoryThresholds{
			LowStockDays:        2,
			OverstockMultiplier: 2,
			WasteLowOrderVolume: 30,
		},
		Workforce: WorkforceThresholds{
			Shortage:         1.1,
			ShortageCritical: 1.3,
			Overstaffing:     0.6,
		},
		Finance: FinanceThresholds{
			MarginLeakagePoints:  5,
			MarginLeakageCrit:    10,
			LowItemMarginPercent: 10,
			ChurnInactiveDays:    14,
			ChurnLTV:             500,
		},
		Growth: GrowthThresholds{
			RepeatDropPoints:      0.5,
			MarginDeclineWoW:      -0.3,
			CommissionRisingWoW:   0.2,
			ReorderMinOrders:      3,
			ReorderWindowDays:     5,
			LowMarginItemPercent:  25,
			StoreRepeatGapPoints:  1.5,
			DormantCustomersAbove: 50,
			ChampionMinOrders:     10,
		},
		Autopilot: AutopilotWeights{
			CriticalScore:  100,
			WarningScore:   60,
			InfoScore:      20,
			FinanceBoost:   10,
			SameStoreBoost: 5,
			TopN:           5,
		},
	}
}

// LoadFile merges threshold overrides from a YAML file on top of the
// receiver. Missing keys keep their current values.
func (t *Thresholds) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
