package contracts

// Role is a staff position. The set is fixed.
type Role string

const (
	RoleChef       Role = "CHEF"
	RolePacker     Role = "PACKER"
	RoleSupervisor Role = "SUPERVISOR"
)

// ExperienceTier buckets staff seniority.
type ExperienceTier string

const (
	TierJunior ExperienceTier = "junior"
	TierMid    ExperienceTier = "mid"
	TierSenior ExperienceTier = "senior"
)

// Shift names the two halves of a store's operating window.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// StaffMember is one seeded employee.
type StaffMember struct {
	StaffID             string         `json:"staffId"`
	StoreID             string         `json:"storeId"`
	Role                Role           `json:"role"`
	ExperienceTier      ExperienceTier `json:"experienceLevel"`
	HourlyCapacityScore float64        `json:"hourlyCapacityScore"`
}

// ShiftAssignment maps staff onto a (store, shift) with summed capacity.
type ShiftAssignment struct {
	StoreID            string   `json:"storeId"`
	Shift              Shift    `json:"shift"`
	StaffCount         int      `json:"staffCount"`
	TotalCapacityScore float64  `json:"totalCapacityScore"`
	StaffIDs           []string `json:"staffIds"`
}

// ShiftMetrics joins a shift assignment with observed order load.
// Utilization = OrdersInShift / TotalCapacityScore.
type ShiftMetrics struct {
	StoreID            string  `json:"storeId"`
	Shift              Shift   `json:"shift"`
	OrdersInShift      int     `json:"ordersInShift"`
	StaffCount         int     `json:"staffCount"`
	TotalCapacityScore float64 `json:"totalCapacityScore"`
	OrdersPerStaff     float64 `json:"ordersPerStaff"`
	Utilization        float64 `json:"utilization"`
}
