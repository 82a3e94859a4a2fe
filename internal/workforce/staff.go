package workforce

import (
	"fmt"
	"sort"

	"github.com/grovyn/core-platform/internal/contracts"
	"github.com/grovyn/core-platform/internal/seed"
	"github.com/grovyn/core-platform/pkg/logger"
)

// Per-store staffing bounds. Minimums guarantee a workable kitchen.
const (
	minChef       = 2
	minPacker     = 2
	minSupervisor = 1
	staffCountMin = 6
	staffCountMax = 10
)

var experienceTiers = []contracts.ExperienceTier{
	contracts.TierJunior, contracts.TierMid, contracts.TierSenior,
}

// rolePool fills slots beyond the minimums, biased toward packers.
var rolePool = []contracts.Role{
	contracts.RoleChef, contracts.RolePacker, contracts.RolePacker, contracts.RoleSupervisor,
}

// StoreStaff is the seeded roster for one store.
type StoreStaff struct {
	StoreID string                  `json:"storeId"`
	Staff   []contracts.StaffMember `json:"staff"`
}

// Roster holds all seeded staff. No payroll or HR; operational model
// only.
type Roster struct {
	logger     *logger.Logger
	globalSeed uint32

	byStore  map[string][]contracts.StaffMember
	storeIDs []string
}

func NewRoster(log *logger.Logger, globalSeed uint32) *Roster {
	return &Roster{
		logger:     log,
		globalSeed: globalSeed,
		byStore:    map[string][]contracts.StaffMember{},
	}
}

// Init seeds 6 to 10 staff per store with the role minimums enforced.
// Each store draws from its own RNG stream so rosters are independent
// of store iteration order.
func (r *Roster) Init(stores []contracts.Store) {
	for _, store := range stores {
		rng := seed.New(seed.HashString(store.ID) + r.globalSeed)
		total := int(rng.Int(staffCountMin, staffCountMax))

		roles := make([]contracts.Role, 0, total)
		for i := 0; i < minChef; i++ {
			roles = append(roles, contracts.RoleChef)
		}
		for i := 0; i < minPacker; i++ {
			roles = append(roles, contracts.RolePacker)
		}
		for i := 0; i < minSupervisor; i++ {
			roles = append(roles, contracts.RoleSupervisor)
		}
		for len(roles) < total {
			roles = append(roles, seed.Pick(rng, rolePool))
		}
		// Fisher-Yates with the store's stream
		for i := len(roles) - 1; i > 0; i-- {
			j := rng.Int(0, int64(i))
			roles[i], roles[j] = roles[j], roles[i]
		}

		staff := make([]contracts.StaffMember, 0, len(roles))
		for idx, role := range roles {
			staff = append(staff, contracts.StaffMember{
				StaffID:             fmt.Sprintf("staff_%s_%d", store.ID, idx),
				StoreID:             store.ID,
				Role:                role,
				ExperienceTier:      seed.Pick(rng, experienceTiers),
				HourlyCapacityScore: rng.Float(0.8, 1.2, 2),
			})
		}
		r.byStore[store.ID] = staff
		r.storeIDs = append(r.storeIDs, store.ID)
	}
	r.logger.WithFields(map[string]interface{}{
		"stores": len(r.storeIDs),
		"staff":  r.TotalCount(),
	}).Info("Staff rosters seeded")
}

// StaffByStore returns one store's roster.
func (r *Roster) StaffByStore(storeID string) []contracts.StaffMember {
	return r.byStore[storeID]
}

// Snapshot lists rosters in seeded store order.
func (r *Roster) Snapshot() []StoreStaff {
	out := make([]StoreStaff, 0, len(r.storeIDs))
	for _, id := range r.storeIDs {
		out = append(out, StoreStaff{StoreID: id, Staff: r.byStore[id]})
	}
	return out
}

// TotalCount is the network-wide headcount.
func (r *Roster) TotalCount() int {
	n := 0
	for _, staff := range r.byStore {
		n += len(staff)
	}
	return n
}

// CountPerStore reports headcount keyed by store, in seeded order.
func (r *Roster) CountPerStore() map[string]int {
	out := make(map[string]int, len(r.byStore))
	for id, staff := range r.byStore {
		out[id] = len(staff)
	}
	return out
}

// sortedByID returns a roster copy ordered by staff id.
func sortedByID(staff []contracts.StaffMember) []contracts.StaffMember {
	out := make([]contracts.StaffMember, len(staff))
	copy(out, staff)
	sort.Slice(out, func(i, j int) bool { return out[i].StaffID < out[j].StaffID })
	return out
}
