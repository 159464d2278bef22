package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/poiesic/codechronicle/core"
)

// Registry provides read-only lookups over code families and their editions.
// Implementations must be safe for concurrent readers.
type Registry interface {
	// FamilyForProvince returns the provincial code family mapped to a
	// two-letter province abbreviation, if any.
	FamilyForProvince(province string) (core.CodeFamily, bool)

	// NationalFamilies returns the national code families in their fixed
	// search order.
	NationalFamilies() []core.CodeFamily

	// Editions returns every edition of a family, ordered by effective date.
	Editions(familyCode string) []core.CodeEdition

	// Edition looks up a single edition by its qualified name, e.g. "OBC_2024".
	Edition(name string) (core.CodeEdition, bool)

	// MapCodes returns the constituent document identifiers of an edition,
	// e.g. "OBC_2024" -> ["OBC_Vol1", "OBC_Vol2"]. Nil when the edition is
	// unknown or has no documents configured.
	MapCodes(editionName string) []string

	// DisplayName returns the human-readable family name, falling back to the
	// family code itself.
	DisplayName(familyCode string) string
}

// MemoryRegistry is an in-memory Registry. Writes happen at load time only;
// query-time access is read-only.
type MemoryRegistry struct {
	mu        sync.RWMutex
	families  map[string]core.CodeFamily
	national  []string // national family codes in search order
	provinces map[string]string
	editions  map[string][]core.CodeEdition
}

var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty registry. Use DefaultRegistry for one
// seeded with the built-in Canadian catalog.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		families:  make(map[string]core.CodeFamily),
		provinces: make(map[string]string),
		editions:  make(map[string][]core.CodeEdition),
	}
}

// AddFamily registers a code family. National families are searched in
// registration order.
func (r *MemoryRegistry) AddFamily(family core.CodeFamily) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.families[family.Code]; !exists && family.National {
		r.national = append(r.national, family.Code)
	}
	r.families[family.Code] = family
}

// MapProvince maps a province abbreviation to its provincial code family.
func (r *MemoryRegistry) MapProvince(province, familyCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.provinces[province] = familyCode
}

// AddEdition appends an edition to its family, keeping the family's editions
// ordered by effective date. Earlier editions may be appended later with
// back-dated effective dates; existing entries are never mutated.
func (r *MemoryRegistry) AddEdition(edition core.CodeEdition) error {
	if err := core.ValidateEdition(&edition); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.families[edition.Family]; !ok {
		return fmt.Errorf("%w: unknown family %q", core.ErrInvalidEdition, edition.Family)
	}

	editions := append(r.editions[edition.Family], edition)
	sort.SliceStable(editions, func(i, j int) bool {
		return editions[i].Effective.Before(editions[j].Effective)
	})
	r.editions[edition.Family] = editions
	return nil
}

// FamilyForProvince implements Registry.
func (r *MemoryRegistry) FamilyForProvince(province string) (core.CodeFamily, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	code, ok := r.provinces[province]
	if !ok {
		return core.CodeFamily{}, false
	}
	family, ok := r.families[code]
	return family, ok
}

// NationalFamilies implements Registry.
func (r *MemoryRegistry) NationalFamilies() []core.CodeFamily {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := make([]core.CodeFamily, 0, len(r.national))
	for _, code := range r.national {
		families = append(families, r.families[code])
	}
	return families
}

// Editions implements Registry.
func (r *MemoryRegistry) Editions(familyCode string) []core.CodeEdition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	editions := r.editions[familyCode]
	out := make([]core.CodeEdition, len(editions))
	copy(out, editions)
	return out
}

// Edition implements Registry. Edition names are "FAMILY_EDITIONID"; edition
// ids may themselves contain underscores ("OBC_2012_v38"), so only the first
// separator splits.
func (r *MemoryRegistry) Edition(name string) (core.CodeEdition, bool) {
	family, editionID, ok := splitEditionName(name)
	if !ok {
		return core.CodeEdition{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, edition := range r.editions[family] {
		if edition.EditionID == editionID {
			return edition, true
		}
	}
	return core.CodeEdition{}, false
}

// MapCodes implements Registry.
func (r *MemoryRegistry) MapCodes(editionName string) []string {
	edition, ok := r.Edition(editionName)
	if !ok {
		return nil
	}
	return edition.MapCodes
}

// DisplayName implements Registry.
func (r *MemoryRegistry) DisplayName(familyCode string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if family, ok := r.families[familyCode]; ok && family.DisplayName != "" {
		return family.DisplayName
	}
	return familyCode
}

func splitEditionName(name string) (family, editionID string, ok bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == '_' {
			return name[:i], name[i+1:], i > 0 && i < len(name)-1
		}
	}
	return "", "", false
}
