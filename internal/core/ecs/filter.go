package ecs

import "fmt"

// Filter is an immutable-after-build predicate over entities: every clause
// method clones the receiver and returns a new Filter value with the clause
// appended, never mutating in place, so a Filter can be safely shared,
// stored, or reused as the basis for further, divergent chains.
//
// Configuration mistakes (a Singleton kind named in an AllOf/AnyOf clause, or more than
// one Multiple kind across all include clauses) are recorded on the value as
// a sticky error the moment the offending clause method runs, so
// IllegalFilter surfaces at configuration time rather than at first
// iteration. Callers can check Err() immediately after building, or simply
// call Each/Find/Count, which return it without doing any work.
type Filter struct {
	world *World

	allOf        []int
	anyOfClauses [][]int
	exclude      []int
	selects      []func(Entity) bool

	multipleKind int // -1 if no Multiple kind named yet
	err          error
}

func (f Filter) clone() Filter {
	nf := f
	nf.allOf = append([]int(nil), f.allOf...)
	nf.anyOfClauses = append([][]int(nil), f.anyOfClauses...)
	nf.exclude = append([]int(nil), f.exclude...)
	nf.selects = append([]func(Entity) bool(nil), f.selects...)
	return nf
}

func (f *Filter) checkKind(ki int) {
	meta := f.world.registry.meta(ki)
	if meta.category.Has(CategorySingleton) {
		f.err = fmt.Errorf("%s: %w (singleton kinds are not iterable)", meta.name, ErrIllegalFilter)
		return
	}
	if meta.category.Has(CategoryMultiple) {
		if f.multipleKind != -1 && f.multipleKind != ki {
			f.err = fmt.Errorf("%s: %w (at most one Multiple kind per filter)", meta.name, ErrIllegalFilter)
			return
		}
		f.multipleKind = ki
	}
}

// AllOf requires every kind in kinds to be present (AND of memberships). An
// empty call contributes no constraint.
func (f Filter) AllOf(kinds ...int) Filter {
	nf := f.clone()
	if nf.err != nil {
		return nf
	}
	for _, ki := range kinds {
		nf.checkKind(ki)
		if nf.err != nil {
			return nf
		}
		nf.allOf = append(nf.allOf, ki)
	}
	return nf
}

// Of is sugar for AllOf(kind).
func (f Filter) Of(kind int) Filter { return f.AllOf(kind) }

// AnyOf requires at least one kind in kinds to be present (OR). Multiple
// AnyOf calls AND together at the clause level. An empty call contributes no
// constraint.
func (f Filter) AnyOf(kinds ...int) Filter {
	nf := f.clone()
	if nf.err != nil {
		return nf
	}
	clause := make([]int, 0, len(kinds))
	for _, ki := range kinds {
		nf.checkKind(ki)
		if nf.err != nil {
			return nf
		}
		clause = append(clause, ki)
	}
	nf.anyOfClauses = append(nf.anyOfClauses, clause)
	return nf
}

// Exclude requires that none of kinds be present.
func (f Filter) Exclude(kinds ...int) Filter {
	nf := f.clone()
	if nf.err != nil {
		return nf
	}
	nf.exclude = append(nf.exclude, kinds...)
	return nf
}

// Select appends a user predicate, evaluated last, after every include/
// exclude clause has passed. Predicates only see entities that survived
// prior clauses; a failing earlier clause short-circuits before a predicate
// ever runs.
func (f Filter) Select(pred func(Entity) bool) Filter {
	nf := f.clone()
	if nf.err != nil {
		return nf
	}
	nf.selects = append(nf.selects, pred)
	return nf
}

// Err returns the configuration error recorded by a prior clause call, if
// any (IllegalFilter), without requiring iteration.
func (f Filter) Err() error { return f.err }

// requiredAndKinds returns every kind whose presence is individually
// mandatory: the AllOf set, plus any AnyOf clause that names exactly one
// kind (a one-kind disjunction is just another AND constraint).
func (f Filter) requiredAndKinds() []int {
	kinds := f.allOf
	for _, clause := range f.anyOfClauses {
		if len(clause) == 1 {
			kinds = append(kinds[:len(kinds):len(kinds)], clause[0])
		}
	}
	return kinds
}

// chooseDriver selects the smallest required-AND pool to drive iteration. A
// Multiple kind in the required set always drives, regardless of size: only
// its pool can yield one visit per stored instance on each matched entity.
func (f Filter) chooseDriver() (kindIndex int, ok bool) {
	best := -1
	bestSize := -1
	for _, ki := range f.requiredAndKinds() {
		if ki == f.multipleKind {
			return ki, true
		}
		sz := f.world.pools[ki].Size()
		if best == -1 || sz < bestSize {
			best = ki
			bestSize = sz
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (f Filter) matches(e Entity) bool {
	for _, ki := range f.allOf {
		if !f.world.pools[ki].Contains(e.id) {
			return false
		}
	}
	for _, clause := range f.anyOfClauses {
		if len(clause) == 0 {
			continue
		}
		any := false
		for _, ki := range clause {
			if f.world.pools[ki].Contains(e.id) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	for _, ki := range f.exclude {
		if f.world.pools[ki].Contains(e.id) {
			return false
		}
	}
	for _, pred := range f.selects {
		if !pred(e) {
			return false
		}
	}
	return true
}

// smallestAnyOfClause returns the non-empty AnyOf clause whose pools sum to
// the fewest entities, the cheapest disjunction to union over.
func (f Filter) smallestAnyOfClause() []int {
	var best []int
	bestSize := -1
	for _, clause := range f.anyOfClauses {
		if len(clause) == 0 {
			continue
		}
		size := 0
		for _, ki := range clause {
			size += f.world.pools[ki].Size()
		}
		if bestSize == -1 || size < bestSize {
			best = clause
			bestSize = size
		}
	}
	return best
}

// candidates returns the seed entity list to scan before applying matches:
// the driver pool's Instances (repeating an entity once per stored instance
// for a Multiple driver), a union over the smallest AnyOf clause's pools
// when there is no required-AND kind, or every allocated entity otherwise.
func (f Filter) candidates() []EntityID {
	if driverKind, ok := f.chooseDriver(); ok {
		return f.world.pools[driverKind].Instances()
	}
	if clause := f.smallestAnyOfClause(); clause != nil {
		seen := make(map[EntityID]bool)
		out := make([]EntityID, 0)
		for _, ki := range clause {
			for _, e := range f.world.pools[ki].Entities() {
				if !seen[e] {
					seen[e] = true
					out = append(out, e)
				}
			}
		}
		return out
	}
	out := make([]EntityID, 0, f.world.nextID)
	for i := EntityID(0); i < f.world.nextID; i++ {
		out = append(out, i)
	}
	return out
}

// Each iterates matching entities in driver order, calling fn per match and
// stopping early if fn returns false. Mutating the driver kind's pool during
// iteration is forbidden and detected via a generation check, returned as
// ErrMutationDuringIteration rather than panicking.
func (f Filter) Each(fn func(Entity) bool) error {
	if f.err != nil {
		return f.err
	}
	driverKind, hasDriver := f.chooseDriver()
	var startGen int
	if hasDriver {
		startGen = f.world.pools[driverKind].Generation()
	}

	ids := f.candidates()
	for _, id := range ids {
		if hasDriver && f.world.pools[driverKind].Generation() != startGen {
			return ErrMutationDuringIteration
		}
		e := Entity{world: f.world, id: id}
		if f.matches(e) {
			if !fn(e) {
				break
			}
		}
	}
	if hasDriver && f.world.pools[driverKind].Generation() != startGen {
		return ErrMutationDuringIteration
	}
	return nil
}

// Find returns the first matching entity, or ok=false if none matched.
func (f Filter) Find() (Entity, bool, error) {
	var found Entity
	ok := false
	err := f.Each(func(e Entity) bool {
		found = e
		ok = true
		return false
	})
	return found, ok, err
}

// Count returns the number of matching entities without materializing them.
func (f Filter) Count() (int, error) {
	n := 0
	err := f.Each(func(Entity) bool {
		n++
		return true
	})
	return n, err
}
