package ecs

import (
	"fmt"
	"reflect"
)

// errInvalidCategory signals a registry-configuration mistake made by the
// host collaborator supplying the component manifest, distinct from the six
// runtime sentinel errors in errors.go. It is a build-time concern, not one
// of the documented failure kinds.
var errInvalidCategory = fmt.Errorf("ecs: invalid component category")

type kindMeta struct {
	index    int
	name     string
	category Category
	check    bool
	newPool  func(capacity int) iPool
}

// Registry is the compile-time manifest of component kinds: it fixes K (the
// number of kinds) and each kind's category and check flag. It is closed
// over by NewWorld; registering after NewWorld is not supported.
type Registry struct {
	metas  []kindMeta
	byType map[reflect.Type]int
}

// NewRegistry returns an empty registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{byType: make(map[reflect.Type]int)}
}

// Len returns K, the number of registered component kinds.
func (r *Registry) Len() int { return len(r.metas) }

func (r *Registry) meta(index int) kindMeta { return r.metas[index] }

// Kind identifies a registered component type T by its dense registry index.
// It is a thin value, cheap to copy and pass around.
type Kind[T any] struct {
	index int
}

// Index returns the dense type index assigned at registration.
func (k Kind[T]) Index() int { return k.index }

func normalizeAndValidate(category Category) (Category, error) {
	shape := category.shape()
	switch shape {
	case 0:
		category |= CategorySingle
	case CategorySingle, CategoryMultiple, CategorySingleton:
		// exactly one shape flag, nothing to do
	default:
		return 0, fmt.Errorf("%w: a component kind must be exactly one of Single, Multiple, or Singleton", errInvalidCategory)
	}
	if category.Has(CategorySingleton) && category.Has(CategorySingleFrame) {
		return 0, fmt.Errorf("%w: Singleton cannot combine with SingleFrame", errInvalidCategory)
	}
	return category, nil
}

// Register adds component kind T to the registry with the given category and
// check flag, keyed by T's reflect.Type rather than a caller-supplied id.
// Calling Register again for the same T returns the existing Kind if the
// configuration matches, or an error if it does not; registration is
// idempotent by type, not by call site.
func Register[T any](r *Registry, category Category, check bool) (Kind[T], error) {
	t := reflect.TypeFor[T]()

	cat, err := normalizeAndValidate(category)
	if err != nil {
		return Kind[T]{}, err
	}

	if idx, ok := r.byType[t]; ok {
		existing := r.metas[idx]
		if existing.category != cat || existing.check != check {
			return Kind[T]{}, fmt.Errorf("%w: %s already registered with a different category/check", errInvalidCategory, t)
		}
		return Kind[T]{index: idx}, nil
	}

	idx := len(r.metas)
	r.metas = append(r.metas, kindMeta{
		index:    idx,
		name:     t.String(),
		category: cat,
		check:    check,
		newPool:  func(capacity int) iPool { return newPool[T](t.String(), cat, capacity) },
	})
	r.byType[t] = idx
	return Kind[T]{index: idx}, nil
}
