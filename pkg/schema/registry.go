package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/leapstack-labs/ensvar/pkg/core"
)

// Registry holds entity declarations by name.
// It is safe for concurrent use; declarations are not modified after registration.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]*Entity
	tables   map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]*Entity),
		tables:   make(map[string]string),
	}
}

// Register adds an entity. The entity must be well formed and neither its
// name nor its table may already be registered.
func (r *Registry) Register(e *Entity) error {
	if err := checkEntity(e); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entities[e.Name]; ok {
		return fmt.Errorf("entity %s already registered", e.Name)
	}
	if owner, ok := r.tables[e.Table]; ok {
		return fmt.Errorf("table %s of entity %s already mapped by %s", e.Table, e.Name, owner)
	}
	r.entities[e.Name] = e
	r.tables[e.Table] = e.Name
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(entities ...*Entity) {
	for _, e := range entities {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
}

// Get returns the entity with the given name.
func (r *Registry) Get(name string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[name]
	return e, ok
}

// Lookup returns the entity with the given name or an UnknownEntityError.
func (r *Registry) Lookup(name string) (*Entity, error) {
	if e, ok := r.Get(name); ok {
		return e, nil
	}
	return nil, &core.UnknownEntityError{Name: name, Available: r.Names()}
}

// Names returns all registered entity names (sorted).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entities))
	for name := range r.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entities returns all registered entities ordered by name.
func (r *Registry) Entities() []*Entity {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entity, len(names))
	for i, name := range names {
		out[i] = r.entities[name]
	}
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// Validate checks cross-entity consistency: every relation target is
// registered and every foreign key is a declared column on the side it lives on.
func (r *Registry) Validate() error {
	var errs []error
	for _, e := range r.Entities() {
		for _, rel := range e.Relations {
			target, ok := r.Get(rel.Target)
			if !ok {
				errs = append(errs, fmt.Errorf("%s.%s: target entity %s is not registered", e.Name, rel.Name, rel.Target))
				continue
			}
			switch rel.Kind {
			case BelongsTo:
				if !e.HasColumn(rel.ForeignKey) {
					errs = append(errs, fmt.Errorf("%s.%s: foreign key %s is not a column of %s", e.Name, rel.Name, rel.ForeignKey, e.Name))
				}
			case HasOne, HasMany:
				if !target.HasColumn(rel.ForeignKey) {
					errs = append(errs, fmt.Errorf("%s.%s: foreign key %s is not a column of %s", e.Name, rel.Name, rel.ForeignKey, target.Name))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Relation returns the named relation of an entity.
func (r *Registry) Relation(entity, relation string) (*Entity, Relation, error) {
	e, err := r.Lookup(entity)
	if err != nil {
		return nil, Relation{}, err
	}
	rel, ok := e.Relation(relation)
	if !ok {
		return nil, Relation{}, &core.UnknownRelationError{Entity: entity, Relation: relation}
	}
	return e, rel, nil
}

// JoinColumns returns the column on the owner and the column on the target
// whose values must be equal for two rows to be related.
func (r *Registry) JoinColumns(entity, relation string) (ownerColumn, targetColumn string, err error) {
	_, rel, err := r.Relation(entity, relation)
	if err != nil {
		return "", "", err
	}
	target, err := r.Lookup(rel.Target)
	if err != nil {
		return "", "", err
	}
	owner, _ := r.Get(entity)

	if rel.Kind == BelongsTo {
		return rel.ForeignKey, target.PrimaryKey, nil
	}
	return owner.PrimaryKey, rel.ForeignKey, nil
}

// Inverse returns the relations declared on the target that traverse the
// same foreign key back to the owner.
func (r *Registry) Inverse(entity, relation string) ([]Relation, error) {
	ownerCol, targetCol, err := r.JoinColumns(entity, relation)
	if err != nil {
		return nil, err
	}
	_, rel, _ := r.Relation(entity, relation)
	target, _ := r.Get(rel.Target)

	var out []Relation
	for _, back := range target.Relations {
		if back.Target != entity {
			continue
		}
		bOwner, bTarget, err := r.JoinColumns(target.Name, back.Name)
		if err != nil {
			continue
		}
		if bOwner == targetCol && bTarget == ownerCol {
			out = append(out, back)
		}
	}
	return out, nil
}

func checkEntity(e *Entity) error {
	if e == nil {
		return errors.New("nil entity")
	}
	if e.Name == "" {
		return errors.New("entity name is required")
	}
	if e.Table == "" {
		return fmt.Errorf("entity %s: table is required", e.Name)
	}
	if e.PrimaryKey == "" {
		return fmt.Errorf("entity %s: primary key is required", e.Name)
	}
	if !e.HasColumn(e.PrimaryKey) {
		return fmt.Errorf("entity %s: primary key %s is not a declared column", e.Name, e.PrimaryKey)
	}

	seen := make(map[string]bool, len(e.Relations))
	for _, rel := range e.Relations {
		if rel.Name == "" {
			return fmt.Errorf("entity %s: relation name is required", e.Name)
		}
		if seen[rel.Name] {
			return fmt.Errorf("entity %s: duplicate relation %s", e.Name, rel.Name)
		}
		seen[rel.Name] = true
		if rel.Target == "" {
			return fmt.Errorf("entity %s: relation %s has no target", e.Name, rel.Name)
		}
		if rel.ForeignKey == "" {
			return fmt.Errorf("entity %s: relation %s has no foreign key", e.Name, rel.Name)
		}
	}
	return nil
}
