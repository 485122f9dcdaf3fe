package mapper

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// One returns the record reached through a belongs_to or has_one relation of owner.
//
// A NULL key on the owner yields nil. A belongs_to key that matches no row
// yields a *core.NotFoundError; a has_one that matches nothing yields nil.
func (s *Session) One(entity, relation string, owner core.Record) *Lazy[core.Record] {
	return sessionLazy(s, NewLazy(func(ctx context.Context) (core.Record, error) {
		key, err := s.ownerKey(entity, relation, owner)
		if err != nil {
			return nil, err
		}
		return s.oneByKey(ctx, entity, relation, key)
	}))
}

// Many returns the records reached through a has_many relation of owner.
// No matching rows yields an empty slice.
func (s *Session) Many(entity, relation string, owner core.Record) *Lazy[[]core.Record] {
	return sessionLazy(s, NewLazy(func(ctx context.Context) ([]core.Record, error) {
		key, err := s.ownerKey(entity, relation, owner)
		if err != nil {
			return nil, err
		}
		return s.manyByKey(ctx, entity, relation, key)
	}))
}

// sessionLazy applies the session's memoize setting.
func sessionLazy[T any](s *Session, l *Lazy[T]) *Lazy[T] {
	if s.memoize {
		return l.Memoize()
	}
	return l
}

// ownerKey reads the owner-side join column of the relation from a record.
func (s *Session) ownerKey(entity, relation string, owner core.Record) (any, error) {
	ownerCol, _, err := s.registry.JoinColumns(entity, relation)
	if err != nil {
		return nil, err
	}
	v, ok := owner.Get(ownerCol)
	if !ok {
		return nil, fmt.Errorf("%w %q: %s record lacks the key of relation %s", core.ErrUnknownColumn, ownerCol, entity, relation)
	}
	return v, nil
}

// oneByKey resolves a singular relation given the owner-side key value.
func (s *Session) oneByKey(ctx context.Context, entity, relation string, key any) (core.Record, error) {
	_, rel, err := s.registry.Relation(entity, relation)
	if err != nil {
		return nil, err
	}
	if rel.Kind.IsCollection() {
		return nil, fmt.Errorf("relation %s.%s is %s; use Many", entity, relation, rel.Kind)
	}
	target, targetCol, err := s.target(entity, relation, rel)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, nil
	}

	f := Filter{Eq: map[string]any{targetCol: key}, Limit: 1}
	if target.SelectColumns() != nil {
		f.OrderBy = []string{target.PrimaryKey}
	}
	recs, err := s.selectRecords(ctx, target, f)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		if rel.Kind == schema.BelongsTo {
			return nil, &core.NotFoundError{Entity: target.Name, Column: targetCol, Key: key}
		}
		return nil, nil
	}
	return recs[0], nil
}

// manyByKey resolves a has_many relation given the owner-side key value.
func (s *Session) manyByKey(ctx context.Context, entity, relation string, key any) ([]core.Record, error) {
	_, rel, err := s.registry.Relation(entity, relation)
	if err != nil {
		return nil, err
	}
	if !rel.Kind.IsCollection() {
		return nil, fmt.Errorf("relation %s.%s is %s; use One", entity, relation, rel.Kind)
	}
	target, targetCol, err := s.target(entity, relation, rel)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return []core.Record{}, nil
	}

	f := Filter{Eq: map[string]any{targetCol: key}}
	if target.SelectColumns() != nil {
		f.OrderBy = []string{target.PrimaryKey}
	}
	return s.selectRecords(ctx, target, f)
}

func (s *Session) target(entity, relation string, rel schema.Relation) (*schema.Entity, string, error) {
	target, err := s.registry.Lookup(rel.Target)
	if err != nil {
		return nil, "", err
	}
	_, targetCol, err := s.registry.JoinColumns(entity, relation)
	if err != nil {
		return nil, "", err
	}
	return target, targetCol, nil
}
