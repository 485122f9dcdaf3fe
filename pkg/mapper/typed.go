package mapper

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/ensvar/pkg/core"
)

// Model is implemented by typed entity structs.
type Model interface {
	EntityName() string
}

// modelPtr constrains PT to a pointer to T implementing Model.
type modelPtr[T any] interface {
	*T
	Model
}

func entityOf[T any, PT modelPtr[T]]() string {
	var zero T
	return PT(&zero).EntityName()
}

// Decode converts a record into a model struct using its `db` field tags.
// Columns without a matching field are ignored unless the struct has a
// `db:",remain"` map field.
func Decode[T any](rec core.Record) (*T, error) {
	out := new(T)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(rec)); err != nil {
		return nil, fmt.Errorf("failed to decode %T: %w", *out, err)
	}
	return out, nil
}

// DecodeAll converts records into model structs.
func DecodeAll[T any](recs []core.Record) ([]*T, error) {
	out := make([]*T, 0, len(recs))
	for _, rec := range recs {
		v, err := Decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Get fetches the model whose primary key equals key.
func Get[T any, PT modelPtr[T]](ctx context.Context, s *Session, key any) (*T, error) {
	rec, err := s.Find(ctx, entityOf[T, PT](), key)
	if err != nil {
		return nil, err
	}
	return Decode[T](rec)
}

// All fetches the models matching f.
func All[T any, PT modelPtr[T]](ctx context.Context, s *Session, f Filter) ([]*T, error) {
	recs, err := s.Where(ctx, entityOf[T, PT](), f)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](recs)
}

// BelongsTo traverses a belongs_to relation of owner whose foreign key value is fk.
// A nil fk yields nil.
func BelongsTo[T any, PT modelPtr[T]](s *Session, owner Model, relation string, fk *int64) *Lazy[*T] {
	return sessionLazy(s, NewLazy(func(ctx context.Context) (*T, error) {
		if err := s.checkTarget(owner.EntityName(), relation, entityOf[T, PT]()); err != nil {
			return nil, err
		}
		var key any
		if fk != nil {
			key = *fk
		}
		rec, err := s.oneByKey(ctx, owner.EntityName(), relation, key)
		if err != nil || rec == nil {
			return nil, err
		}
		return Decode[T](rec)
	}))
}

// HasOne traverses a has_one relation of owner whose primary key value is key.
func HasOne[T any, PT modelPtr[T]](s *Session, owner Model, relation string, key int64) *Lazy[*T] {
	return sessionLazy(s, NewLazy(func(ctx context.Context) (*T, error) {
		if err := s.checkTarget(owner.EntityName(), relation, entityOf[T, PT]()); err != nil {
			return nil, err
		}
		rec, err := s.oneByKey(ctx, owner.EntityName(), relation, key)
		if err != nil || rec == nil {
			return nil, err
		}
		return Decode[T](rec)
	}))
}

// HasMany traverses a has_many relation of owner whose primary key value is key.
func HasMany[T any, PT modelPtr[T]](s *Session, owner Model, relation string, key int64) *Lazy[[]*T] {
	return sessionLazy(s, NewLazy(func(ctx context.Context) ([]*T, error) {
		if err := s.checkTarget(owner.EntityName(), relation, entityOf[T, PT]()); err != nil {
			return nil, err
		}
		recs, err := s.manyByKey(ctx, owner.EntityName(), relation, key)
		if err != nil {
			return nil, err
		}
		return DecodeAll[T](recs)
	}))
}

func (s *Session) checkTarget(entity, relation, want string) error {
	_, rel, err := s.registry.Relation(entity, relation)
	if err != nil {
		return err
	}
	if rel.Target != want {
		return fmt.Errorf("relation %s.%s targets %s, not %s", entity, relation, rel.Target, want)
	}
	return nil
}
