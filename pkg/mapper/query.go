package mapper

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// Filter restricts and orders a record query.
type Filter struct {
	// Eq maps column names to required values; nil matches NULL.
	Eq map[string]any

	// OrderBy lists sort columns; Desc reverses the order.
	OrderBy []string
	Desc    bool

	// Limit caps the number of rows; zero means no limit.
	// Offset applies only together with Limit.
	Limit  int
	Offset int
}

// Find returns the record of entity whose primary key equals key.
// A missing row yields a *core.NotFoundError.
func (s *Session) Find(ctx context.Context, entity string, key any) (core.Record, error) {
	e, err := s.registry.Lookup(entity)
	if err != nil {
		return nil, err
	}
	recs, err := s.selectRecords(ctx, e, Filter{Eq: map[string]any{e.PrimaryKey: key}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &core.NotFoundError{Entity: e.Name, Column: e.PrimaryKey, Key: key}
	}
	return recs[0], nil
}

// FindBy returns the records of entity whose column equals value.
func (s *Session) FindBy(ctx context.Context, entity, column string, value any) ([]core.Record, error) {
	return s.Where(ctx, entity, Filter{Eq: map[string]any{column: value}})
}

// Where returns the records of entity matching f.
func (s *Session) Where(ctx context.Context, entity string, f Filter) ([]core.Record, error) {
	e, err := s.registry.Lookup(entity)
	if err != nil {
		return nil, err
	}
	return s.selectRecords(ctx, e, f)
}

// Count returns the number of records of entity matching f.
// Ordering and paging fields of f are ignored.
func (s *Session) Count(ctx context.Context, entity string, f Filter) (int64, error) {
	e, err := s.registry.Lookup(entity)
	if err != nil {
		return 0, err
	}
	if err := checkColumns(e, f); err != nil {
		return 0, err
	}

	sb := s.newSelect(e)
	sb.Select("COUNT(*)")
	s.applyEq(sb, f.Eq)
	query, args := sb.Build()

	recs, err := s.run(ctx, e, query, args)
	if err != nil {
		return 0, err
	}
	if len(recs) != 1 || len(recs[0]) != 1 {
		return 0, &core.QueryError{Entity: e.Name, SQL: query, Err: fmt.Errorf("unexpected count result")}
	}
	for col := range recs[0] {
		if n, ok := recs[0].Int64(col); ok {
			return n, nil
		}
	}
	return 0, &core.QueryError{Entity: e.Name, SQL: query, Err: fmt.Errorf("count is not an integer")}
}

func (s *Session) selectRecords(ctx context.Context, e *schema.Entity, f Filter) ([]core.Record, error) {
	query, args, err := s.buildSelect(e, f)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, e, query, args)
}

// buildSelect renders the SELECT statement for f with bound arguments.
func (s *Session) buildSelect(e *schema.Entity, f Filter) (string, []any, error) {
	if err := checkColumns(e, f); err != nil {
		return "", nil, err
	}

	sb := s.newSelect(e)
	if cols := e.SelectColumns(); cols != nil {
		quoted := make([]string, len(cols))
		for i, c := range cols {
			quoted[i] = s.dialect.QuoteIdentifier(c)
		}
		sb.Select(quoted...)
	} else {
		sb.Select("*")
	}
	s.applyEq(sb, f.Eq)

	if len(f.OrderBy) > 0 {
		order := make([]string, len(f.OrderBy))
		for i, c := range f.OrderBy {
			order[i] = s.dialect.QuoteIdentifier(c)
		}
		sb.OrderBy(order...)
		if f.Desc {
			sb.Desc()
		}
	}
	if f.Limit > 0 {
		sb.Limit(f.Limit)
		if f.Offset > 0 {
			sb.Offset(f.Offset)
		}
	}

	query, args := sb.Build()
	return query, args, nil
}

func (s *Session) newSelect(e *schema.Entity) *sqlbuilder.SelectBuilder {
	sb := sqlbuilder.NewSelectBuilder()
	sb.SetFlavor(s.dialect.Flavor)
	sb.From(s.dialect.QuoteIdentifier(e.Table))
	return sb
}

// applyEq adds one condition per column in sorted order so statements are stable.
func (s *Session) applyEq(sb *sqlbuilder.SelectBuilder, eq map[string]any) {
	cols := make([]string, 0, len(eq))
	for c := range eq {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	for _, c := range cols {
		quoted := s.dialect.QuoteIdentifier(c)
		if eq[c] == nil {
			sb.Where(sb.IsNull(quoted))
			continue
		}
		sb.Where(sb.Equal(quoted, eq[c]))
	}
}

func checkColumns(e *schema.Entity, f Filter) error {
	for c := range f.Eq {
		if !e.HasColumn(c) {
			return fmt.Errorf("%w %q on %s", core.ErrUnknownColumn, c, e.Name)
		}
	}
	for _, c := range f.OrderBy {
		if !e.HasColumn(c) {
			return fmt.Errorf("%w %q on %s", core.ErrUnknownColumn, c, e.Name)
		}
	}
	return nil
}

// run executes a statement and reads every row before returning, so the
// connection is free for the next statement.
func (s *Session) run(ctx context.Context, e *schema.Entity, query string, args []any) ([]core.Record, error) {
	start := time.Now()

	rows, err := s.adapter.Query(ctx, query, args...)
	if err != nil {
		return nil, &core.QueryError{Entity: e.Name, SQL: query, Err: err}
	}
	defer func() { _ = rows.Close() }()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, &core.QueryError{Entity: e.Name, SQL: query, Err: err}
	}

	s.logger.Debug("query",
		slog.String("entity", e.Name),
		slog.String("sql", query),
		slog.Int("rows", len(recs)),
		slog.Duration("duration", time.Since(start)),
	)
	return recs, nil
}

func scanRecords(rows *core.Rows) ([]core.Record, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	recs := []core.Record{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		rec := make(core.Record, len(cols))
		for i, c := range cols {
			rec[c] = values[i]
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return recs, nil
}
