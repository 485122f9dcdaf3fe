package mapper_test

import (
	"context"
	"testing"

	"github.com/leapstack-labs/ensvar/internal/testutil"
	"github.com/leapstack-labs/ensvar/pkg/adapter"
	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/stretchr/testify/require"
)

// testRegistry declares a subset of the variation schema.
func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	reg.MustRegister(
		schema.Define("Sample").
			PrimaryKey("sample_id").
			Columns("sample_id", "name", "size", "description").
			HasOne("individual", "Individual").
			HasOne("population", "Population").
			HasMany("read_coverage", "ReadCoverage").
			Build(),
		schema.Define("Population").
			Columns("id", "sample_id", "is_strain").
			BelongsTo("sample", "Sample").
			Build(),
		schema.Define("ReadCoverage").
			Columns("id", "seq_region_id", "seq_region_start", "seq_region_end", "level", "sample_id").
			BelongsTo("sample", "Sample").
			Build(),
		schema.Define("Individual").
			BelongsTo("sample", "Sample").
			Incomplete().
			Build(),
		schema.Define("Source").
			PrimaryKey("source_id").
			Columns("source_id", "name", "version", "description", "url").
			HasMany("sample_synonyms", "SampleSynonym").
			Build(),
		schema.Define("SampleSynonym").
			PrimaryKey("sample_synonym_id").
			Columns("sample_synonym_id", "sample_id", "source_id", "population_id", "name").
			BelongsTo("source", "Source").
			BelongsTo("sample", "Sample").
			BelongsTo("population", "Population").
			Build(),
		schema.Define("Allele").
			PrimaryKey("allele_id").
			Columns("allele_id", "variation_id", "sample_id", "population_id", "allele", "frequency").
			BelongsTo("sample", "Sample").
			BelongsTo("population", "Population").
			Build(),
	)
	require.NoError(t, reg.Validate())
	return reg
}

func newSession(t *testing.T, adp adapter.Adapter, opts ...mapper.Option) *mapper.Session {
	t.Helper()
	opts = append([]mapper.Option{mapper.WithLogger(testutil.NewTestLogger(t))}, opts...)
	s, err := mapper.NewSession(adp, testRegistry(t), opts...)
	require.NoError(t, err)
	return s
}

func fixtureSession(t *testing.T, opts ...mapper.Option) *mapper.Session {
	t.Helper()
	return newSession(t, testutil.NewFixtureAdapter(t), opts...)
}

func find(t *testing.T, s *mapper.Session, entity string, key any) core.Record {
	t.Helper()
	rec, err := s.Find(context.Background(), entity, key)
	require.NoError(t, err)
	return rec
}

// Typed models used by the generic API tests.

type sample struct {
	SampleID    int64   `db:"sample_id"`
	Name        string  `db:"name"`
	Size        *int64  `db:"size"`
	Description *string `db:"description"`
}

func (sample) EntityName() string { return "Sample" }

type population struct {
	ID       int64 `db:"id"`
	SampleID int64 `db:"sample_id"`
	IsStrain bool  `db:"is_strain"`
}

func (population) EntityName() string { return "Population" }

type readCoverage struct {
	ID    int64  `db:"id"`
	Level *int64 `db:"level"`
}

func (readCoverage) EntityName() string { return "ReadCoverage" }

type allele struct {
	AlleleID     int64    `db:"allele_id"`
	SampleID     *int64   `db:"sample_id"`
	PopulationID *int64   `db:"population_id"`
	Allele       string   `db:"allele"`
	Frequency    *float64 `db:"frequency"`
}

func (allele) EntityName() string { return "Allele" }

type individual struct {
	ID         int64          `db:"id"`
	SampleID   int64          `db:"sample_id"`
	Attributes map[string]any `db:",remain"`
}

func (individual) EntityName() string { return "Individual" }
