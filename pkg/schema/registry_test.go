package schema

import (
	"testing"

	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(Define("Sample").
		PrimaryKey("sample_id").
		Columns("sample_id", "name").
		HasOne("population", "Population").
		HasMany("read_coverage", "ReadCoverage").
		Build()))
	require.NoError(t, reg.Register(Define("Population").
		Columns("id", "sample_id", "is_strain").
		BelongsTo("sample", "Sample").
		Build()))
	require.NoError(t, reg.Register(Define("ReadCoverage").
		Columns("id", "sample_id", "level").
		BelongsTo("sample", "Sample").
		Build()))
	return reg
}

func TestRegistry_Register(t *testing.T) {
	reg := sampleRegistry(t)

	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"Population", "ReadCoverage", "Sample"}, reg.Names())

	e, ok := reg.Get("Sample")
	require.True(t, ok)
	assert.Equal(t, "sample_id", e.PrimaryKey)

	entities := reg.Entities()
	require.Len(t, entities, 3)
	assert.Equal(t, "Population", entities[0].Name)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	tests := []struct {
		name   string
		entity *Entity
		errMsg string
	}{
		{"nil entity", nil, "nil entity"},
		{"no name", &Entity{Table: "x", PrimaryKey: "id"}, "name is required"},
		{"no table", &Entity{Name: "X", PrimaryKey: "id"}, "table is required"},
		{"no primary key", &Entity{Name: "X", Table: "x"}, "primary key is required"},
		{
			"primary key not declared",
			Define("Source").PrimaryKey("source_id").Columns("id", "name").Build(),
			"primary key source_id is not a declared column",
		},
		{
			"duplicate relation",
			Define("Allele").BelongsTo("sample", "Sample").BelongsTo("sample", "Sample").Build(),
			"duplicate relation sample",
		},
		{
			"empty foreign key",
			Define("Allele").BelongsTo("sample", "Sample").ForeignKey("").Build(),
			"has no foreign key",
		},
		{
			"duplicate entity",
			Define("Sample").Table("sample_copy").Build(),
			"entity Sample already registered",
		},
		{
			"duplicate table",
			Define("SampleCopy").Table("sample").Build(),
			"table sample of entity SampleCopy already mapped by Sample",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := sampleRegistry(t)
			err := reg.Register(tt.entity)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRegistry_MustRegisterPanics(t *testing.T) {
	reg := sampleRegistry(t)
	assert.Panics(t, func() {
		reg.MustRegister(Define("Sample").Build())
	})
}

func TestRegistry_Lookup(t *testing.T) {
	reg := sampleRegistry(t)

	e, err := reg.Lookup("Population")
	require.NoError(t, err)
	assert.Equal(t, "population", e.Table)

	_, err = reg.Lookup("Strain")
	var unknown *core.UnknownEntityError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Strain", unknown.Name)
	assert.Equal(t, []string{"Population", "ReadCoverage", "Sample"}, unknown.Available)
}

func TestRegistry_Validate(t *testing.T) {
	t.Run("consistent", func(t *testing.T) {
		assert.NoError(t, sampleRegistry(t).Validate())
	})

	t.Run("unregistered target", func(t *testing.T) {
		reg := sampleRegistry(t)
		reg.MustRegister(Define("Allele").PrimaryKey("allele_id").BelongsTo("variation", "Variation").Build())
		err := reg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Allele.variation: target entity Variation is not registered")
	})

	t.Run("belongs_to foreign key not declared", func(t *testing.T) {
		reg := sampleRegistry(t)
		reg.MustRegister(Define("Allele").
			PrimaryKey("allele_id").
			Columns("allele_id", "allele").
			BelongsTo("sample", "Sample").
			Build())
		err := reg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foreign key sample_id is not a column of Allele")
	})

	t.Run("has_many foreign key not declared on target", func(t *testing.T) {
		reg := NewRegistry()
		reg.MustRegister(
			Define("Source").PrimaryKey("source_id").Columns("source_id").HasMany("httags", "Httag").Build(),
			Define("Httag").PrimaryKey("httag_id").Columns("httag_id", "name").Build(),
		)
		err := reg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foreign key source_id is not a column of Httag")
	})
}

func TestRegistry_JoinColumns(t *testing.T) {
	reg := sampleRegistry(t)

	tests := []struct {
		entity, relation string
		owner, target    string
	}{
		{"Population", "sample", "sample_id", "sample_id"},
		{"Sample", "population", "sample_id", "sample_id"},
		{"Sample", "read_coverage", "sample_id", "sample_id"},
		{"ReadCoverage", "sample", "sample_id", "sample_id"},
	}

	for _, tt := range tests {
		t.Run(tt.entity+"."+tt.relation, func(t *testing.T) {
			owner, target, err := reg.JoinColumns(tt.entity, tt.relation)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.target, target)
		})
	}

	_, _, err := reg.JoinColumns("Sample", "individual")
	var unknownRel *core.UnknownRelationError
	require.ErrorAs(t, err, &unknownRel)
	assert.Equal(t, "individual", unknownRel.Relation)

	_, _, err = reg.JoinColumns("Strain", "sample")
	var unknownEntity *core.UnknownEntityError
	assert.ErrorAs(t, err, &unknownEntity)
}

func TestRegistry_JoinColumnsDefaultKey(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(
		Define("Variation").PrimaryKey("variation_id").HasOne("flanking_sequence", "FlankingSequence").Build(),
		Define("FlankingSequence").BelongsTo("variation", "Variation").Build(),
	)

	owner, target, err := reg.JoinColumns("FlankingSequence", "variation")
	require.NoError(t, err)
	assert.Equal(t, "variation_id", owner)
	assert.Equal(t, "variation_id", target)

	owner, target, err = reg.JoinColumns("Variation", "flanking_sequence")
	require.NoError(t, err)
	assert.Equal(t, "variation_id", owner)
	assert.Equal(t, "variation_id", target)
}

func TestRegistry_Inverse(t *testing.T) {
	reg := sampleRegistry(t)

	inv, err := reg.Inverse("Population", "sample")
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, "population", inv[0].Name)
	assert.Equal(t, HasOne, inv[0].Kind)

	inv, err = reg.Inverse("Sample", "read_coverage")
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, "sample", inv[0].Name)

	_, err = reg.Inverse("Sample", "nope")
	assert.Error(t, err)
}
