package variation

import (
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// Allele is one observed allele of a variation, optionally per sample and population.
type Allele struct {
	AlleleID     int64    `db:"allele_id" json:"allele_id"`
	VariationID  *int64   `db:"variation_id" json:"variation_id"`
	SampleID     *int64   `db:"sample_id" json:"sample_id"`
	PopulationID *int64   `db:"population_id" json:"population_id"`
	Allele       string   `db:"allele" json:"allele"`
	Frequency    *float64 `db:"frequency" json:"frequency"`
}

// EntityName implements mapper.Model.
func (*Allele) EntityName() string { return EntityAllele }

func declareAllele() *schema.Entity {
	return schema.Define(EntityAllele).
		PrimaryKey("allele_id").
		Columns("allele_id", "variation_id", "sample_id", "population_id", "allele", "frequency").
		BelongsTo("sample", EntitySample).
		BelongsTo("variation", EntityVariation).
		BelongsTo("population", EntityPopulation).
		Build()
}

// Sample returns the sample of this allele.
func (a *Allele) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, a, "sample", a.SampleID)
}

// Variation returns the variation of this allele.
func (a *Allele) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, a, "variation", a.VariationID)
}

// Population returns the population of this allele.
func (a *Allele) Population(s *mapper.Session) *mapper.Lazy[*Population] {
	return mapper.BelongsTo[Population](s, a, "population", a.PopulationID)
}

// AlleleGroup is a haplotype-level allele of a variation group.
type AlleleGroup struct {
	AlleleGroupID       int64    `db:"allele_group_id" json:"allele_group_id"`
	VariationGroupID    *int64   `db:"variation_group_id" json:"variation_group_id"`
	SampleID            *int64   `db:"sample_id" json:"sample_id"`
	Name                *string  `db:"name" json:"name"`
	SourceID            *int64   `db:"source_id" json:"source_id"`
	Frequency           *float64 `db:"frequency" json:"frequency"`
	AlleleGroupAlleleID *int64   `db:"allele_group_allele_id" json:"allele_group_allele_id"`
}

// EntityName implements mapper.Model.
func (*AlleleGroup) EntityName() string { return EntityAlleleGroup }

func declareAlleleGroup() *schema.Entity {
	return schema.Define(EntityAlleleGroup).
		PrimaryKey("allele_group_id").
		Columns("allele_group_id", "variation_group_id", "sample_id", "name", "source_id", "frequency", "allele_group_allele_id").
		BelongsTo("variation_group", EntityVariationGroup).
		BelongsTo("source", EntitySource).
		BelongsTo("sample", EntitySample).
		BelongsTo("allele_group_allele", EntityAlleleGroupAllele).
		Build()
}

// VariationGroup returns the variation group of this allele group.
func (g *AlleleGroup) VariationGroup(s *mapper.Session) *mapper.Lazy[*VariationGroup] {
	return mapper.BelongsTo[VariationGroup](s, g, "variation_group", g.VariationGroupID)
}

// Source returns the source of this allele group.
func (g *AlleleGroup) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, g, "source", g.SourceID)
}

// Sample returns the sample of this allele group.
func (g *AlleleGroup) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, g, "sample", g.SampleID)
}

// AlleleGroupAllele returns the allele group allele of this allele group.
func (g *AlleleGroup) AlleleGroupAllele(s *mapper.Session) *mapper.Lazy[*AlleleGroupAllele] {
	return mapper.BelongsTo[AlleleGroupAllele](s, g, "allele_group_allele", g.AlleleGroupAlleleID)
}

// AlleleGroupAllele joins an allele group to the variation alleles it is made of.
type AlleleGroupAllele struct {
	ID            int64  `db:"id" json:"id"`
	AlleleGroupID *int64 `db:"allele_group_id" json:"allele_group_id"`
	Allele        string `db:"allele" json:"allele"`
	VariationID   *int64 `db:"variation_id" json:"variation_id"`
}

// EntityName implements mapper.Model.
func (*AlleleGroupAllele) EntityName() string { return EntityAlleleGroupAllele }

func declareAlleleGroupAllele() *schema.Entity {
	return schema.Define(EntityAlleleGroupAllele).
		Columns("id", "allele_group_id", "allele", "variation_id").
		BelongsTo("variation", EntityVariation).
		BelongsTo("allele_group", EntityAlleleGroup).
		Join().
		Build()
}

// Variation returns the variation of this allele group allele.
func (j *AlleleGroupAllele) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, j, "variation", j.VariationID)
}

// AlleleGroup returns the allele group of this allele group allele.
func (j *AlleleGroupAllele) AlleleGroup(s *mapper.Session) *mapper.Lazy[*AlleleGroup] {
	return mapper.BelongsTo[AlleleGroup](s, j, "allele_group", j.AlleleGroupID)
}
