package variation

import (
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// Sample is the shared identity of populations, individuals and strains.
type Sample struct {
	SampleID    int64   `db:"sample_id" json:"sample_id"`
	Name        string  `db:"name" json:"name"`
	Size        *int64  `db:"size" json:"size"`
	Description *string `db:"description" json:"description"`
}

// EntityName implements mapper.Model.
func (*Sample) EntityName() string { return EntitySample }

func declareSample() *schema.Entity {
	return schema.Define(EntitySample).
		PrimaryKey("sample_id").
		Columns("sample_id", "name", "size", "description").
		HasOne("individual", EntityIndividual).
		HasOne("sample_synonym", EntitySampleSynonym).
		HasOne("population", EntityPopulation).
		HasMany("individual_genotype_multiple_bp", EntityIndividualGenotypeMultipleBp).
		HasMany("compressed_genotype_single_bp", EntityCompressedGenotypeSingleBp).
		HasMany("read_coverage", EntityReadCoverage).
		HasMany("tagged_variation_features", EntityTaggedVariationFeature).
		Build()
}

// Individual returns the individual row that refers to this sample, or nil.
func (smp *Sample) Individual(s *mapper.Session) *mapper.Lazy[*Individual] {
	return mapper.HasOne[Individual](s, smp, "individual", smp.SampleID)
}

// SampleSynonym returns the sample synonym row that refers to this sample, or nil.
func (smp *Sample) SampleSynonym(s *mapper.Session) *mapper.Lazy[*SampleSynonym] {
	return mapper.HasOne[SampleSynonym](s, smp, "sample_synonym", smp.SampleID)
}

// Population returns the population this sample describes, if any.
func (smp *Sample) Population(s *mapper.Session) *mapper.Lazy[*Population] {
	return mapper.HasOne[Population](s, smp, "population", smp.SampleID)
}

// IndividualGenotypeMultipleBp returns the individual genotype multiple bp rows that refer to this sample.
func (smp *Sample) IndividualGenotypeMultipleBp(s *mapper.Session) *mapper.Lazy[[]*IndividualGenotypeMultipleBp] {
	return mapper.HasMany[IndividualGenotypeMultipleBp](s, smp, "individual_genotype_multiple_bp", smp.SampleID)
}

// CompressedGenotypeSingleBp returns the compressed genotype single bp rows that refer to this sample.
func (smp *Sample) CompressedGenotypeSingleBp(s *mapper.Session) *mapper.Lazy[[]*CompressedGenotypeSingleBp] {
	return mapper.HasMany[CompressedGenotypeSingleBp](s, smp, "compressed_genotype_single_bp", smp.SampleID)
}

// ReadCoverage returns the read coverage rows that refer to this sample.
func (smp *Sample) ReadCoverage(s *mapper.Session) *mapper.Lazy[[]*ReadCoverage] {
	return mapper.HasMany[ReadCoverage](s, smp, "read_coverage", smp.SampleID)
}

// TaggedVariationFeatures returns the tagged variation feature rows that refer to this sample.
func (smp *Sample) TaggedVariationFeatures(s *mapper.Session) *mapper.Lazy[[]*TaggedVariationFeature] {
	return mapper.HasMany[TaggedVariationFeature](s, smp, "tagged_variation_features", smp.SampleID)
}

// Individual is a single sampled organism. Only its sample link is declared;
// every other column is kept in Attributes.
type Individual struct {
	ID         int64          `db:"id" json:"id"`
	SampleID   *int64         `db:"sample_id" json:"sample_id"`
	Attributes map[string]any `db:",remain" json:"attributes,omitempty"`
}

// EntityName implements mapper.Model.
func (*Individual) EntityName() string { return EntityIndividual }

func declareIndividual() *schema.Entity {
	return schema.Define(EntityIndividual).
		BelongsTo("sample", EntitySample).
		Incomplete().
		Build()
}

// Sample returns the sample of this individual.
func (ind *Individual) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, ind, "sample", ind.SampleID)
}

// IndividualPopulation joins individuals to the populations they belong to.
type IndividualPopulation struct {
	ID           int64  `db:"id" json:"id"`
	IndividualID *int64 `db:"individual_id" json:"individual_id"`
	PopulationID *int64 `db:"population_id" json:"population_id"`
}

// EntityName implements mapper.Model.
func (*IndividualPopulation) EntityName() string { return EntityIndividualPopulation }

func declareIndividualPopulation() *schema.Entity {
	return schema.Define(EntityIndividualPopulation).
		Columns("id", "individual_id", "population_id").
		BelongsTo("individual", EntityIndividual).
		BelongsTo("population", EntityPopulation).
		Join().
		Build()
}

// Individual returns the individual of this individual population.
func (j *IndividualPopulation) Individual(s *mapper.Session) *mapper.Lazy[*Individual] {
	return mapper.BelongsTo[Individual](s, j, "individual", j.IndividualID)
}

// Population returns the population of this individual population.
func (j *IndividualPopulation) Population(s *mapper.Session) *mapper.Lazy[*Population] {
	return mapper.BelongsTo[Population](s, j, "population", j.PopulationID)
}

// Population is a group of individuals described by a sample.
type Population struct {
	ID       int64  `db:"id" json:"id"`
	SampleID *int64 `db:"sample_id" json:"sample_id"`
	IsStrain bool   `db:"is_strain" json:"is_strain"`
}

// EntityName implements mapper.Model.
func (*Population) EntityName() string { return EntityPopulation }

func declarePopulation() *schema.Entity {
	return schema.Define(EntityPopulation).
		Columns("id", "sample_id", "is_strain").
		BelongsTo("sample", EntitySample).
		Build()
}

// Sample returns the sample of this population.
func (p *Population) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, p, "sample", p.SampleID)
}

// PopulationStructure relates super- and sub-populations. No relations are
// declared yet; all columns are kept in Attributes.
type PopulationStructure struct {
	ID         int64          `db:"id" json:"id"`
	Attributes map[string]any `db:",remain" json:"attributes,omitempty"`
}

// EntityName implements mapper.Model.
func (*PopulationStructure) EntityName() string { return EntityPopulationStructure }

func declarePopulationStructure() *schema.Entity {
	return schema.Define(EntityPopulationStructure).
		Incomplete().
		Build()
}

// PopulationGenotype is a genotype frequency of a variation within a population.
type PopulationGenotype struct {
	PopulationGenotypeID int64    `db:"population_genotype_id" json:"population_genotype_id"`
	VariationID          *int64   `db:"variation_id" json:"variation_id"`
	PopulationID         *int64   `db:"population_id" json:"population_id"`
	Allele1              *string  `db:"allele_1" json:"allele_1"`
	Allele2              *string  `db:"allele_2" json:"allele_2"`
	Frequency            *float64 `db:"frequency" json:"frequency"`
}

// EntityName implements mapper.Model.
func (*PopulationGenotype) EntityName() string { return EntityPopulationGenotype }

func declarePopulationGenotype() *schema.Entity {
	return schema.Define(EntityPopulationGenotype).
		PrimaryKey("population_genotype_id").
		Columns("population_genotype_id", "variation_id", "population_id", "allele_1", "allele_2", "frequency").
		BelongsTo("variation", EntityVariation).
		BelongsTo("population", EntityPopulation).
		Build()
}

// Variation returns the variation of this population genotype.
func (g *PopulationGenotype) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, g, "variation", g.VariationID)
}

// Population returns the population of this population genotype.
func (g *PopulationGenotype) Population(s *mapper.Session) *mapper.Lazy[*Population] {
	return mapper.BelongsTo[Population](s, g, "population", g.PopulationID)
}

// SampleSynonym is an alternative name for a sample as used by a source.
type SampleSynonym struct {
	SampleSynonymID int64   `db:"sample_synonym_id" json:"sample_synonym_id"`
	SampleID        *int64  `db:"sample_id" json:"sample_id"`
	SourceID        *int64  `db:"source_id" json:"source_id"`
	PopulationID    *int64  `db:"population_id" json:"population_id"`
	Name            *string `db:"name" json:"name"`
}

// EntityName implements mapper.Model.
func (*SampleSynonym) EntityName() string { return EntitySampleSynonym }

func declareSampleSynonym() *schema.Entity {
	return schema.Define(EntitySampleSynonym).
		PrimaryKey("sample_synonym_id").
		Columns("sample_synonym_id", "sample_id", "source_id", "population_id", "name").
		BelongsTo("source", EntitySource).
		BelongsTo("sample", EntitySample).
		BelongsTo("population", EntityPopulation).
		Build()
}

// Source returns the source of this sample synonym.
func (syn *SampleSynonym) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, syn, "source", syn.SourceID)
}

// Sample returns the sample of this sample synonym.
func (syn *SampleSynonym) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, syn, "sample", syn.SampleID)
}

// Population returns the population of this sample synonym.
func (syn *SampleSynonym) Population(s *mapper.Session) *mapper.Lazy[*Population] {
	return mapper.BelongsTo[Population](s, syn, "population", syn.PopulationID)
}
