package variation

import (
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// IndividualGenotypeMultipleBp is a genotype call spanning more than one base pair.
type IndividualGenotypeMultipleBp struct {
	ID          int64   `db:"id" json:"id"`
	VariationID *int64  `db:"variation_id" json:"variation_id"`
	SampleID    *int64  `db:"sample_id" json:"sample_id"`
	Allele1     *string `db:"allele_1" json:"allele_1"`
	Allele2     *string `db:"allele_2" json:"allele_2"`
}

// EntityName implements mapper.Model.
func (*IndividualGenotypeMultipleBp) EntityName() string {
	return EntityIndividualGenotypeMultipleBp
}

func declareIndividualGenotypeMultipleBp() *schema.Entity {
	return schema.Define(EntityIndividualGenotypeMultipleBp).
		Columns("id", "variation_id", "sample_id", "allele_1", "allele_2").
		BelongsTo("sample", EntitySample).
		BelongsTo("variation", EntityVariation).
		Build()
}

// Sample returns the sample of this individual genotype multiple bp.
func (g *IndividualGenotypeMultipleBp) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, g, "sample", g.SampleID)
}

// Variation returns the variation of this individual genotype multiple bp.
func (g *IndividualGenotypeMultipleBp) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, g, "variation", g.VariationID)
}

// CompressedGenotypeSingleBp packs the single base pair genotypes of a sample
// over a region. Genotypes holds the packed bytes undecoded.
type CompressedGenotypeSingleBp struct {
	ID              int64  `db:"id" json:"id"`
	SampleID        *int64 `db:"sample_id" json:"sample_id"`
	SeqRegionID     int64  `db:"seq_region_id" json:"seq_region_id"`
	SeqRegionStart  int64  `db:"seq_region_start" json:"seq_region_start"`
	SeqRegionEnd    int64  `db:"seq_region_end" json:"seq_region_end"`
	SeqRegionStrand int64  `db:"seq_region_strand" json:"seq_region_strand"`
	Genotypes       []byte `db:"genotypes" json:"genotypes"`
}

// EntityName implements mapper.Model.
func (*CompressedGenotypeSingleBp) EntityName() string { return EntityCompressedGenotypeSingleBp }

func declareCompressedGenotypeSingleBp() *schema.Entity {
	return schema.Define(EntityCompressedGenotypeSingleBp).
		Columns("id", "sample_id", "seq_region_id", "seq_region_start", "seq_region_end", "seq_region_strand", "genotypes").
		BelongsTo("sample", EntitySample).
		Build()
}

// Sample returns the sample of this compressed genotype single bp.
func (g *CompressedGenotypeSingleBp) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, g, "sample", g.SampleID)
}

// ReadCoverage is a region of a sample covered by sequencing reads at a given level.
type ReadCoverage struct {
	ID             int64  `db:"id" json:"id"`
	SeqRegionID    int64  `db:"seq_region_id" json:"seq_region_id"`
	SeqRegionStart int64  `db:"seq_region_start" json:"seq_region_start"`
	SeqRegionEnd   int64  `db:"seq_region_end" json:"seq_region_end"`
	Level          *int64 `db:"level" json:"level"`
	SampleID       *int64 `db:"sample_id" json:"sample_id"`
}

// EntityName implements mapper.Model.
func (*ReadCoverage) EntityName() string { return EntityReadCoverage }

func declareReadCoverage() *schema.Entity {
	return schema.Define(EntityReadCoverage).
		Columns("id", "seq_region_id", "seq_region_start", "seq_region_end", "level", "sample_id").
		BelongsTo("sample", EntitySample).
		Build()
}

// Sample returns the sample of this read coverage.
func (rc *ReadCoverage) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, rc, "sample", rc.SampleID)
}
