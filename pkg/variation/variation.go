package variation

import (
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// Variation is a named sequence variant such as rs699.
type Variation struct {
	VariationID      int64   `db:"variation_id" json:"variation_id"`
	SourceID         *int64  `db:"source_id" json:"source_id"`
	Name             *string `db:"name" json:"name"`
	ValidationStatus *string `db:"validation_status" json:"validation_status"`
	AncestralAllele  *string `db:"ancestral_allele" json:"ancestral_allele"`
}

// EntityName implements mapper.Model.
func (*Variation) EntityName() string { return EntityVariation }

func declareVariation() *schema.Entity {
	return schema.Define(EntityVariation).
		PrimaryKey("variation_id").
		Columns("variation_id", "source_id", "name", "validation_status", "ancestral_allele").
		BelongsTo("source", EntitySource).
		HasMany("alleles", EntityAllele).
		HasMany("variation_synonyms", EntityVariationSynonym).
		HasMany("variation_features", EntityVariationFeature).
		HasOne("flanking_sequence", EntityFlankingSequence).
		Build()
}

// Source returns the source of this variation.
func (v *Variation) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, v, "source", v.SourceID)
}

// Alleles returns the allele rows that refer to this variation.
func (v *Variation) Alleles(s *mapper.Session) *mapper.Lazy[[]*Allele] {
	return mapper.HasMany[Allele](s, v, "alleles", v.VariationID)
}

// VariationSynonyms returns the variation synonym rows that refer to this variation.
func (v *Variation) VariationSynonyms(s *mapper.Session) *mapper.Lazy[[]*VariationSynonym] {
	return mapper.HasMany[VariationSynonym](s, v, "variation_synonyms", v.VariationID)
}

// VariationFeatures returns the variation feature rows that refer to this variation.
func (v *Variation) VariationFeatures(s *mapper.Session) *mapper.Lazy[[]*VariationFeature] {
	return mapper.HasMany[VariationFeature](s, v, "variation_features", v.VariationID)
}

// FlankingSequence returns the flanking sequence row that refers to this variation, or nil.
func (v *Variation) FlankingSequence(s *mapper.Session) *mapper.Lazy[*FlankingSequence] {
	return mapper.HasOne[FlankingSequence](s, v, "flanking_sequence", v.VariationID)
}

// VariationFeature places a variation on a sequence region.
type VariationFeature struct {
	VariationFeatureID int64   `db:"variation_feature_id" json:"variation_feature_id"`
	VariationID        *int64  `db:"variation_id" json:"variation_id"`
	SourceID           *int64  `db:"source_id" json:"source_id"`
	SeqRegionID        int64   `db:"seq_region_id" json:"seq_region_id"`
	SeqRegionStart     int64   `db:"seq_region_start" json:"seq_region_start"`
	SeqRegionEnd       int64   `db:"seq_region_end" json:"seq_region_end"`
	SeqRegionStrand    int64   `db:"seq_region_strand" json:"seq_region_strand"`
	AlleleString       *string `db:"allele_string" json:"allele_string"`
	VariationName      *string `db:"variation_name" json:"variation_name"`
}

// EntityName implements mapper.Model.
func (*VariationFeature) EntityName() string { return EntityVariationFeature }

func declareVariationFeature() *schema.Entity {
	return schema.Define(EntityVariationFeature).
		PrimaryKey("variation_feature_id").
		Columns("variation_feature_id", "variation_id", "source_id", "seq_region_id", "seq_region_start",
			"seq_region_end", "seq_region_strand", "allele_string", "variation_name").
		BelongsTo("variation", EntityVariation).
		BelongsTo("source", EntitySource).
		HasMany("tagged_variation_features", EntityTaggedVariationFeature).
		Build()
}

// Variation returns the variation of this variation feature.
func (f *VariationFeature) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, f, "variation", f.VariationID)
}

// Source returns the source of this variation feature.
func (f *VariationFeature) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, f, "source", f.SourceID)
}

// TaggedVariationFeatures returns the tagged variation feature rows that refer to this variation feature.
func (f *VariationFeature) TaggedVariationFeatures(s *mapper.Session) *mapper.Lazy[[]*TaggedVariationFeature] {
	return mapper.HasMany[TaggedVariationFeature](s, f, "tagged_variation_features", f.VariationFeatureID)
}

// VariationSynonym is an alternative identifier of a variation in another source.
type VariationSynonym struct {
	VariationSynonymID int64   `db:"variation_synonym_id" json:"variation_synonym_id"`
	VariationID        *int64  `db:"variation_id" json:"variation_id"`
	SourceID           *int64  `db:"source_id" json:"source_id"`
	Name               *string `db:"name" json:"name"`
	Moltype            *string `db:"moltype" json:"moltype"`
}

// EntityName implements mapper.Model.
func (*VariationSynonym) EntityName() string { return EntityVariationSynonym }

func declareVariationSynonym() *schema.Entity {
	return schema.Define(EntityVariationSynonym).
		PrimaryKey("variation_synonym_id").
		Columns("variation_synonym_id", "variation_id", "source_id", "name", "moltype").
		BelongsTo("variation", EntityVariation).
		BelongsTo("source", EntitySource).
		Build()
}

// Variation returns the variation of this variation synonym.
func (syn *VariationSynonym) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, syn, "variation", syn.VariationID)
}

// Source returns the source of this variation synonym.
func (syn *VariationSynonym) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, syn, "source", syn.SourceID)
}

// FlankingSequence holds the sequence around a variation.
type FlankingSequence struct {
	ID                 int64   `db:"id" json:"id"`
	VariationID        *int64  `db:"variation_id" json:"variation_id"`
	UpSeq              *string `db:"up_seq" json:"up_seq"`
	DownSeq            *string `db:"down_seq" json:"down_seq"`
	UpSeqRegionStart   *int64  `db:"up_seq_region_start" json:"up_seq_region_start"`
	UpSeqRegionEnd     *int64  `db:"up_seq_region_end" json:"up_seq_region_end"`
	DownSeqRegionStart *int64  `db:"down_seq_region_start" json:"down_seq_region_start"`
	DownSeqRegionEnd   *int64  `db:"down_seq_region_end" json:"down_seq_region_end"`
	SeqRegionID        *int64  `db:"seq_region_id" json:"seq_region_id"`
	SeqRegionStrand    *int64  `db:"seq_region_strand" json:"seq_region_strand"`
}

// EntityName implements mapper.Model.
func (*FlankingSequence) EntityName() string { return EntityFlankingSequence }

func declareFlankingSequence() *schema.Entity {
	return schema.Define(EntityFlankingSequence).
		Columns("id", "variation_id", "up_seq", "down_seq", "up_seq_region_start", "up_seq_region_end",
			"down_seq_region_start", "down_seq_region_end", "seq_region_id", "seq_region_strand").
		BelongsTo("variation", EntityVariation).
		Build()
}

// Variation returns the variation of this flanking sequence.
func (fs *FlankingSequence) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, fs, "variation", fs.VariationID)
}

// TaggedVariationFeature joins a variation feature to the samples it tags.
type TaggedVariationFeature struct {
	ID                 int64  `db:"id" json:"id"`
	VariationFeatureID *int64 `db:"variation_feature_id" json:"variation_feature_id"`
	SampleID           *int64 `db:"sample_id" json:"sample_id"`
}

// EntityName implements mapper.Model.
func (*TaggedVariationFeature) EntityName() string { return EntityTaggedVariationFeature }

func declareTaggedVariationFeature() *schema.Entity {
	return schema.Define(EntityTaggedVariationFeature).
		Columns("id", "variation_feature_id", "sample_id").
		BelongsTo("variation_feature", EntityVariationFeature).
		BelongsTo("sample", EntitySample).
		Join().
		Build()
}

// VariationFeature returns the variation feature of this tagged variation feature.
func (j *TaggedVariationFeature) VariationFeature(s *mapper.Session) *mapper.Lazy[*VariationFeature] {
	return mapper.BelongsTo[VariationFeature](s, j, "variation_feature", j.VariationFeatureID)
}

// Sample returns the sample of this tagged variation feature.
func (j *TaggedVariationFeature) Sample(s *mapper.Session) *mapper.Lazy[*Sample] {
	return mapper.BelongsTo[Sample](s, j, "sample", j.SampleID)
}
