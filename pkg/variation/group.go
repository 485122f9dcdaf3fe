package variation

import (
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// VariationGroup is a named set of variations, typically a haplotype.
type VariationGroup struct {
	VariationGroupID int64   `db:"variation_group_id" json:"variation_group_id"`
	Name             *string `db:"name" json:"name"`
	SourceID         *int64  `db:"source_id" json:"source_id"`
	Type             *string `db:"type" json:"type"`
}

// EntityName implements mapper.Model.
func (*VariationGroup) EntityName() string { return EntityVariationGroup }

func declareVariationGroup() *schema.Entity {
	return schema.Define(EntityVariationGroup).
		PrimaryKey("variation_group_id").
		Columns("variation_group_id", "name", "source_id", "type").
		BelongsTo("source", EntitySource).
		HasOne("variation_group_variation", EntityVariationGroupVariation).
		HasOne("httag", EntityHttag).
		HasOne("variation_group_feature", EntityVariationGroupFeature).
		HasOne("allele_group", EntityAlleleGroup).
		Build()
}

// Source returns the source of this variation group.
func (g *VariationGroup) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, g, "source", g.SourceID)
}

// VariationGroupVariation returns the first membership row of the group.
func (g *VariationGroup) VariationGroupVariation(s *mapper.Session) *mapper.Lazy[*VariationGroupVariation] {
	return mapper.HasOne[VariationGroupVariation](s, g, "variation_group_variation", g.VariationGroupID)
}

// Httag returns the httag row that refers to this variation group, or nil.
func (g *VariationGroup) Httag(s *mapper.Session) *mapper.Lazy[*Httag] {
	return mapper.HasOne[Httag](s, g, "httag", g.VariationGroupID)
}

// VariationGroupFeature returns the variation group feature row that refers to this variation group, or nil.
func (g *VariationGroup) VariationGroupFeature(s *mapper.Session) *mapper.Lazy[*VariationGroupFeature] {
	return mapper.HasOne[VariationGroupFeature](s, g, "variation_group_feature", g.VariationGroupID)
}

// AlleleGroup returns the allele group row that refers to this variation group, or nil.
func (g *VariationGroup) AlleleGroup(s *mapper.Session) *mapper.Lazy[*AlleleGroup] {
	return mapper.HasOne[AlleleGroup](s, g, "allele_group", g.VariationGroupID)
}

// VariationGroupVariation joins variations to the groups they are members of.
type VariationGroupVariation struct {
	ID               int64  `db:"id" json:"id"`
	VariationID      *int64 `db:"variation_id" json:"variation_id"`
	VariationGroupID *int64 `db:"variation_group_id" json:"variation_group_id"`
}

// EntityName implements mapper.Model.
func (*VariationGroupVariation) EntityName() string { return EntityVariationGroupVariation }

func declareVariationGroupVariation() *schema.Entity {
	return schema.Define(EntityVariationGroupVariation).
		Columns("id", "variation_id", "variation_group_id").
		BelongsTo("variation", EntityVariation).
		BelongsTo("variation_group", EntityVariationGroup).
		Join().
		Build()
}

// Variation returns the variation of this variation group variation.
func (j *VariationGroupVariation) Variation(s *mapper.Session) *mapper.Lazy[*Variation] {
	return mapper.BelongsTo[Variation](s, j, "variation", j.VariationID)
}

// VariationGroup returns the variation group of this variation group variation.
func (j *VariationGroupVariation) VariationGroup(s *mapper.Session) *mapper.Lazy[*VariationGroup] {
	return mapper.BelongsTo[VariationGroup](s, j, "variation_group", j.VariationGroupID)
}

// VariationGroupFeature places a variation group on a sequence region.
type VariationGroupFeature struct {
	VariationGroupFeatureID int64   `db:"variation_group_feature_id" json:"variation_group_feature_id"`
	SeqRegionID             int64   `db:"seq_region_id" json:"seq_region_id"`
	SeqRegionStart          int64   `db:"seq_region_start" json:"seq_region_start"`
	SeqRegionEnd            int64   `db:"seq_region_end" json:"seq_region_end"`
	SeqRegionStrand         int64   `db:"seq_region_strand" json:"seq_region_strand"`
	VariationGroupID        *int64  `db:"variation_group_id" json:"variation_group_id"`
	VariationGroupName      *string `db:"variation_group_name" json:"variation_group_name"`
}

// EntityName implements mapper.Model.
func (*VariationGroupFeature) EntityName() string { return EntityVariationGroupFeature }

func declareVariationGroupFeature() *schema.Entity {
	return schema.Define(EntityVariationGroupFeature).
		PrimaryKey("variation_group_feature_id").
		Columns("variation_group_feature_id", "seq_region_id", "seq_region_start", "seq_region_end",
			"seq_region_strand", "variation_group_id", "variation_group_name").
		BelongsTo("variation_group", EntityVariationGroup).
		Build()
}

// VariationGroup returns the variation group of this variation group feature.
func (f *VariationGroupFeature) VariationGroup(s *mapper.Session) *mapper.Lazy[*VariationGroup] {
	return mapper.BelongsTo[VariationGroup](s, f, "variation_group", f.VariationGroupID)
}

// Httag is a haplotype tag variation of a variation group.
type Httag struct {
	HttagID          int64   `db:"httag_id" json:"httag_id"`
	Name             *string `db:"name" json:"name"`
	SourceID         *int64  `db:"source_id" json:"source_id"`
	VariationGroupID *int64  `db:"variation_group_id" json:"variation_group_id"`
}

// EntityName implements mapper.Model.
func (*Httag) EntityName() string { return EntityHttag }

func declareHttag() *schema.Entity {
	return schema.Define(EntityHttag).
		PrimaryKey("httag_id").
		Columns("httag_id", "name", "source_id", "variation_group_id").
		BelongsTo("variation_group", EntityVariationGroup).
		BelongsTo("source", EntitySource).
		Build()
}

// VariationGroup returns the variation group of this httag.
func (h *Httag) VariationGroup(s *mapper.Session) *mapper.Lazy[*VariationGroup] {
	return mapper.BelongsTo[VariationGroup](s, h, "variation_group", h.VariationGroupID)
}

// Source returns the source of this httag.
func (h *Httag) Source(s *mapper.Session) *mapper.Lazy[*Source] {
	return mapper.BelongsTo[Source](s, h, "source", h.SourceID)
}
