package variation

import (
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
)

// Source is the provider a record was imported from, such as dbSNP.
type Source struct {
	SourceID    int64   `db:"source_id" json:"source_id"`
	Name        string  `db:"name" json:"name"`
	Version     *int64  `db:"version" json:"version"`
	Description *string `db:"description" json:"description"`
	URL         *string `db:"url" json:"url"`
}

// EntityName implements mapper.Model.
func (*Source) EntityName() string { return EntitySource }

func declareSource() *schema.Entity {
	return schema.Define(EntitySource).
		PrimaryKey("source_id").
		Columns("source_id", "name", "version", "description", "url").
		HasMany("sample_synonyms", EntitySampleSynonym).
		HasMany("allele_groups", EntityAlleleGroup).
		HasMany("variations", EntityVariation).
		HasMany("variation_groups", EntityVariationGroup).
		HasMany("httags", EntityHttag).
		HasMany("variation_synonyms", EntityVariationSynonym).
		Build()
}

// SampleSynonyms returns the sample synonym rows that refer to this source.
func (src *Source) SampleSynonyms(s *mapper.Session) *mapper.Lazy[[]*SampleSynonym] {
	return mapper.HasMany[SampleSynonym](s, src, "sample_synonyms", src.SourceID)
}

// AlleleGroups returns the allele group rows that refer to this source.
func (src *Source) AlleleGroups(s *mapper.Session) *mapper.Lazy[[]*AlleleGroup] {
	return mapper.HasMany[AlleleGroup](s, src, "allele_groups", src.SourceID)
}

// Variations returns the variation rows that refer to this source.
func (src *Source) Variations(s *mapper.Session) *mapper.Lazy[[]*Variation] {
	return mapper.HasMany[Variation](s, src, "variations", src.SourceID)
}

// VariationGroups returns the variation group rows that refer to this source.
func (src *Source) VariationGroups(s *mapper.Session) *mapper.Lazy[[]*VariationGroup] {
	return mapper.HasMany[VariationGroup](s, src, "variation_groups", src.SourceID)
}

// Httags returns the httag rows that refer to this source.
func (src *Source) Httags(s *mapper.Session) *mapper.Lazy[[]*Httag] {
	return mapper.HasMany[Httag](s, src, "httags", src.SourceID)
}

// VariationSynonyms returns the variation synonym rows that refer to this source.
func (src *Source) VariationSynonyms(s *mapper.Session) *mapper.Lazy[[]*VariationSynonym] {
	return mapper.HasMany[VariationSynonym](s, src, "variation_synonyms", src.SourceID)
}
