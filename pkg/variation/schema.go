// Package variation maps the tables of an Ensembl-style variation database.
//
// Every entity is a plain struct tagged with its column names plus a schema
// declaration registered by Schema. Relations are read through accessors
// that take the session explicitly and return an unforced mapper.Lazy:
//
//	pop, _ := mapper.Get[variation.Population](ctx, s, 1)
//	smp, err := pop.Sample(s).Force(ctx)
package variation

import "github.com/leapstack-labs/ensvar/pkg/schema"

// Entity names.
const (
	EntityAllele                       = "Allele"
	EntityAlleleGroup                  = "AlleleGroup"
	EntityAlleleGroupAllele            = "AlleleGroupAllele"
	EntitySample                       = "Sample"
	EntityIndividualPopulation         = "IndividualPopulation"
	EntityIndividual                   = "Individual"
	EntityIndividualGenotypeMultipleBp = "IndividualGenotypeMultipleBp"
	EntityCompressedGenotypeSingleBp   = "CompressedGenotypeSingleBp"
	EntityReadCoverage                 = "ReadCoverage"
	EntityPopulation                   = "Population"
	EntityPopulationStructure          = "PopulationStructure"
	EntityPopulationGenotype           = "PopulationGenotype"
	EntitySampleSynonym                = "SampleSynonym"
	EntitySource                       = "Source"
	EntityVariationSynonym             = "VariationSynonym"
	EntityVariationGroup               = "VariationGroup"
	EntityVariationGroupVariation      = "VariationGroupVariation"
	EntityVariationGroupFeature        = "VariationGroupFeature"
	EntityFlankingSequence             = "FlankingSequence"
	EntityTaggedVariationFeature       = "TaggedVariationFeature"
	EntityHttag                        = "Httag"
	EntityVariation                    = "Variation"
	EntityVariationFeature             = "VariationFeature"
)

// Schema returns a new registry holding every variation entity.
// It panics if the declarations are inconsistent.
func Schema() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustRegister(
		declareAllele(),
		declareAlleleGroup(),
		declareAlleleGroupAllele(),
		declareSample(),
		declareIndividualPopulation(),
		declareIndividual(),
		declareIndividualGenotypeMultipleBp(),
		declareCompressedGenotypeSingleBp(),
		declareReadCoverage(),
		declarePopulation(),
		declarePopulationStructure(),
		declarePopulationGenotype(),
		declareSampleSynonym(),
		declareSource(),
		declareVariationSynonym(),
		declareVariationGroup(),
		declareVariationGroupVariation(),
		declareVariationGroupFeature(),
		declareFlankingSequence(),
		declareTaggedVariationFeature(),
		declareHttag(),
		declareVariation(),
		declareVariationFeature(),
	)
	if err := reg.Validate(); err != nil {
		panic(err)
	}
	return reg
}
