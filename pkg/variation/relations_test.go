package variation_test

import (
	"context"
	"testing"

	"github.com/leapstack-labs/ensvar/internal/testutil"
	"github.com/leapstack-labs/ensvar/pkg/core"
	"github.com/leapstack-labs/ensvar/pkg/mapper"
	"github.com/leapstack-labs/ensvar/pkg/schema"
	"github.com/leapstack-labs/ensvar/pkg/variation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, opts ...mapper.Option) *mapper.Session {
	t.Helper()
	opts = append([]mapper.Option{mapper.WithLogger(testutil.NewTestLogger(t))}, opts...)
	s, err := mapper.NewSession(testutil.NewFixtureAdapter(t), variation.Schema(), opts...)
	require.NoError(t, err)
	return s
}

func get[T any, PT interface {
	*T
	mapper.Model
}](t *testing.T, s *mapper.Session, key any) *T {
	t.Helper()
	v, err := mapper.Get[T, PT](context.Background(), s, key)
	require.NoError(t, err)
	return v
}

func TestPopulation_SampleRoundTrip(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	pop := get[variation.Population](t, s, 1)

	smp, err := pop.Sample(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, smp)
	assert.Equal(t, int64(9), smp.SampleID)
	assert.Equal(t, "CEU", smp.Name)

	back, err := smp.Population(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, pop.ID, back.ID)
	assert.False(t, back.IsStrain)
}

func TestAllele_BelongsTo(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	a := get[variation.Allele](t, s, 1000)
	assert.Equal(t, "A", a.Allele)
	require.NotNil(t, a.Frequency)
	assert.InDelta(t, 0.3, *a.Frequency, 1e-9)

	v, err := a.Variation(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, v.Name)
	assert.Equal(t, "rs699", *v.Name)

	smp, err := a.Sample(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CEU", smp.Name)

	pop, err := a.Population(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pop.ID)
}

func TestAllele_NullForeignKeys(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	a := get[variation.Allele](t, s, 1003)
	assert.Nil(t, a.SampleID)
	assert.Nil(t, a.Frequency)

	smp, err := a.Sample(s).Force(ctx)
	require.NoError(t, err)
	assert.Nil(t, smp)

	pop, err := a.Population(s).Force(ctx)
	require.NoError(t, err)
	assert.Nil(t, pop)
}

func TestSampleSynonym_DanglingSample(t *testing.T) {
	s := newSession(t)

	syn := get[variation.SampleSynonym](t, s, 81)

	_, err := syn.Sample(s).Force(context.Background())
	require.ErrorIs(t, err, core.ErrNotFound)

	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, variation.EntitySample, nf.Entity)
	assert.Equal(t, int64(999), nf.Key)
}

func TestVariation_Relations(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	v := get[variation.Variation](t, s, 100)

	src, err := v.Source(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dbSNP", src.Name)

	alleles, err := v.Alleles(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, alleles, 2)
	assert.Equal(t, int64(1000), alleles[0].AlleleID)
	assert.Equal(t, int64(1001), alleles[1].AlleleID)

	syns, err := v.VariationSynonyms(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, syns, 2)
	require.NotNil(t, syns[1].Moltype)
	assert.Equal(t, "Genomic", *syns[1].Moltype)

	feats, err := v.VariationFeatures(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, feats, 1)
	assert.Equal(t, int64(500), feats[0].VariationFeatureID)
	assert.Equal(t, int64(-1), feats[0].SeqRegionStrand)

	flank, err := v.FlankingSequence(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, flank)
	require.NotNil(t, flank.UpSeq)
	assert.Equal(t, "ACGTACGT", *flank.UpSeq)

	back, err := flank.Variation(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, v.VariationID, back.VariationID)
}

func TestVariation_WithoutDependants(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	v := get[variation.Variation](t, s, 102)

	alleles, err := v.Alleles(s).Force(ctx)
	require.NoError(t, err)
	assert.NotNil(t, alleles)
	assert.Empty(t, alleles)

	flank, err := v.FlankingSequence(s).Force(ctx)
	require.NoError(t, err)
	assert.Nil(t, flank)

	src, err := v.Source(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HGMD-PUBLIC", src.Name)
}

func TestSource_HasMany(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	src := get[variation.Source](t, s, 1)

	vars, err := src.Variations(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, vars, 2)
	assert.Equal(t, int64(100), vars[0].VariationID)

	syns, err := src.SampleSynonyms(s).Force(ctx)
	require.NoError(t, err)
	assert.Len(t, syns, 2)

	groups, err := src.VariationGroups(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, int64(20), groups[0].VariationGroupID)

	httags, err := src.Httags(s).Force(ctx)
	require.NoError(t, err)
	assert.Len(t, httags, 1)

	ags, err := src.AlleleGroups(s).Force(ctx)
	require.NoError(t, err)
	assert.Len(t, ags, 1)

	vsyns, err := src.VariationSynonyms(s).Force(ctx)
	require.NoError(t, err)
	assert.Len(t, vsyns, 2)

	archive := get[variation.Source](t, s, 3)
	none, err := archive.Variations(s).Force(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSample_HasMany(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	smp := get[variation.Sample](t, s, 11)

	cov, err := smp.ReadCoverage(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, cov, 3)
	for _, rc := range cov {
		require.NotNil(t, rc.SampleID)
		assert.Equal(t, smp.SampleID, *rc.SampleID)
	}

	gts, err := smp.IndividualGenotypeMultipleBp(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, gts, 2)
	require.NotNil(t, gts[0].Allele2)
	assert.Equal(t, "G", *gts[0].Allele2)

	packed, err := smp.CompressedGenotypeSingleBp(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, packed, 1)
	assert.Equal(t, []byte{0x01, 0x02}, packed[0].Genotypes)

	ind, err := smp.Individual(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, ind)
	assert.Equal(t, int64(1), ind.ID)

	ceu := get[variation.Sample](t, s, 9)
	tagged, err := ceu.TaggedVariationFeatures(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, tagged, 2)

	syn, err := ceu.SampleSynonym(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, syn)
	assert.Equal(t, int64(80), syn.SampleSynonymID)
}

func TestIndividual_StubKeepsUndeclaredColumns(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	ind := get[variation.Individual](t, s, 1)
	require.NotNil(t, ind.SampleID)
	assert.Equal(t, int64(11), *ind.SampleID)
	assert.Equal(t, "Female", ind.Attributes["gender"])
	assert.NotContains(t, ind.Attributes, "sample_id")

	smp, err := ind.Sample(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, "NA12878", smp.Name)
}

func TestPopulationStructure_Stub(t *testing.T) {
	s := newSession(t)

	ps := get[variation.PopulationStructure](t, s, 1)
	assert.Equal(t, int64(1), ps.ID)
	assert.Equal(t, int64(9), ps.Attributes["super_population_sample_id"])
	assert.Equal(t, int64(10), ps.Attributes["sub_population_sample_id"])
}

func TestJoinEntities(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	t.Run("individual_population", func(t *testing.T) {
		j := get[variation.IndividualPopulation](t, s, 1)

		ind, err := j.Individual(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), ind.ID)

		pop, err := j.Population(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), pop.ID)
	})

	t.Run("tagged_variation_feature", func(t *testing.T) {
		j := get[variation.TaggedVariationFeature](t, s, 3)

		vf, err := j.VariationFeature(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(500), vf.VariationFeatureID)

		smp, err := j.Sample(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, "YRI", smp.Name)
	})

	t.Run("allele_group_allele", func(t *testing.T) {
		j := get[variation.AlleleGroupAllele](t, s, 51)

		ag, err := j.AlleleGroup(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(40), ag.AlleleGroupID)

		v, err := j.Variation(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(101), v.VariationID)
	})
}

func TestVariationGroup_HasOne(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	g := get[variation.VariationGroup](t, s, 20)

	member, err := g.VariationGroupVariation(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, int64(1), member.ID)

	v, err := member.Variation(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), v.VariationID)

	tag, err := g.Httag(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, int64(60), tag.HttagID)

	feat, err := g.VariationGroupFeature(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, feat)
	assert.Equal(t, int64(30), feat.VariationGroupFeatureID)

	ag, err := g.AlleleGroup(s).Force(ctx)
	require.NoError(t, err)
	require.NotNil(t, ag)

	aga, err := ag.AlleleGroupAllele(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), aga.ID)

	empty := get[variation.VariationGroup](t, s, 21)
	none, err := empty.Httag(s).Force(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestVariationFeature_Relations(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	vf := get[variation.VariationFeature](t, s, 500)

	tagged, err := vf.TaggedVariationFeatures(s).Force(ctx)
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	assert.Equal(t, int64(1), tagged[0].ID)
	assert.Equal(t, int64(3), tagged[1].ID)

	v, err := vf.Variation(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), v.VariationID)

	src, err := vf.Source(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), src.SourceID)
}

func TestPopulationGenotype_Relations(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	pg := get[variation.PopulationGenotype](t, s, 71)

	pop, err := pg.Population(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pop.ID)

	smp, err := pop.Sample(s).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, "YRI", smp.Name)
}

func TestMemoizedSession_ForceAll(t *testing.T) {
	s := newSession(t, mapper.WithMemoize(true))
	ctx := context.Background()

	v := get[variation.Variation](t, s, 101)

	src := v.Source(s)
	alleles := v.Alleles(s)
	syns := v.VariationSynonyms(s)
	require.NoError(t, mapper.ForceAll(ctx, src, alleles, syns))

	assert.True(t, src.Forced())
	assert.True(t, alleles.Forced())

	got, err := alleles.Force(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	names, err := mapper.Map(syns, func(in []*variation.VariationSynonym) ([]string, error) {
		out := make([]string, 0, len(in))
		for _, syn := range in {
			out = append(out, *syn.Name)
		}
		return out, nil
	}).Force(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ss3"}, names)
}

// TestDeclaredRelations_MatchDirectLookups follows every declared relation
// from every fixture row and compares the result with a direct query on the
// target's join column.
func TestDeclaredRelations_MatchDirectLookups(t *testing.T) {
	s := newSession(t)
	reg := s.Registry()
	ctx := context.Background()

	traversals := 0
	for _, e := range reg.Entities() {
		owners, err := s.Where(ctx, e.Name, mapper.Filter{})
		require.NoError(t, err)

		for _, rel := range e.Relations {
			t.Run(e.Name+"."+rel.Name, func(t *testing.T) {
				target, err := reg.Lookup(rel.Target)
				require.NoError(t, err)
				ownerCol, targetCol, err := reg.JoinColumns(e.Name, rel.Name)
				require.NoError(t, err)

				for _, owner := range owners {
					key, ok := owner.Get(ownerCol)
					require.True(t, ok, "%s row lacks %s", e.Name, ownerCol)
					traversals++

					if key == nil {
						if rel.Kind.IsCollection() {
							got, err := s.Many(e.Name, rel.Name, owner).Force(ctx)
							require.NoError(t, err)
							assert.Empty(t, got)
						} else {
							got, err := s.One(e.Name, rel.Name, owner).Force(ctx)
							require.NoError(t, err)
							assert.Nil(t, got)
						}
						continue
					}

					f := mapper.Filter{Eq: map[string]any{targetCol: key}}
					if target.SelectColumns() != nil {
						f.OrderBy = []string{target.PrimaryKey}
					}
					want, err := s.Where(ctx, target.Name, f)
					require.NoError(t, err)

					if rel.Kind.IsCollection() {
						got, err := s.Many(e.Name, rel.Name, owner).Force(ctx)
						require.NoError(t, err)
						assert.Equal(t, want, got, "%s %v -> %s", e.Name, key, rel.Name)
						continue
					}

					got, err := s.One(e.Name, rel.Name, owner).Force(ctx)
					switch {
					case len(want) > 0:
						require.NoError(t, err)
						assert.Equal(t, want[0], got, "%s %v -> %s", e.Name, key, rel.Name)
					case rel.Kind == schema.BelongsTo:
						assert.ErrorIs(t, err, core.ErrNotFound, "%s %v -> %s", e.Name, key, rel.Name)
					default:
						require.NoError(t, err)
						assert.Nil(t, got)
					}
				}
			})
		}
	}
	assert.Positive(t, traversals)
}

func TestTypedAccessors_UseTheirOwnKeys(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	t.Run("allele_group", func(t *testing.T) {
		ag := get[variation.AlleleGroup](t, s, 40)

		g, err := ag.VariationGroup(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(20), g.VariationGroupID)

		src, err := ag.Source(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, "dbSNP", src.Name)

		smp, err := ag.Sample(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(9), smp.SampleID)

		aga, err := ag.AlleleGroupAllele(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(50), aga.ID)
	})

	t.Run("httag", func(t *testing.T) {
		h := get[variation.Httag](t, s, 60)

		g, err := h.VariationGroup(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(20), g.VariationGroupID)

		src, err := h.Source(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), src.SourceID)
	})

	t.Run("variation_group_variation", func(t *testing.T) {
		j := get[variation.VariationGroupVariation](t, s, 2)

		g, err := j.VariationGroup(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(20), g.VariationGroupID)

		v, err := j.Variation(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(101), v.VariationID)
	})

	t.Run("variation_group_feature", func(t *testing.T) {
		f := get[variation.VariationGroupFeature](t, s, 30)

		g, err := f.VariationGroup(s).Force(ctx)
		require.NoError(t, err)
		require.NotNil(t, g.Name)
		assert.Equal(t, "haplotype-1", *g.Name)
	})

	t.Run("read_coverage", func(t *testing.T) {
		rc := get[variation.ReadCoverage](t, s, 2)

		smp, err := rc.Sample(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, "NA12878", smp.Name)
	})

	t.Run("compressed_genotype_single_bp", func(t *testing.T) {
		g := get[variation.CompressedGenotypeSingleBp](t, s, 1)

		smp, err := g.Sample(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(11), smp.SampleID)
	})

	t.Run("flanking_sequence", func(t *testing.T) {
		fs := get[variation.FlankingSequence](t, s, 1)

		v, err := fs.Variation(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(100), v.VariationID)
	})

	t.Run("individual_genotype_multiple_bp", func(t *testing.T) {
		g := get[variation.IndividualGenotypeMultipleBp](t, s, 2)

		smp, err := g.Sample(s).Force(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(11), smp.SampleID)

		v, err := g.Variation(s).Force(ctx)
		require.NoError(t, err)
		require.NotNil(t, v.Name)
		assert.Equal(t, "rs4988235", *v.Name)
	})
}
