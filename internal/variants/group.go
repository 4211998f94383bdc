package variants

import (
	"sort"
	"strings"

	"github.com/Migueldelg/RadarOfertas/internal/deal"
	"github.com/Migueldelg/RadarOfertas/internal/textnorm"
)

// DefaultVocabulary returns the built-in cosmetic qualifiers that may
// distinguish two listings of the same underlying product: colors and size
// adjectives. Platform codes (PS5, 4K, ...) never appear here because the
// normalizer already discards short alphanumeric tokens.
func DefaultVocabulary() []string {
	return []string{
		"negro", "negra", "blanco", "blanca", "azul", "rojo", "roja",
		"verde", "rosa", "gris", "morado", "morada", "lila", "amarillo",
		"amarilla", "naranja", "beige", "turquesa", "plata", "dorado",
		"dorada", "mini", "grande", "pequeño", "pequeña", "mediano",
		"mediana", "talla", "color", "edicion", "edición", "estandar",
		"estándar",
	}
}

// Grouper clusters candidates that are the same product in different
// platform, color or size trims.
type Grouper struct {
	norm  *textnorm.Normalizer
	vocab map[string]struct{}
}

// NewGrouper builds a grouper using the given normalizer and variant
// vocabulary. An empty vocabulary falls back to DefaultVocabulary.
func NewGrouper(norm *textnorm.Normalizer, vocabulary []string) *Grouper {
	if norm == nil {
		norm = textnorm.NewNormalizer(nil)
	}
	if len(vocabulary) == 0 {
		vocabulary = DefaultVocabulary()
	}
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, w := range vocabulary {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		vocab[w] = struct{}{}
	}
	return &Grouper{norm: norm, vocab: vocab}
}

// AreVariants reports whether the two titles describe the same underlying
// product. Titles with no shared keywords are never variants; otherwise both
// symmetric differences must consist purely of variant-vocabulary words.
func (g *Grouper) AreVariants(titleA, titleB string) bool {
	setA := g.norm.Keywords(titleA)
	setB := g.norm.Keywords(titleB)
	if len(setA) == 0 || len(setB) == 0 {
		return false
	}

	shared := false
	for word := range setA {
		if _, ok := setB[word]; ok {
			shared = true
			break
		}
	}
	if !shared {
		return false
	}

	return g.onlyVocabulary(setA, setB) && g.onlyVocabulary(setB, setA)
}

// onlyVocabulary reports whether every word of a that is missing from b
// belongs to the variant vocabulary.
func (g *Grouper) onlyVocabulary(a, b map[string]struct{}) bool {
	for word := range a {
		if _, ok := b[word]; ok {
			continue
		}
		if _, ok := g.vocab[word]; !ok {
			return false
		}
	}
	return true
}

// Merged is one entry of the grouped output. Indexes holds the positions of
// the cluster members in the input slice, representative first.
type Merged struct {
	Product deal.Product
	Indexes []int
}

// Merge collapses variant clusters into single entries. Each cluster keeps
// the member with the best (discount, rating count) as representative and
// carries the rest as reduced Variant records on a copy of the
// representative. Singleton clusters pass through unchanged. The input slice
// is never mutated.
//
// Pairwise comparison is quadratic; candidate counts are a few tens per run.
func (g *Grouper) Merge(products []deal.Product) []Merged {
	if len(products) == 0 {
		return nil
	}

	// Disjoint-set over the candidate indices.
	parent := make([]int, len(products))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[rj] = ri
		}
	}

	for i := 0; i < len(products); i++ {
		for j := i + 1; j < len(products); j++ {
			if g.AreVariants(products[i].Title, products[j].Title) {
				union(i, j)
			}
		}
	}

	components := make(map[int][]int)
	var roots []int
	for i := range products {
		root := find(i)
		if _, seen := components[root]; !seen {
			roots = append(roots, root)
		}
		components[root] = append(components[root], i)
	}
	sort.Ints(roots)

	merged := make([]Merged, 0, len(roots))
	for _, root := range roots {
		members := components[root]
		if len(members) == 1 {
			merged = append(merged, Merged{
				Product: products[members[0]],
				Indexes: members,
			})
			continue
		}

		sort.SliceStable(members, func(a, b int) bool {
			pa, pb := products[members[a]], products[members[b]]
			if pa.Discount != pb.Discount {
				return pa.Discount > pb.Discount
			}
			return pa.Ratings > pb.Ratings
		})

		rep := products[members[0]]
		siblings := make([]deal.Variant, 0, len(members)-1)
		for _, idx := range members[1:] {
			siblings = append(siblings, products[idx].AsVariant())
		}
		rep.Variants = siblings

		merged = append(merged, Merged{Product: rep, Indexes: members})
	}

	return merged
}
