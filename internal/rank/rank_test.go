package rank

import (
	"testing"

	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

func TestBrandPriority(t *testing.T) {
	t.Parallel()

	brands := []string{"dodot", "suavinex"}
	if got := BrandPriority("Pack Dodot Sensitive talla 2", brands); got != 1 {
		t.Fatalf("BrandPriority = %d, want 1 for a priority brand", got)
	}
	if got := BrandPriority("Chupete fisiologico nocturno", brands); got != 0 {
		t.Fatalf("BrandPriority = %d, want 0 without a brand mention", got)
	}
	if got := BrandPriority("SUAVINEX biberon anticólico", brands); got != 1 {
		t.Fatalf("brand matching must be case-insensitive")
	}
	if got := BrandPriority("cualquier cosa", []string{""}); got != 0 {
		t.Fatalf("empty brand entries must never match")
	}
}

func TestSortCandidatesOrdersByDiscountFirst(t *testing.T) {
	t.Parallel()

	products := []deal.Product{
		{ASIN: "B01", Title: "A", Discount: 20},
		{ASIN: "B02", Title: "B", Discount: 45},
		{ASIN: "B03", Title: "C", Discount: 30},
	}
	SortCandidates(products, nil)

	want := []string{"B02", "B03", "B01"}
	for i, asin := range want {
		if products[i].ASIN != asin {
			t.Fatalf("position %d = %q, want %q", i, products[i].ASIN, asin)
		}
	}
}

func TestSortCandidatesBrandBreaksDiscountTie(t *testing.T) {
	t.Parallel()

	products := []deal.Product{
		{ASIN: "B01", Title: "Pañales genericos talla 3", Discount: 30},
		{ASIN: "B02", Title: "Pañales Dodot talla 3", Discount: 30},
	}
	SortCandidates(products, []string{"dodot"})

	if products[0].ASIN != "B02" {
		t.Fatalf("priority brand must win the discount tie, got %q first", products[0].ASIN)
	}
}

func TestSortCandidatesPopularitySignals(t *testing.T) {
	t.Parallel()

	products := []deal.Product{
		{ASIN: "B01", Title: "A", Discount: 30, Ratings: 100, Sales: 500},
		{ASIN: "B02", Title: "B", Discount: 30, Ratings: 900, Sales: 100},
		{ASIN: "B03", Title: "C", Discount: 30, Ratings: 100, Sales: 900},
	}
	SortCandidates(products, nil)

	want := []string{"B02", "B03", "B01"}
	for i, asin := range want {
		if products[i].ASIN != asin {
			t.Fatalf("position %d = %q, want %q (ratings before sales)", i, products[i].ASIN, asin)
		}
	}
}

func TestSortCandidatesStableOnFullTie(t *testing.T) {
	t.Parallel()

	products := []deal.Product{
		{ASIN: "B01", Title: "A", Discount: 30},
		{ASIN: "B02", Title: "B", Discount: 30},
	}
	SortCandidates(products, nil)

	if products[0].ASIN != "B01" {
		t.Fatalf("fully tied candidates must keep extractor order")
	}
}

func TestGlobalLessIgnoresPopularity(t *testing.T) {
	t.Parallel()

	a := deal.Product{Title: "A", Discount: 30, Ratings: 9000}
	b := deal.Product{Title: "B", Discount: 30, Ratings: 1}
	if GlobalLess(a, b, nil) || GlobalLess(b, a, nil) {
		t.Fatalf("global ranking must not look at ratings")
	}

	c := deal.Product{Title: "Dodot pack", Discount: 30}
	if !GlobalLess(b, c, []string{"dodot"}) {
		t.Fatalf("global ranking must prefer the priority brand on a discount tie")
	}
}
