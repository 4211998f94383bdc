package deal

// Product is one structured candidate as produced by the search extractor.
// A Product is immutable once extracted; the variant grouper attaches
// Variants on a copy, never in place.
type Product struct {
	ASIN          string
	Title         string
	Price         string
	PreviousPrice string
	Discount      float64
	Ratings       int
	Sales         int
	ImageURL      string
	DetailURL     string
	HasDeal       bool
	Variants      []Variant
}

// Variant is a reduced sibling record carried on a grouped representative.
type Variant struct {
	ASIN          string
	Title         string
	DetailURL     string
	Price         string
	PreviousPrice string
	Discount      float64
}

// AsVariant reduces a product to the sibling shape attached by the grouper.
func (p Product) AsVariant() Variant {
	return Variant{
		ASIN:          p.ASIN,
		Title:         p.Title,
		DetailURL:     p.DetailURL,
		Price:         p.Price,
		PreviousPrice: p.PreviousPrice,
		Discount:      p.Discount,
	}
}
