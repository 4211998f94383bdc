package amazon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Migueldelg/RadarOfertas/internal/deal"
)

// maxResultsPerPage caps how deep into a search page extraction goes.
const maxResultsPerPage = 20

// maxTitleLength truncates absurdly long listing titles.
const maxTitleLength = 100

var (
	digitsRe = regexp.MustCompile(`\d+`)
	salesRe  = regexp.MustCompile(`(\d+)[kK]?\+?`)
)

// ExtractSearchResults parses a search results page into candidate
// products. Items without an ASIN are discarded. DetailURL carries the
// affiliate tag when one is configured.
func ExtractSearchResults(html, baseURL, affiliateTag string) ([]deal.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var products []deal.Product
	doc.Find(`[data-component-type="s-search-result"]`).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		asin := strings.TrimSpace(item.AttrOr("data-asin", ""))
		if asin == "" {
			return true
		}

		title := strings.TrimSpace(item.Find("h2 a span").First().Text())
		if title == "" {
			title = strings.TrimSpace(item.Find("h2 span").First().Text())
		}
		if title == "" {
			title = "Sin titulo"
		}
		title = truncateTitle(title)

		price := strings.TrimSpace(item.Find(".a-price .a-offscreen").First().Text())
		previous := strings.TrimSpace(item.Find(`.a-price[data-a-strike="true"] .a-offscreen`).First().Text())

		discount := 0.0
		if previous != "" && price != "" {
			current, okCur := parsePrice(price)
			old, okOld := parsePrice(previous)
			if okCur && okOld && old > 0 {
				discount = (old - current) / old * 100
			}
		}

		detailURL := baseURL + "/dp/" + asin
		if affiliateTag != "" {
			detailURL += "?tag=" + affiliateTag
		}

		products = append(products, deal.Product{
			ASIN:          asin,
			Title:         title,
			Price:         price,
			PreviousPrice: previous,
			Discount:      discount,
			Ratings:       extractRatings(item),
			Sales:         extractSales(item),
			ImageURL:      item.Find("img.s-image").First().AttrOr("src", ""),
			DetailURL:     detailURL,
			HasDeal:       previous != "",
		})
		return len(products) < maxResultsPerPage
	})

	return products, nil
}

// parsePrice converts a formatted amount like "12,99 €" into a float.
func parsePrice(value string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, "€", ""))
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// extractRatings pulls the review count shown next to the star rating.
func extractRatings(item *goquery.Selection) int {
	text := strings.TrimSpace(item.Find(".a-size-base.s-underline-text").First().Text())
	if text == "" {
		return 0
	}
	digits := strings.Join(digitsRe.FindAllString(text, -1), "")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// extractSales parses the "1K+ comprados el mes pasado" hint when present.
func extractSales(item *goquery.Selection) int {
	text := strings.ToLower(strings.TrimSpace(item.Find(".a-size-base.a-color-secondary").First().Text()))
	if text == "" {
		return 0
	}
	if !strings.Contains(text, "compra") && !strings.Contains(text, "vendido") {
		return 0
	}
	match := salesRe.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	if strings.Contains(text, "k") {
		n *= 1000
	}
	return n
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength]) + "..."
}
