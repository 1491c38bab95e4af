package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PowerNeeds captures the load requirement parsed out of a free-text query.
type PowerNeeds struct {
	RequestedPower int // 0 when no power figure was found
	MinVA          float64
	MaxVA          float64
}

var digitRun = regexp.MustCompile(`\d+`)

// knownBrands are brand/form-factor tokens that boost a match when they
// appear in both the query and the product name.
var knownBrands = []string{"ولتاماکس", "ولتا", "گیت", "فاراطل", "ایستاده", "رکمونت"}

// ExtractPowerNeeds scans the query for the first integer in [100, 20000]
// and derives a wide acceptance band around it. The band is informational;
// scoring uses proximity, never a hard filter.
func ExtractPowerNeeds(query string) PowerNeeds {
	needs := PowerNeeds{MinVA: 0, MaxVA: 10000}
	for _, m := range digitRun.FindAllString(strings.ToLower(query), -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n >= 100 && n <= 20000 {
			needs.RequestedPower = n
			needs.MinVA = float64(n) * 0.5
			needs.MaxVA = float64(n) * 2.0
			break
		}
	}
	return needs
}

// Search scores every product against the query and returns the top
// maxResults by descending score. It never fails; an empty query just
// yields base-score ordering.
func (c *Catalog) Search(query string, maxResults int) []Product {
	query = strings.ToLower(query)
	needs := ExtractPowerNeeds(query)

	type scored struct {
		score   int
		product Product
	}
	results := make([]scored, 0, len(c.products))

	for _, p := range c.products {
		score := 0
		name := strings.ToLower(p.Name)

		// Marketing keyword hit in both query and product name.
		if strings.Contains(query, "پلنک") && strings.Contains(name, "پلنک") {
			score += 50
		}

		for _, brand := range knownBrands {
			if strings.Contains(query, brand) && strings.Contains(name, brand) {
				score += 40
			}
		}

		if needs.RequestedPower > 0 {
			diff := p.PowerVA - needs.RequestedPower
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff < 200:
				score += 30
			case diff < 500:
				score += 20
			case diff < 1000:
				score += 10
			default:
				score += 5
			}
		}

		score += p.Warranty / 6

		if p.Stock > 0 {
			score += 5
		}

		// Base score so every product stays in the running.
		score++

		results = append(results, scored{score: score, product: p})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if maxResults > len(results) {
		maxResults = len(results)
	}
	top := make([]Product, 0, maxResults)
	for _, r := range results[:maxResults] {
		top = append(top, r.product)
	}
	return top
}
