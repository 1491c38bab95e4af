package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// Product is one entry in the static UPS/power-backup catalog.
type Product struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Brand     string   `json:"brand"`
	Name      string   `json:"name"`
	Model     string   `json:"model"`
	PowerVA   int      `json:"powerVA"`
	PowerWatt int      `json:"powerWatt"`
	Price     int64    `json:"price"`
	Warranty  int      `json:"warranty"`
	Stock     int      `json:"stock"`
	Specs     []string `json:"specs,omitempty"`
}

// Catalog holds the cleaned product list, loaded once at startup.
type Catalog struct {
	products []Product
}

// Load reads the catalog JSON from disk. A missing or unreadable file
// falls back to the built-in sample so the chat endpoints stay usable.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("فایل محصولات پیدا نشد (%s): %v", path, err)
		return &Catalog{products: sampleProducts()}
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("خطا در بارگذاری محصولات: %v", err)
		return &Catalog{products: sampleProducts()}
	}

	c := &Catalog{products: clean(products)}
	log.Printf("%d محصول معتبر بارگذاری شد", len(c.products))
	return c
}

// New builds a catalog directly from a product slice (used in tests).
func New(products []Product) *Catalog {
	return &Catalog{products: clean(products)}
}

// clean drops products with a non-positive price.
func clean(products []Product) []Product {
	valid := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Price <= 0 {
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

func (c *Catalog) Len() int { return len(c.products) }

func sampleProducts() []Product {
	return []Product{
		{
			ID:        "mm-pelank-450",
			Type:      "UPS",
			Brand:     "MEGAMODE",
			Name:      "پلنک 450VA",
			Model:     "PELANK 450",
			PowerVA:   450,
			PowerWatt: 270,
			Price:     84880000,
			Warranty:  18,
		},
	}
}

// FormatPrice renders a price in the display unit appropriate to its size.
func FormatPrice(price int64) string {
	switch {
	case price >= 1000000000:
		return fmt.Sprintf("%.1f میلیارد تومان", float64(price)/1000000000)
	case price >= 1000000:
		return fmt.Sprintf("%.0f میلیون تومان", float64(price)/1000000)
	default:
		return fmt.Sprintf("%d ریال", price)
	}
}
