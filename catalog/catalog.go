package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"
)

const placeholderImage = "https://via.placeholder.com/150"

// Product is a catalog entry loaded from the products JSON file. The catalog
// is read-only after Load, so Products are safe to share across requests.
type Product struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Price            float64  `json:"price"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additionalImages"`
	SKU              string   `json:"sku"`
	Category         string   `json:"category"`
}

// rawProduct matches the on-disk shape, which is looser than what we serve:
// price may be a string, images is a single list, id and category may be absent.
type rawProduct struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    json.RawMessage `json:"price"`
	Images   []string        `json:"images"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
}

type Catalog struct {
	products []Product
	byID     map[string]Product
}

// Load reads the product list once at startup. A missing file yields an empty
// catalog rather than an error so the store can still serve orders and tracking.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️ Products file %s not found, starting with empty catalog", path)
			return &Catalog{byID: map[string]Product{}}, nil
		}
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var raw []rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse products file: %w", err)
	}

	c := &Catalog{byID: make(map[string]Product, len(raw))}
	for _, r := range raw {
		p := Product{
			ID:       r.ID,
			Title:    r.Title,
			Price:    parsePrice(r.Price),
			SKU:      r.SKU,
			Category: r.Category,
		}
		if p.ID == "" {
			p.ID = "temp-" + randomSuffix(9)
		}
		if p.Title == "" {
			p.Title = "Unnamed Product"
		}
		if p.Category == "" {
			p.Category = "Uncategorized"
		}
		if len(r.Images) > 0 {
			p.Image = r.Images[0]
			p.AdditionalImages = r.Images[1:]
		} else {
			p.Image = placeholderImage
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}

	log.Printf("✅ Products loaded from JSON: %d", len(c.products))
	return c, nil
}

// parsePrice accepts a JSON number or a numeric string; anything else is 0.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f >= 0 {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if _, err := fmt.Sscanf(s, "%f", &f); err == nil && f >= 0 {
			return f
		}
	}
	return 0
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// Products returns every catalog entry in file order.
func (c *Catalog) Products() []Product {
	return c.products
}

// FindByID returns the product with the given id.
func (c *Catalog) FindByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Categories returns the distinct product categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats
}
