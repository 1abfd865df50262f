package catalog

import (
	"fmt"
	"os"

	"github.com/vanixstudio/vanix-bff/internal/domain"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// fileProduct is the on-disk shape of a catalog entry. Prices are strings so
// YAML floats never round a cent.
type fileProduct struct {
	ID           string       `yaml:"id"`
	Slug         string       `yaml:"slug"`
	Title        string       `yaml:"title"`
	Subtitle     string       `yaml:"subtitle"`
	Description  string       `yaml:"description"`
	PriceEUR     string       `yaml:"priceEUR"`
	Category     string       `yaml:"category"`
	Tags         []string     `yaml:"tags"`
	Image        string       `yaml:"image"`
	Featured     bool         `yaml:"featured"`
	Deliverables []string     `yaml:"deliverables"`
	Timeline     string       `yaml:"timeline"`
	FAQ          []domain.FAQ `yaml:"faq"`
}

type fileCatalog struct {
	Products []fileProduct `yaml:"products"`
}

// LoadFile reads a YAML catalog of the form
//
//	products:
//	  - id: vanix-website-starter
//	    slug: product1
//	    title: Website Starter
//	    priceEUR: "149"
//	    category: Website
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog bytes. Every product needs an id, a title and a
// non-negative price.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(fc.Products) == 0 {
		return nil, &domain.ErrValidation{Field: "products", Message: "catalog is empty"}
	}

	products := make([]domain.Product, 0, len(fc.Products))
	for i, fp := range fc.Products {
		if fp.ID == "" || fp.Title == "" {
			return nil, &domain.ErrValidation{Field: fmt.Sprintf("products[%d]", i), Message: "id and title are required"}
		}
		price, err := decimal.NewFromString(fp.PriceEUR)
		if err != nil || price.IsNegative() {
			return nil, &domain.ErrValidation{Field: fmt.Sprintf("products[%d].priceEUR", i), Message: "must be a non-negative amount"}
		}
		products = append(products, domain.Product{
			ID:           fp.ID,
			Slug:         fp.Slug,
			Title:        fp.Title,
			Subtitle:     fp.Subtitle,
			Description:  fp.Description,
			PriceEUR:     price,
			Category:     domain.ProductCategory(fp.Category),
			Tags:         fp.Tags,
			Image:        fp.Image,
			Featured:     fp.Featured,
			Deliverables: fp.Deliverables,
			Timeline:     fp.Timeline,
			FAQ:          fp.FAQ,
		})
	}
	return New(products), nil
}
