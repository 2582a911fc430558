package core

import (
	"bytes"
	"context"
	"encoding/json"

	"storefront/pkg/domain"
)

// Products returns the catalog, newest first.
func (s *Service) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.snapshot.Products))
	for _, p := range s.snapshot.Products {
		out = append(out, p.Clone())
	}
	return out
}

// FeaturedProducts returns the products flagged for the home page.
func (s *Service) FeaturedProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.snapshot.Products {
		if p.IsFeatured {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Product looks up a product by id.
func (s *Service) Product(id int64) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.snapshot.Products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Product{}, false
}

// AddProduct assigns a fresh id and puts the product at the front of the
// catalog. Variants without an id get one.
func (s *Service) AddProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var created domain.Product
	err := s.run(ctx, "add_product", func() (effect, error) {
		created = product.Clone()
		created.ID = s.ids.NextID()
		s.assignVariantIDs(created.Variants)
		s.snapshot.Products = append([]domain.Product{created.Clone()}, s.snapshot.Products...)
		return changedSnapshot, nil
	})
	return created, err
}

// UpdateProduct replaces the product with the same id. It reports false, and
// changes nothing, when no product matches.
func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) (bool, error) {
	var found bool
	err := s.run(ctx, "update_product", func() (effect, error) {
		for i := range s.snapshot.Products {
			if s.snapshot.Products[i].ID != product.ID {
				continue
			}
			updated := product.Clone()
			s.assignVariantIDs(updated.Variants)
			s.snapshot.Products[i] = updated
			found = true
			return changedSnapshot, nil
		}
		return 0, nil
	})
	return found, err
}

// RemoveProduct drops the product. Orders keep their frozen line items.
func (s *Service) RemoveProduct(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.run(ctx, "remove_product", func() (effect, error) {
		kept := make([]domain.Product, 0, len(s.snapshot.Products))
		for _, p := range s.snapshot.Products {
			if p.ID == id {
				found = true
				continue
			}
			kept = append(kept, p)
		}
		if !found {
			return 0, nil
		}
		s.snapshot.Products = kept
		return changedSnapshot, nil
	})
	return found, err
}

func (s *Service) assignVariantIDs(variants []domain.ProductVariant) {
	for i := range variants {
		if variants[i].ID == 0 {
			variants[i].ID = s.ids.NextID()
		}
	}
}

// ParseVariants decodes the raw JSON variants field of the product editor.
// Anything but a JSON array of variants is a validation failure.
func ParseVariants(raw []byte) ([]domain.ProductVariant, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return nil, domain.Invalid("invalid JSON format for variants")
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.Invalid("variants must be a valid JSON array")
	}
	var variants []domain.ProductVariant
	if err := json.Unmarshal(trimmed, &variants); err != nil {
		return nil, domain.Invalid("invalid variant entry: %v", err)
	}
	if variants == nil {
		variants = []domain.ProductVariant{}
	}
	return variants, nil
}
