package core

import (
	"context"
	"strconv"
	"strings"

	"storefront/pkg/domain"
)

// SiteSettings returns the branding and payment configuration.
func (s *Service) SiteSettings() domain.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Configuration
}

// UpdateSiteSettings merges the supplied fields over the current settings.
// Fields left nil keep their value; supplied fields must not be blank.
func (s *Service) UpdateSiteSettings(ctx context.Context, patch domain.SiteSettingsPatch) (domain.SiteSettings, error) {
	var updated domain.SiteSettings
	err := s.run(ctx, "update_site_settings", func() (effect, error) {
		trimmed, err := trimPatch(patch)
		if err != nil {
			return 0, err
		}
		s.snapshot.Configuration = trimmed.Apply(s.snapshot.Configuration)
		updated = s.snapshot.Configuration
		return changedSnapshot, nil
	})
	return updated, err
}

func trimPatch(p domain.SiteSettingsPatch) (domain.SiteSettingsPatch, error) {
	fields := []struct {
		name string
		val  **string
	}{
		{"logoUrl", &p.LogoURL},
		{"faviconUrl", &p.FaviconURL},
		{"upiId", &p.UPIID},
	}
	for _, f := range fields {
		if *f.val == nil {
			continue
		}
		v := strings.TrimSpace(**f.val)
		if v == "" {
			return p, domain.Invalid("%s must not be blank", f.name)
		}
		*f.val = &v
	}
	return p, nil
}

// CarouselSlides returns the home page slides in display order.
func (s *Service) CarouselSlides() []domain.CarouselSlide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CarouselSlide{}, s.snapshot.Carousel...)
}

// AddCarouselSlide assigns a fresh id and appends the slide.
func (s *Service) AddCarouselSlide(ctx context.Context, slide domain.CarouselSlide) (domain.CarouselSlide, error) {
	var created domain.CarouselSlide
	err := s.run(ctx, "add_carousel_slide", func() (effect, error) {
		if err := validateSlide(slide); err != nil {
			return 0, err
		}
		created = slide
		created.ID = s.ids.NextID()
		s.snapshot.Carousel = append(s.snapshot.Carousel, created)
		return changedSnapshot, nil
	})
	return created, err
}

// UpdateCarouselSlide replaces the slide with the same id.
func (s *Service) UpdateCarouselSlide(ctx context.Context, slide domain.CarouselSlide) error {
	return s.run(ctx, "update_carousel_slide", func() (effect, error) {
		if err := validateSlide(slide); err != nil {
			return 0, err
		}
		for i := range s.snapshot.Carousel {
			if s.snapshot.Carousel[i].ID == slide.ID {
				s.snapshot.Carousel[i] = slide
				return changedSnapshot, nil
			}
		}
		return 0, domain.NotFoundError{Entity: domain.EntityCarouselSlide, ID: strconv.FormatInt(slide.ID, 10)}
	})
}

// RemoveCarouselSlide drops the slide; it reports whether one matched.
func (s *Service) RemoveCarouselSlide(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.run(ctx, "remove_carousel_slide", func() (effect, error) {
		kept := make([]domain.CarouselSlide, 0, len(s.snapshot.Carousel))
		for _, sl := range s.snapshot.Carousel {
			if sl.ID == id {
				found = true
				continue
			}
			kept = append(kept, sl)
		}
		if !found {
			return 0, nil
		}
		s.snapshot.Carousel = kept
		return changedSnapshot, nil
	})
	return found, err
}

func validateSlide(slide domain.CarouselSlide) error {
	if strings.TrimSpace(slide.ImageURL) == "" {
		return domain.Invalid("imageUrl is required")
	}
	if strings.TrimSpace(slide.Headline) == "" {
		return domain.Invalid("headline is required")
	}
	return nil
}
