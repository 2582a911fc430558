// Package seed provides the packaged default storefront state.
package seed

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"storefront/pkg/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type document struct {
	domain.Snapshot `yaml:",inline"`
	Administrators  []domain.AdminAccount `yaml:"administrators"`
}

var (
	parseOnce sync.Once
	parsed    document
	parseErr  error
)

func load() document {
	parseOnce.Do(func() {
		parseErr = yaml.Unmarshal(seedYAML, &parsed)
		if parseErr == nil && len(parsed.Administrators) == 0 {
			parseErr = fmt.Errorf("seed defines no administrator")
		}
	})
	if parseErr != nil {
		// seed.yaml is compiled in; a parse failure is a build defect
		panic(fmt.Errorf("seed: %w", parseErr))
	}
	return parsed
}

// Snapshot returns a fresh deep copy of the seed snapshot.
func Snapshot() domain.Snapshot {
	return load().Snapshot.Clone()
}

// Administrators returns a fresh copy of the seed administrator list.
func Administrators() []domain.AdminAccount {
	return append([]domain.AdminAccount(nil), load().Administrators...)
}

// Configuration returns the seed site settings.
func Configuration() domain.SiteSettings {
	return load().Configuration
}
