// Package achievements holds the built-in achievement catalog and the rules
// that award achievements automatically when a match finishes.
package achievements

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/gosimple/slug"
	"github.com/maiconsbotelho/sinucalabs/internal/pool"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	catalogOnce sync.Once
	catalog     []pool.Achievement
	catalogErr  error
)

// Catalog returns the built-in achievements. The slice is a copy.
func Catalog() ([]pool.Achievement, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = ParseCatalog(catalogYAML)
	})
	if catalogErr != nil {
		return nil, catalogErr
	}
	out := make([]pool.Achievement, len(catalog))
	copy(out, catalog)
	return out, nil
}

// ParseCatalog decodes a YAML list of achievements and checks every entry.
func ParseCatalog(data []byte) ([]pool.Achievement, error) {
	var list []pool.Achievement
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse achievement catalog: %w", err)
	}

	seen := make(map[string]bool, len(list))
	for i, a := range list {
		if a.Code == "" || a.Name == "" {
			return nil, fmt.Errorf("achievement %d: code and name are required", i)
		}
		if seen[a.Code] {
			return nil, fmt.Errorf("achievement %s: duplicate code", a.Code)
		}
		if !ValidCategory(a.Category) {
			return nil, fmt.Errorf("achievement %s: unknown category %q", a.Code, a.Category)
		}
		seen[a.Code] = true
	}
	return list, nil
}

func ValidCategory(c pool.AchievementCategory) bool {
	switch c {
	case pool.CategorySkill, pool.CategoryBanter, pool.CategoryLuck, pool.CategoryPersistence, pool.CategoryChaos:
		return true
	}
	return false
}

// CodeFromName builds an achievement code from a display name:
// "Rei do Capote" becomes "rei_do_capote".
func CodeFromName(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}

// NewCustom validates a user-defined achievement and derives its code.
func NewCustom(name, description string, category pool.AchievementCategory, allowMultiple bool) (pool.Achievement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pool.Achievement{}, pool.NewValidationError("name is required")
	}
	if category == "" {
		category = pool.CategoryBanter
	}
	if !ValidCategory(category) {
		return pool.Achievement{}, pool.NewValidationError(fmt.Sprintf("invalid category %q", category))
	}
	code := CodeFromName(name)
	if code == "" {
		return pool.Achievement{}, pool.NewValidationError("name must contain letters or digits")
	}
	return pool.Achievement{
		Code:          code,
		Name:          name,
		Description:   strings.TrimSpace(description),
		Category:      category,
		AllowMultiple: allowMultiple,
	}, nil
}
