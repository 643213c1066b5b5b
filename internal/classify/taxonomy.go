package classify

import (
	"embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed data/taxonomy.yaml
var taxonomyFS embed.FS

type taxonomyFile struct {
	Categories []struct {
		Name                string            `yaml:"name"`
		Slug                string            `yaml:"slug"`
		ParentSlug          string            `yaml:"parentSlug"`
		Weight              int               `yaml:"weight"`
		Keywords            []string          `yaml:"keywords"`
		RequireWordBoundary bool              `yaml:"requireWordBoundary"`
		URLPatterns         []string          `yaml:"urlPatterns"`
		ContentIndicators   []string          `yaml:"contentIndicators"`
		Exclusions          []string          `yaml:"exclusions"`
		Domains             map[string]string `yaml:"domains"`
	} `yaml:"categories"`
}

// BuiltinTaxonomy returns the process-wide default taxonomy, parsed fresh
// on each call so callers can't mutate the shared embedded definition.
func BuiltinTaxonomy() ([]CategoryDef, error) {
	data, err := taxonomyFS.ReadFile("data/taxonomy.yaml")
	if err != nil {
		return nil, fmt.Errorf("classify: failed to read embedded taxonomy: %w", err)
	}

	var tf taxonomyFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("classify: failed to parse embedded taxonomy: %w", err)
	}

	defs := make([]CategoryDef, 0, len(tf.Categories))
	for _, c := range tf.Categories {
		def := CategoryDef{
			Name:                c.Name,
			Slug:                c.Slug,
			ParentSlug:          c.ParentSlug,
			Weight:              c.Weight,
			Keywords:            c.Keywords,
			RequireWordBoundary: c.RequireWordBoundary,
			ContentIndicators:   c.ContentIndicators,
			Exclusions:          c.Exclusions,
			Domains:             c.Domains,
		}
		if def.Weight == 0 {
			def.Weight = 1
		}
		for _, p := range c.URLPatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("classify: invalid URL pattern %q for %q: %w", p, c.Name, err)
			}
			def.URLPatterns = append(def.URLPatterns, re)
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// BuiltinDomainCategories flattens the built-in taxonomy's exact-host
// domain tables into a single host->category-name map, for the
// clustering fallback's domain pass (spec.md §4.6).
func BuiltinDomainCategories() (map[string]string, error) {
	defs, err := BuiltinTaxonomy()
	if err != nil {
		return nil, err
	}

	byName := map[string]string{}
	for _, d := range defs {
		byName[d.Slug] = d.Name
	}

	out := map[string]string{}
	for _, d := range defs {
		for host, slug := range d.Domains {
			if name, ok := byName[slug]; ok {
				out[host] = name
			} else {
				out[host] = slug
			}
		}
	}
	return out, nil
}
