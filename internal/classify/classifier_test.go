package classify

import "testing"

func TestClassify_DomainHitWinsOverWeakKeywordMatch(t *testing.T) {
	taxonomy, err := BuiltinTaxonomy()
	if err != nil {
		t.Fatalf("BuiltinTaxonomy() error = %v", err)
	}
	c := New(taxonomy, DefaultThreshold)

	result := c.Classify(Input{
		URL:   "https://www.novartis.com/",
		Host:  "www.novartis.com",
		Title: "Novartis | Home",
	})

	if result.CategoryName != "Pharmaceutical Companies" {
		t.Errorf("CategoryName = %q, want %q", result.CategoryName, "Pharmaceutical Companies")
	}
}

func TestClassify_ExclusionZeroesScore(t *testing.T) {
	taxonomy := []CategoryDef{
		{Name: "Home & Garden", Slug: "home-garden", Weight: 3, Keywords: []string{"home", "garden"}, Exclusions: []string{"pharmaceutical"}},
	}
	c := New(taxonomy, 1)

	result := c.Classify(Input{Title: "Home renovation guide for pharmaceutical labs"})
	if result.CategoryName != OtherLabel {
		t.Errorf("CategoryName = %q, want %q (exclusion should zero the only category)", result.CategoryName, OtherLabel)
	}
}

func TestClassify_BelowThresholdReturnsOther(t *testing.T) {
	taxonomy := []CategoryDef{
		{Name: "Technology", Slug: "technology", Weight: 1, Keywords: []string{"programming"}},
	}
	c := New(taxonomy, 10)

	result := c.Classify(Input{Title: "A page about programming"})
	if result.CategoryName != OtherLabel {
		t.Errorf("CategoryName = %q, want %q", result.CategoryName, OtherLabel)
	}
}

func TestClassify_SemanticKeywordOverlapContributesScore(t *testing.T) {
	taxonomy := []CategoryDef{
		{Name: "Technology", Slug: "technology", Weight: 2, Keywords: []string{"golang"}},
	}
	c := New(taxonomy, 1)

	result := c.Classify(Input{Title: "some page", Keywords: []string{"golang"}})
	if result.CategoryName != "Technology" {
		t.Errorf("CategoryName = %q, want %q", result.CategoryName, "Technology")
	}
	if result.Score < semanticOverlapMul*2 {
		t.Errorf("Score = %d, want at least %d", result.Score, semanticOverlapMul*2)
	}
}

func TestClassify_TieBreakByDeclarationOrder(t *testing.T) {
	taxonomy := []CategoryDef{
		{Name: "First", Slug: "first", Weight: 1, Keywords: []string{"shared"}},
		{Name: "Second", Slug: "second", Weight: 1, Keywords: []string{"shared"}},
	}
	c := New(taxonomy, 1)

	result := c.Classify(Input{Title: "a shared keyword"})
	if result.CategoryName != "First" {
		t.Errorf("CategoryName = %q, want %q (first declared wins ties)", result.CategoryName, "First")
	}
}

func TestBuiltinTaxonomy_HasNineRoots(t *testing.T) {
	taxonomy, err := BuiltinTaxonomy()
	if err != nil {
		t.Fatalf("BuiltinTaxonomy() error = %v", err)
	}

	roots := 0
	for _, c := range taxonomy {
		if c.ParentSlug == "" {
			roots++
		}
	}
	if roots != 9 {
		t.Errorf("root category count = %d, want 9", roots)
	}
}
