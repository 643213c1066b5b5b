package classify

import "testing"

func TestBuiltinDomainCategories_MapsKnownHostToCategoryName(t *testing.T) {
	domains, err := BuiltinDomainCategories()
	if err != nil {
		t.Fatalf("BuiltinDomainCategories() error = %v", err)
	}

	name, ok := domains["github.com"]
	if !ok {
		t.Fatal("expected github.com to be present in the domain map")
	}
	if name != "Web Development" {
		t.Errorf("github.com = %q, want %q", name, "Web Development")
	}
}
