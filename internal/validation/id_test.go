package validation

import (
	"strings"
	"testing"
)

func TestValidNumericID(t *testing.T) {
	for _, id := range []int64{1, 42, 1 << 40} {
		if !ValidNumericID(id) {
			t.Fatalf("expected valid: %d", id)
		}
	}
	for _, id := range []int64{0, -1, -99} {
		if ValidNumericID(id) {
			t.Fatalf("expected invalid: %d", id)
		}
	}
}

func TestValidSlugID(t *testing.T) {
	valids := []string{
		"huellitas",
		"pet-shop_23",
		"A1",
		"a",
		strings.Repeat("a", 64),
	}
	for _, v := range valids {
		if !ValidSlugID(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}
	invalids := []string{
		"",
		"../admin",
		"a/b",
		"a.b",
		"a b",
		"tienda%2F",
		strings.Repeat("a", 65),
	}
	for _, v := range invalids {
		if ValidSlugID(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}
