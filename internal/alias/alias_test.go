package alias

import (
	"testing"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/model"
)

func testCatalog() []model.Commodity {
	return []model.Commodity{
		{ID: 1, Name: "Beras Medium"},
		{ID: 2, Name: "Cabai Rawit"},
		{ID: 3, Name: "Ikan Tongkol"},
		{ID: 4, Name: "Gula Pasir"},
	}
}

func TestResolve_CanonicalAndUnit(t *testing.T) {
	t.Parallel()

	ix := BuildIndex(testCatalog(), nil)

	id, ok := ix.Resolve("Beras Medium")
	if !ok || id != 1 {
		t.Fatalf("canonical name: ok=%v id=%d", ok, id)
	}
	id, ok = ix.Resolve("Beras Medium (Rp/Kg)")
	if !ok || id != 1 {
		t.Fatalf("unit-annotated name: ok=%v id=%d", ok, id)
	}
}

func TestResolve_CabaiCabeSymmetry(t *testing.T) {
	t.Parallel()

	ix := BuildIndex(testCatalog(), nil)

	a, okA := ix.Resolve("Cabai Rawit")
	b, okB := ix.Resolve("Cabe Rawit")
	if !okA || !okB || a != b || a != 2 {
		t.Fatalf("cabai/cabe should resolve to the same id: %d/%v %d/%v", a, okA, b, okB)
	}
}

func TestResolve_IkanPrefixToggle(t *testing.T) {
	t.Parallel()

	ix := BuildIndex(testCatalog(), nil)

	id, ok := ix.Resolve("Tongkol")
	if !ok || id != 3 {
		t.Fatalf("prefix-stripped fish name: ok=%v id=%d", ok, id)
	}
	id, ok = ix.Resolve("Ikan Tongkol")
	if !ok || id != 3 {
		t.Fatalf("prefixed fish name: ok=%v id=%d", ok, id)
	}
}

func TestResolve_ManualAliasWins(t *testing.T) {
	t.Parallel()

	manual := map[string]string{
		"Gula":        "Gula Pasir",
		"Beras IR 64": "Beras Medium",
	}
	ix := BuildIndex(testCatalog(), manual)

	id, ok := ix.Resolve("GULA")
	if !ok || id != 4 {
		t.Fatalf("manual alias: ok=%v id=%d", ok, id)
	}
	id, ok = ix.Resolve("beras ir 64 (Rp/Kg)")
	if !ok || id != 1 {
		t.Fatalf("manual alias with unit: ok=%v id=%d", ok, id)
	}
}

func TestResolve_UnknownCanonicalDroppedSilently(t *testing.T) {
	t.Parallel()

	manual := map[string]string{"Jagung Pipil": "Jagung"} // Jagung not in catalog
	ix := BuildIndex(testCatalog(), manual)

	if _, ok := ix.Resolve("Jagung Pipil"); ok {
		t.Fatalf("alias to a missing canonical should not resolve")
	}
}

func TestResolve_EmptyNeverMatches(t *testing.T) {
	t.Parallel()

	ix := BuildIndex(testCatalog(), nil)
	if _, ok := ix.Resolve("   "); ok {
		t.Fatalf("empty input must never match")
	}
}
