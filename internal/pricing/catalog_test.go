package pricing

import "testing"

func TestParseCatalogDropsZeroCostEntries(t *testing.T) {
	data := []byte(`{
		"free-model": {"input_cost_per_token": 0, "output_cost_per_token": 0, "cache_read_input_token_cost": 0, "cache_creation_input_token_cost": 0},
		"priced-model": {"input_cost_per_token": 1e-6, "output_cost_per_token": 2e-6, "cache_read_input_token_cost": 0, "cache_creation_input_token_cost": 0}
	}`)

	catalog, err := parseCatalog(data)
	if err != nil {
		t.Fatalf("parseCatalog: %v", err)
	}
	if _, ok := catalog.Lookup("free-model"); ok {
		t.Fatal("expected zero-cost entry to be dropped")
	}
	if _, ok := catalog.Lookup("priced-model"); !ok {
		t.Fatal("expected priced-model to survive normalization")
	}
}

func TestParseCatalogDefaultsAbove200k(t *testing.T) {
	data := []byte(`{
		"priced-model": {"input_cost_per_token": 1e-6, "output_cost_per_token": 2e-6, "cache_read_input_token_cost": 3e-7, "cache_creation_input_token_cost": 4e-7}
	}`)

	catalog, err := parseCatalog(data)
	if err != nil {
		t.Fatalf("parseCatalog: %v", err)
	}
	entry, ok := catalog.Lookup("priced-model")
	if !ok {
		t.Fatal("expected priced-model present")
	}
	if entry.InputCostPerTokenAbove200k != entry.InputCostPerToken ||
		entry.OutputCostPerTokenAbove200k != entry.OutputCostPerToken ||
		entry.CacheReadCostAbove200k != entry.CacheReadInputTokenCost ||
		entry.CacheCreationCostAbove200k != entry.CacheCreationInputTokenCost {
		t.Fatalf("expected missing above-200k fields to default to base cost, got %+v", entry)
	}
}

func TestParseCatalogExplicitAbove200k(t *testing.T) {
	data := []byte(`{
		"priced-model": {
			"input_cost_per_token": 1e-6, "output_cost_per_token": 2e-6,
			"cache_read_input_token_cost": 0, "cache_creation_input_token_cost": 0,
			"input_cost_per_token_above_200k_tokens": 2e-6
		}
	}`)

	catalog, err := parseCatalog(data)
	if err != nil {
		t.Fatalf("parseCatalog: %v", err)
	}
	entry, _ := catalog.Lookup("priced-model")
	if entry.InputCostPerTokenAbove200k != 2e-6 {
		t.Fatalf("expected explicit above-200k rate preserved, got %v", entry.InputCostPerTokenAbove200k)
	}
}
