// Package pricing implements the Pricing Catalog (C6), Model Matcher
// (C7) and Cost Calculator (C8). The catalog is a daily-cached fetch of
// the LiteLLM model pricing JSON, following the teacher's pattern of a
// singleton loaded once per process behind a sync.Once guard.
package pricing

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vibecoding/vct/internal/vctrors"
)

// sourceURL is the LiteLLM community pricing catalog, the same source the
// wider pack's usage-tracking tools resolve model costs against.
const sourceURL = "https://raw.githubusercontent.com/BerriAI/litellm/main/model_prices_and_context_window.json"

const userAgent = "vibe-coding-tracker"

const fetchTimeout = 15 * time.Second

// Entry is one model's per-token pricing, normalized on load.
type Entry struct {
	InputCostPerToken            float64
	OutputCostPerToken           float64
	CacheReadInputTokenCost      float64
	CacheCreationInputTokenCost  float64
	InputCostPerTokenAbove200k   float64
	OutputCostPerTokenAbove200k  float64
	CacheReadCostAbove200k       float64
	CacheCreationCostAbove200k   float64
}

// rawEntry mirrors the subset of LiteLLM's JSON schema this tool prices
// against; unknown fields are ignored by encoding/json.
type rawEntry struct {
	InputCostPerToken                    float64  `json:"input_cost_per_token"`
	OutputCostPerToken                   float64  `json:"output_cost_per_token"`
	CacheReadInputTokenCost              float64  `json:"cache_read_input_token_cost"`
	CacheCreationInputTokenCost          float64  `json:"cache_creation_input_token_cost"`
	InputCostPerTokenAbove200kTokens      *float64 `json:"input_cost_per_token_above_200k_tokens"`
	OutputCostPerTokenAbove200kTokens     *float64 `json:"output_cost_per_token_above_200k_tokens"`
	CacheReadInputTokenCostAbove200k      *float64 `json:"cache_read_input_token_cost_above_200k_tokens"`
	CacheCreationInputTokenCostAbove200k  *float64 `json:"cache_creation_input_token_cost_above_200k_tokens"`
}

// Catalog is the normalized, queryable pricing table for one day.
type Catalog struct {
	entries map[string]Entry
	keys    []string // stable iteration order for the matcher's substring/fuzzy scans
}

// Lookup returns the raw entry for an exact key, if present.
func (c *Catalog) Lookup(key string) (Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Keys returns the catalog's model keys.
func (c *Catalog) Keys() []string {
	return c.keys
}

var (
	once       sync.Once
	shared     *Catalog
	sharedErr  error
)

// Load returns the process-wide Catalog, fetching or reading the daily
// cache file on first use and memoizing the result for the process
// lifetime (a fresh process re-checks the daily cache file).
func Load() (*Catalog, error) {
	once.Do(func() {
		shared, sharedErr = load(time.Now())
	})
	return shared, sharedErr
}

func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", vctrors.New(vctrors.ConfigError, fmt.Errorf("determine home directory: %w", err))
	}
	return filepath.Join(home, ".vibe_coding_tracker"), nil
}

func cacheFilePath(dir string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("model_pricing_%s.json", day.Format("2006-01-02")))
}

func load(now time.Time) (*Catalog, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}

	today := cacheFilePath(dir, now)
	if data, err := os.ReadFile(today); err == nil {
		return parseCatalog(data)
	}

	data, fetchErr := fetch()
	if fetchErr == nil {
		if writeErr := writeCacheAtomic(dir, today, data); writeErr == nil {
			cleanupPreviousDays(dir, today)
		}
		return parseCatalog(data)
	}

	if data, _ := loadMostRecentStale(dir); data != nil {
		return parseCatalog(data)
	}

	return nil, vctrors.New(vctrors.CatalogUnavailable, fetchErr)
}

func fetch() ([]byte, error) {
	client := &http.Client{Timeout: fetchTimeout}
	req, err := http.NewRequest(http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, vctrors.New(vctrors.NetworkError, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, vctrors.New(vctrors.NetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, vctrors.New(vctrors.NetworkError, fmt.Errorf("pricing fetch: unexpected status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, vctrors.New(vctrors.NetworkError, err)
	}
	return data, nil
}

func writeCacheAtomic(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func cleanupPreviousDays(dir, keep string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "model_pricing_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		full := filepath.Join(dir, name)
		if full == keep {
			continue
		}
		_ = os.Remove(full)
	}
}

func loadMostRecentStale(dir string) ([]byte, string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ""
	}
	var newest string
	var newestMod time.Time
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "model_pricing_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(newestMod) {
			newestMod = info.ModTime()
			newest = filepath.Join(dir, name)
		}
	}
	if newest == "" {
		return nil, ""
	}
	data, err := os.ReadFile(newest)
	if err != nil {
		return nil, ""
	}
	return data, newest
}

func parseCatalog(data []byte) (*Catalog, error) {
	var raw map[string]rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, vctrors.New(vctrors.ParseError, err)
	}

	c := &Catalog{entries: make(map[string]Entry, len(raw))}
	for key, re := range raw {
		if re.InputCostPerToken == 0 && re.OutputCostPerToken == 0 &&
			re.CacheReadInputTokenCost == 0 && re.CacheCreationInputTokenCost == 0 {
			continue // zero-cost entries are dropped
		}

		entry := Entry{
			InputCostPerToken:           re.InputCostPerToken,
			OutputCostPerToken:          re.OutputCostPerToken,
			CacheReadInputTokenCost:     re.CacheReadInputTokenCost,
			CacheCreationInputTokenCost: re.CacheCreationInputTokenCost,
		}
		entry.InputCostPerTokenAbove200k = orDefault(re.InputCostPerTokenAbove200kTokens, re.InputCostPerToken)
		entry.OutputCostPerTokenAbove200k = orDefault(re.OutputCostPerTokenAbove200kTokens, re.OutputCostPerToken)
		entry.CacheReadCostAbove200k = orDefault(re.CacheReadInputTokenCostAbove200k, re.CacheReadInputTokenCost)
		entry.CacheCreationCostAbove200k = orDefault(re.CacheCreationInputTokenCostAbove200k, re.CacheCreationInputTokenCost)

		c.entries[key] = entry
		c.keys = append(c.keys, key)
	}
	return c, nil
}

func orDefault(v *float64, base float64) float64 {
	if v == nil {
		return base
	}
	return *v
}
