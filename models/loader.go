// Package models loads pattern-model bundles: the pattern-source table and
// the per-type template lists consumed by the engine.
//
// A bundle is a flat mapping from source key to a list of alternative
// fragments, plus one reserved key ("$PATTERNS", legacy alias "patterns")
// holding the bundle's template list. Bundles come either from a directory
// of .json/.jsonc/.yaml/.yml files, one pattern type per file, or from an
// in-memory map keyed by pattern-type name.
package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PatternsKey is the reserved bundle key holding the template list.
const PatternsKey = "$PATTERNS"

// legacyPatternsKey is accepted in place of PatternsKey for old bundles.
const legacyPatternsKey = "patterns"

// PatternType is one named pattern type and its templates, in declaration
// order.
type PatternType struct {
	Name      string
	Templates []string
}

// Config is the loader's output: the merged source table and the ordered
// template set.
type Config struct {
	Sources map[string][]string
	Types   []PatternType
}

// Load reads every model file in dir, in sorted file-name order. The file's
// base name becomes the pattern-type name. Files with unknown extensions are
// skipped.
func Load(dir string) (*Config, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading models directory: %w", err)
	}

	cfg := newConfig()
	origins := make(map[string]string) // source key -> defining file
	seen := make(map[string]string)    // type name -> file
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if !knownExt(ext) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading model %s: %w", path, err)
		}
		bundle, err := decodeBundle(data, ext)
		if err != nil {
			return nil, fmt.Errorf("parsing model %s: %w", path, err)
		}
		typeName := strings.TrimSuffix(name, ext)
		if prev, ok := seen[typeName]; ok {
			return nil, fmt.Errorf("pattern type %q defined by both %s and %s", typeName, prev, name)
		}
		seen[typeName] = name
		if err := cfg.merge(typeName, name, bundle, origins); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// FromMap builds a Config from an in-memory model mapping. Type names are
// processed in sorted order so that registry construction is deterministic.
func FromMap(m map[string]map[string][]string) (*Config, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	cfg := newConfig()
	origins := make(map[string]string)
	for _, name := range names {
		if err := cfg.merge(name, name, m[name], origins); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newConfig() *Config {
	return &Config{Sources: make(map[string][]string)}
}

// merge folds one bundle into the config. origin names the bundle in
// diagnostics (the file name, or the type name for in-memory input).
func (c *Config) merge(typeName, origin string, bundle map[string][]string, origins map[string]string) error {
	templates, ok := bundle[PatternsKey]
	if legacy, hasLegacy := bundle[legacyPatternsKey]; hasLegacy {
		if ok {
			return fmt.Errorf("model %s defines both %q and %q", origin, PatternsKey, legacyPatternsKey)
		}
		templates, ok = legacy, true
	}

	keys := make([]string, 0, len(bundle))
	for key := range bundle {
		if key == PatternsKey || key == legacyPatternsKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if prev, dup := origins[key]; dup {
			return &DuplicateKeyError{Key: key, Origin: origin, Previous: prev}
		}
		origins[key] = origin
		c.Sources[key] = bundle[key]
	}

	// A bundle without templates contributes shared sources only.
	if ok {
		c.Types = append(c.Types, PatternType{Name: typeName, Templates: templates})
	}
	return nil
}

func knownExt(ext string) bool {
	switch ext {
	case ".json", ".jsonc", ".yaml", ".yml":
		return true
	}
	return false
}

func decodeBundle(data []byte, ext string) (map[string][]string, error) {
	bundle := make(map[string][]string)
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, err
		}
	case ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &bundle); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}
