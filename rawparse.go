package main

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// catalogOverride is one parsed "actions" element before it is applied.
type catalogOverride struct {
	action Action
	entry  CatalogEntry
}

// parseCatalogJSON applies the overrides in dataJSON on top of a copy of
// base. Fields missing from an element keep the base entry's value.
//
//	{"actions": [{"action": "BasicSynthesis", "name": "Basic Synthesis",
//	  "cp": 0, "durability": 10, "progress": 120, "quality": 0, "combo": ""}]}
func parseCatalogJSON(dataJSON string, base *Catalog) (*Catalog, error) {
	if !gjson.Valid(dataJSON) {
		return nil, fmt.Errorf("catalog is not valid JSON")
	}
	actions := gjson.Get(dataJSON, "actions")
	if !actions.Exists() {
		return base.clone(), nil
	}
	if !actions.IsArray() {
		return nil, fmt.Errorf("catalog: \"actions\" must be an array")
	}

	var (
		overrides []catalogOverride
		parseErr  error
	)
	actions.ForEach(func(key, v gjson.Result) bool {
		o, err := parseCatalogOverride(v, base)
		if err != nil {
			parseErr = fmt.Errorf("catalog: actions[%d]: %w", key.Int(), err)
			return false
		}
		overrides = append(overrides, o)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	cat := base.clone()
	for _, o := range overrides {
		cat.Set(o.action, o.entry)
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return cat, nil
}

func parseCatalogOverride(v gjson.Result, base *Catalog) (catalogOverride, error) {
	ident := v.Get("action").String()
	a, ok := parseAction(ident)
	if !ok || a == ActionNone || a == ActionOpening {
		return catalogOverride{}, fmt.Errorf("unknown action %q", ident)
	}

	e := base.Entry(a)
	if name := v.Get("name"); name.Exists() {
		e.Name = name.String()
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"cp", &e.CPCost},
		{"durability", &e.DurabilityCost},
		{"progress", &e.ProgressPct},
		{"quality", &e.QualityPct},
	}
	for _, f := range ints {
		r := v.Get(f.key)
		if !r.Exists() {
			continue
		}
		if r.Type != gjson.Number || r.Int() < 0 || float64(r.Int()) != r.Num {
			return catalogOverride{}, fmt.Errorf("%s: %q must be a non-negative integer", ident, f.key)
		}
		*f.dst = int(r.Int())
	}
	if combo := v.Get("combo"); combo.Exists() {
		switch s := combo.String(); s {
		case "":
			e.Combo = ActionNone
		default:
			c, ok := parseAction(s)
			if !ok {
				return catalogOverride{}, fmt.Errorf("%s: unknown combo predecessor %q", ident, s)
			}
			e.Combo = c
		}
	}
	return catalogOverride{action: a, entry: e}, nil
}

// LoadCatalog reads catalog overrides from path over the reference table.
// An empty path returns the reference table.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cat, err := parseCatalogJSON(string(raw), DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}
