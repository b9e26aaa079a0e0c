package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// policyFile mirrors the TOML selection policy file. Absent keys keep the
// value of the base policy.
//
//	name = "diversity"
//	per_chunk = 3
//	threshold = 0.2
//
//	[quota]
//	default = 0.5
//	min_score = 0.35
//	fallback = true
//	fallback_min_score = 0.25
//	exempt = ["Guide"]
//
//	[quota.per_category]
//	Blog = 0.4
type policyFile struct {
	Name      *string     `toml:"name"`
	PerChunk  *int        `toml:"per_chunk"`
	Threshold *float64    `toml:"threshold"`
	Quota     *quotaTable `toml:"quota"`
}

type quotaTable struct {
	Disabled         bool               `toml:"disabled"`
	PerCategory      map[string]float64 `toml:"per_category"`
	Default          *float64           `toml:"default"`
	Exempt           []string           `toml:"exempt"`
	MinScore         *float64           `toml:"min_score"`
	Fallback         *bool              `toml:"fallback"`
	FallbackMinScore *float64           `toml:"fallback_min_score"`
}

// LoadPolicyFile reads a TOML policy file and applies it on top of base.
func LoadPolicyFile(path string, base suggest.SelectionPolicy) (suggest.SelectionPolicy, error) {
	f, err := os.Open(path)
	if err != nil {
		return base, fmt.Errorf("failed to open policy file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var pf policyFile
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&pf); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return base, fmt.Errorf("policy file %s: %s", path, strict.String())
		}
		return base, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}

	return pf.apply(base)
}

func (pf policyFile) apply(base suggest.SelectionPolicy) (suggest.SelectionPolicy, error) {
	p := base
	if pf.Name != nil {
		named, err := suggest.PolicyByName(*pf.Name)
		if err != nil {
			return base, err
		}
		p = named
	}
	if pf.PerChunk != nil {
		if *pf.PerChunk < 1 {
			return base, fmt.Errorf("per_chunk must be at least 1")
		}
		p.PerChunk = *pf.PerChunk
	}
	if pf.Threshold != nil {
		p.Threshold = *pf.Threshold
	}

	if pf.Quota == nil {
		return p, nil
	}
	if pf.Quota.Disabled {
		p.Quota = nil
		return p, nil
	}

	// Copy so the built-in policy's map is never shared.
	q := suggest.QuotaPolicy{PerCategory: map[suggest.Category]float64{}}
	if p.Quota != nil {
		q = *p.Quota
		q.PerCategory = make(map[suggest.Category]float64, len(p.Quota.PerCategory))
		for c, v := range p.Quota.PerCategory {
			q.PerCategory[c] = v
		}
	}

	for name, v := range pf.Quota.PerCategory {
		c, ok := suggest.ParseCategory(name)
		if !ok {
			return base, fmt.Errorf("unknown category %q in quota.per_category", name)
		}
		if v <= 0 || v > 1 {
			return base, fmt.Errorf("quota for %s must be in (0, 1]", c)
		}
		q.PerCategory[c] = v
	}
	if pf.Quota.Default != nil {
		q.Default = *pf.Quota.Default
	}
	if pf.Quota.Exempt != nil {
		q.Exempt = q.Exempt[:0:0]
		for _, name := range pf.Quota.Exempt {
			c, ok := suggest.ParseCategory(name)
			if !ok {
				return base, fmt.Errorf("unknown category %q in quota.exempt", name)
			}
			q.Exempt = append(q.Exempt, c)
		}
	}
	if pf.Quota.MinScore != nil {
		q.MinScore = *pf.Quota.MinScore
	}
	if pf.Quota.Fallback != nil {
		q.Fallback = *pf.Quota.Fallback
	}
	if pf.Quota.FallbackMinScore != nil {
		q.FallbackMinScore = *pf.Quota.FallbackMinScore
	}
	if q.Default <= 0 || q.Default > 1 {
		return base, fmt.Errorf("quota.default must be in (0, 1]")
	}

	p.Quota = &q
	return p, nil
}
