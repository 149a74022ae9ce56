package model

import (
	"fmt"
	"time"
)

// MixStrategy selects how normalized result sets from multiple sources are
// merged into one ordered list.
type MixStrategy string

const (
	MixRoundRobin     MixStrategy = "round-robin"
	MixSourcePriority MixStrategy = "source-priority"
	MixRelevance      MixStrategy = "relevance"
)

// AggregationConfig is the runtime policy consumed by the aggregator. It is
// held as a single instance and replaced wholesale on update, never mutated
// field by field.
type AggregationConfig struct {
	Sources SourcesConfig `json:"sources"`
	Limits  LimitsConfig  `json:"limits"`
	Caching CachingConfig `json:"caching"`
	Mixing  MixingConfig  `json:"mixing"`
}

type SourcesConfig struct {
	Local    bool `json:"local"`
	External bool `json:"external"`
}

type LimitsConfig struct {
	Local    int `json:"local"`
	External int `json:"external"`
	Total    int `json:"total"`
}

type CachingConfig struct {
	Enabled bool          `json:"enabled"`
	TTL     time.Duration `json:"ttl"`
}

type MixingConfig struct {
	Strategy       MixStrategy `json:"strategy"`
	SourcePriority []Source    `json:"sourcePriority"`
}

// DefaultAggregationConfig returns the policy used when no overrides apply.
func DefaultAggregationConfig() AggregationConfig {
	return AggregationConfig{
		Sources: SourcesConfig{Local: true, External: true},
		Limits:  LimitsConfig{Local: 25, External: 25, Total: 50},
		Caching: CachingConfig{Enabled: true, TTL: 5 * time.Minute},
		Mixing: MixingConfig{
			Strategy:       MixRoundRobin,
			SourcePriority: []Source{SourceLocal, SourceExternal},
		},
	}
}

// ConfigPatch is a partial AggregationConfig update. Nil fields leave the
// current value untouched; the merge is applied to a copy and swapped in
// atomically once validated.
type ConfigPatch struct {
	Sources *struct {
		Local    *bool `json:"local"`
		External *bool `json:"external"`
	} `json:"sources"`
	Limits *struct {
		Local    *int `json:"local"`
		External *int `json:"external"`
		Total    *int `json:"total"`
	} `json:"limits"`
	Caching *struct {
		Enabled *bool          `json:"enabled"`
		TTL     *time.Duration `json:"ttl"`
	} `json:"caching"`
	Mixing *struct {
		Strategy       *MixStrategy `json:"strategy"`
		SourcePriority []Source     `json:"sourcePriority"`
	} `json:"mixing"`
}

// Merge returns a copy of cfg with the patch applied. The receiver and cfg
// are left unchanged.
func (p *ConfigPatch) Merge(cfg AggregationConfig) AggregationConfig {
	out := cfg
	if p.Sources != nil {
		if p.Sources.Local != nil {
			out.Sources.Local = *p.Sources.Local
		}
		if p.Sources.External != nil {
			out.Sources.External = *p.Sources.External
		}
	}
	if p.Limits != nil {
		if p.Limits.Local != nil {
			out.Limits.Local = *p.Limits.Local
		}
		if p.Limits.External != nil {
			out.Limits.External = *p.Limits.External
		}
		if p.Limits.Total != nil {
			out.Limits.Total = *p.Limits.Total
		}
	}
	if p.Caching != nil {
		if p.Caching.Enabled != nil {
			out.Caching.Enabled = *p.Caching.Enabled
		}
		if p.Caching.TTL != nil {
			out.Caching.TTL = *p.Caching.TTL
		}
	}
	if p.Mixing != nil {
		if p.Mixing.Strategy != nil {
			out.Mixing.Strategy = *p.Mixing.Strategy
		}
		if p.Mixing.SourcePriority != nil {
			out.Mixing.SourcePriority = append([]Source(nil), p.Mixing.SourcePriority...)
		}
	}
	return out
}

// Validate rejects configs that would make the aggregator misbehave. A failed
// update must leave the previous config in effect, so callers validate the
// merged copy before swapping it in.
func (c *AggregationConfig) Validate() error {
	if c.Limits.Local < 0 || c.Limits.External < 0 || c.Limits.Total < 0 {
		return fmt.Errorf("limits must be non-negative")
	}
	if c.Caching.TTL < 0 {
		return fmt.Errorf("cache ttl must be non-negative")
	}
	switch c.Mixing.Strategy {
	case MixRoundRobin, MixSourcePriority, MixRelevance:
	default:
		return fmt.Errorf("unknown mixing strategy %q", c.Mixing.Strategy)
	}
	for _, s := range c.Mixing.SourcePriority {
		if s != SourceLocal && s != SourceExternal {
			return fmt.Errorf("unknown source %q in priority order", s)
		}
	}
	return nil
}
