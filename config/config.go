// Package config loads the effect runtime setup from YAML
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/errors"
	"gopkg.in/yaml.v3"

	"github.com/t-barz/slimeking-sub004/core"
	"github.com/t-barz/slimeking-sub004/effect"
	"github.com/t-barz/slimeking-sub004/parameter"
	"github.com/t-barz/slimeking-sub004/pool"
	"github.com/t-barz/slimeking-sub004/vmath"
)

// ErrInvalidConfig tags every load and validation failure
var ErrInvalidConfig = errors.Named("invalid_config")

// Duration accepts Go duration strings ("250ms") or bare integers as milliseconds
type Duration time.Duration

// UnmarshalYAML parses a scalar duration
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	text := strings.TrimSpace(node.Value)
	if text == "" {
		*d = 0
		return nil
	}
	if ms, err := strconv.Atoi(text); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(text)
	if err != nil {
		return errors.Newf("line %d: invalid duration %q", node.Line, node.Value).Wrap(ErrInvalidConfig)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration in Go notation
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Template describes a data-driven effect template
type Template struct {
	Name     string   `yaml:"name"`
	Parts    []string `yaml:"parts"`
	Emitters int      `yaml:"emitters"`
	Weighted bool     `yaml:"weighted"`
}

// Category is the pool and action setup of one effect category
type Category struct {
	Name            string     `yaml:"name"`
	Template        *Template  `yaml:"template"` // absent disables the category
	Growth          *bool      `yaml:"growth"`   // absent uses the default
	InitialCapacity int        `yaml:"initialCapacity"`
	HardCap         int        `yaml:"hardCap"`
	Cooldown        Duration   `yaml:"cooldown"`
	Duration        Duration   `yaml:"duration"`
	Offset          [2]float64 `yaml:"offset"`
	Cue             string     `yaml:"cue"`
	Weight          float64    `yaml:"weight"`
}

// Config is the root of the runtime configuration
type Config struct {
	Pooling      bool       `yaml:"pooling"`
	TickInterval Duration   `yaml:"tickInterval"`
	Categories   []Category `yaml:"categories"`
}

// Default returns the built-in configuration: pooling on, three attack/impact categories
func Default() Config {
	growth := parameter.DefaultGrowth
	directional := []string{pool.PartFront, pool.PartBack, pool.PartSide}

	return Config{
		Pooling:      true,
		TickInterval: Duration(parameter.TickInterval),
		Categories: []Category{
			{
				Name:            parameter.CategoryBasicAttack,
				Template:        &Template{Name: "slash", Parts: directional, Emitters: 1},
				Growth:          &growth,
				InitialCapacity: parameter.DefaultInitialCapacity,
				HardCap:         parameter.DefaultHardCap,
				Cooldown:        Duration(parameter.BasicAttackCooldown),
				Duration:        Duration(parameter.BasicAttackDuration),
				Offset:          [2]float64{0, parameter.BasicAttackOffsetY},
				Cue:             parameter.CueAttack,
			},
			{
				Name:            parameter.CategorySpecialAttack,
				Template:        &Template{Name: "wave", Parts: directional, Emitters: 2, Weighted: true},
				Growth:          &growth,
				InitialCapacity: parameter.DefaultInitialCapacity / 2,
				HardCap:         parameter.DefaultHardCap,
				Cooldown:        Duration(parameter.SpecialAttackCooldown),
				Duration:        Duration(parameter.SpecialAttackDuration),
				Offset:          [2]float64{parameter.SpecialAttackOffsetX, parameter.SpecialAttackOffsetY},
				Cue:             parameter.CueSpecial,
			},
			{
				Name:            parameter.CategoryImpact,
				Template:        &Template{Name: "spark", Parts: []string{"burst"}, Emitters: 1},
				Growth:          &growth,
				InitialCapacity: parameter.DefaultInitialCapacity,
				HardCap:         parameter.DefaultHardCap,
				Duration:        Duration(parameter.ImpactDuration),
				Cue:             parameter.CueImpact,
			},
		},
	}
}

// Load reads and validates a configuration file, unset fields keep their defaults
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Newf("read config %s: %v", path, err).Wrap(ErrInvalidConfig)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result
// A categories list replaces the default one entirely
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if errors.Is(err, ErrInvalidConfig) {
			return Config{}, err
		}
		return Config{}, errors.Newf("unmarshal config: %v", err).Wrap(ErrInvalidConfig)
	}

	cfg.normalise()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalise() {
	for i := range c.Categories {
		cat := &c.Categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		cat.Cue = strings.TrimSpace(cat.Cue)
		if cat.Growth == nil {
			growth := parameter.DefaultGrowth
			cat.Growth = &growth
		}
		if cat.Template != nil {
			cat.Template.Name = strings.TrimSpace(cat.Template.Name)
		}
	}
}

// Validate performs semantic validation on the configuration
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return errors.New("tickInterval must be > 0").Wrap(ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			return errors.Newf("categories[%d]: name required", i).Wrap(ErrInvalidConfig)
		}
		if seen[cat.Name] {
			return errors.Newf("category %s: duplicate name", cat.Name).Wrap(ErrInvalidConfig)
		}
		seen[cat.Name] = true

		switch {
		case cat.InitialCapacity < 0:
			return errors.Newf("category %s: initialCapacity must be >= 0", cat.Name).Wrap(ErrInvalidConfig)
		case cat.HardCap < 0:
			return errors.Newf("category %s: hardCap must be >= 0", cat.Name).Wrap(ErrInvalidConfig)
		case cat.Cooldown < 0:
			return errors.Newf("category %s: cooldown must be >= 0", cat.Name).Wrap(ErrInvalidConfig)
		case cat.Duration < 0:
			return errors.Newf("category %s: duration must be >= 0", cat.Name).Wrap(ErrInvalidConfig)
		case cat.Weight < 0 || cat.Weight > 1:
			return errors.Newf("category %s: weight must be within [0, 1]", cat.Name).Wrap(ErrInvalidConfig)
		}

		if cat.Template != nil {
			if err := cat.Blueprint().Validate(); err != nil {
				return errors.Newf("category %s: %v", cat.Name, err).Wrap(ErrInvalidConfig)
			}
		}
	}
	return nil
}

// Category returns the named category
func (c Config) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Blueprint converts the template section, the zero Blueprint when absent
func (c Category) Blueprint() pool.Blueprint {
	if c.Template == nil {
		return pool.Blueprint{}
	}
	return pool.Blueprint{
		Label:    c.Template.Name,
		Parts:    append([]string(nil), c.Template.Parts...),
		Emitters: c.Template.Emitters,
		Weighted: c.Template.Weighted,
	}
}

// PoolTemplate returns the template to configure a pool with, nil for a disabled category
func (c Category) PoolTemplate() pool.Template {
	if c.Template == nil {
		return nil
	}
	return c.Blueprint()
}

// GrowthEnabled resolves the growth flag
func (c Category) GrowthEnabled() bool {
	if c.Growth == nil {
		return parameter.DefaultGrowth
	}
	return *c.Growth
}

// Action converts the trigger section
func (c Category) Action() effect.Action {
	return effect.Action{
		Category: core.Category(c.Name),
		Offset:   vmath.V2(c.Offset[0], c.Offset[1]),
		Cue:      c.Cue,
		Cooldown: c.Cooldown.Std(),
		Duration: c.Duration.Std(),
		Weight:   c.Weight,
	}
}
