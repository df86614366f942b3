package wisp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the engine configuration surface. Files may be TOML or YAML.
//
//	seed = 7
//
//	[profiles.smoke]
//	drift_range = [-40.0, 40.0]
//	stagger_order = "random"
//
//	[bindings]
//	hero-title = "smoke"
type Config struct {
	// Seed makes randomized output reproducible when non-zero.
	Seed  uint64 `toml:"seed" yaml:"seed"`
	Debug bool   `toml:"debug" yaml:"debug"`

	// Profiles overrides or extends the built-in jitter and smoke profiles.
	Profiles map[string]ProfileConfig `toml:"profiles" yaml:"profiles"`
	Cursor   CursorConfig             `toml:"cursor" yaml:"cursor"`
	// Bindings maps container names to profile names.
	Bindings map[string]string `toml:"bindings" yaml:"bindings"`
}

// ProfileConfig is the file form of a Profile. Unset fields inherit from
// the profile named by Extends, or from the built-in of the same name, or
// from jitter.
type ProfileConfig struct {
	Extends       string      `toml:"extends" yaml:"extends"`
	DriftRange    *[2]float64 `toml:"drift_range" yaml:"drift_range"`
	VerticalRange *[2]float64 `toml:"vertical_range" yaml:"vertical_range"`
	VerticalBias  *float64    `toml:"vertical_bias" yaml:"vertical_bias"`
	RotationRange *[2]float64 `toml:"rotation_range" yaml:"rotation_range"`
	ScaleRange    *[2]float64 `toml:"scale_range" yaml:"scale_range"`
	OpacityRange  *[2]float64 `toml:"opacity_range" yaml:"opacity_range"`
	BlurRange     *[2]float64 `toml:"blur_range" yaml:"blur_range"`
	StaggerAmount *float64    `toml:"stagger_amount" yaml:"stagger_amount"`
	StaggerOrder  string      `toml:"stagger_order" yaml:"stagger_order"`
	EnterEasing   string      `toml:"enter_easing" yaml:"enter_easing"`
	ExitEasing    string      `toml:"exit_easing" yaml:"exit_easing"`
	EnterDuration *float64    `toml:"enter_duration" yaml:"enter_duration"`
	ExitDuration  *float64    `toml:"exit_duration" yaml:"exit_duration"`
}

// DefaultConfig returns a configuration with the built-in profiles, the
// default cursor tuning and the headline bound to smoke.
func DefaultConfig() Config {
	return Config{
		Profiles: map[string]ProfileConfig{},
		Cursor:   DefaultCursorConfig(),
		Bindings: map[string]string{ContainerHeadline: ProfileSmoke},
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over the
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format ("toml", "yaml" or "yml")
// over the defaults.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case "toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse toml config: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return Config{}, &ConfigError{Field: keys[0].String(), Reason: "unknown key"}
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("parse config: unsupported format %q", format)
	}
	return cfg, nil
}

// Validate compiles every profile and checks bindings and cursor tuning.
func (c *Config) Validate() error {
	_, err := c.CompileProfiles()
	return err
}

// CompileProfiles resolves built-in and configured profiles into validated
// Profiles keyed by name.
func (c *Config) CompileProfiles() (map[string]*Profile, error) {
	builtins := map[string]Profile{
		ProfileJitter: JitterProfile(),
		ProfileSmoke:  SmokeProfile(),
	}
	out := make(map[string]*Profile, len(builtins)+len(c.Profiles))
	for name, p := range builtins {
		p := p
		out[name] = &p
	}

	// Deterministic order so errors are stable.
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p, err := c.resolveProfile(name, builtins, 0)
		if err != nil {
			return nil, err
		}
		out[name] = p
	}

	for _, p := range out {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	for container, name := range c.Bindings {
		if _, ok := out[name]; !ok {
			return nil, &ConfigError{Field: "bindings." + container, Reason: "unknown profile " + quote(name)}
		}
	}
	if err := c.Cursor.validate(); err != nil {
		return nil, err
	}
	return out, nil
}

const maxExtendsDepth = 8

func (c *Config) resolveProfile(name string, builtins map[string]Profile, depth int) (*Profile, error) {
	if depth > maxExtendsDepth {
		return nil, &ConfigError{Profile: name, Field: "extends", Reason: "cycle or chain too deep"}
	}
	pc, ok := c.Profiles[name]
	if !ok {
		if b, ok := builtins[name]; ok {
			return &b, nil
		}
		return nil, &ConfigError{Profile: name, Field: "extends", Reason: "unknown profile"}
	}

	var base *Profile
	switch {
	case pc.Extends != "" && pc.Extends != name:
		b, err := c.resolveProfile(pc.Extends, builtins, depth+1)
		if err != nil {
			return nil, err
		}
		base = b
	default:
		b, ok := builtins[name]
		if !ok {
			b = builtins[ProfileJitter]
		}
		base = &b
	}

	p := *base
	p.Name = name
	if err := pc.apply(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (pc *ProfileConfig) apply(p *Profile) error {
	setRange := func(dst *Range, src *[2]float64) {
		if src != nil {
			*dst = Range{src[0], src[1]}
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setRange(&p.DriftX, pc.DriftRange)
	setRange(&p.DriftY, pc.VerticalRange)
	setRange(&p.Rotation, pc.RotationRange)
	setRange(&p.Scale, pc.ScaleRange)
	setRange(&p.Opacity, pc.OpacityRange)
	setRange(&p.Blur, pc.BlurRange)
	setFloat(&p.VerticalBias, pc.VerticalBias)
	setFloat(&p.Stagger, pc.StaggerAmount)
	setFloat(&p.EnterDuration, pc.EnterDuration)
	setFloat(&p.ExitDuration, pc.ExitDuration)
	if pc.StaggerOrder != "" {
		order, err := ParseStaggerOrder(pc.StaggerOrder)
		if err != nil {
			return withProfile(err, p.Name)
		}
		p.Order = order
	}
	if pc.EnterEasing != "" {
		p.EnterEase = pc.EnterEasing
	}
	if pc.ExitEasing != "" {
		p.ExitEase = pc.ExitEasing
	}
	return nil
}
