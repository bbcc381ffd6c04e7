package sand

import (
	"errors"
	"fmt"
	"strconv"
)

// Params holds the tunable physics and reaction thresholds of the world.
type Params struct {
	// Gravity is the downward acceleration in cells per second squared.
	Gravity float64 `yaml:"gravity"`
	// MaxSpeed clamps vertical velocity of falling particles, cells per tick.
	MaxSpeed float64 `yaml:"max_speed"`
	// TickDT is the delta used by Step.
	TickDT float64 `yaml:"tick_dt"`

	DisplaceThreshold float64 `yaml:"displace_threshold"`
	SplashWindow      int     `yaml:"splash_window"`
	SplashSpreadX     int     `yaml:"splash_spread_x"`
	SplashLift        float64 `yaml:"splash_lift"`

	SandSlipChance   float64 `yaml:"sand_slip_chance"`
	SaltSlipChance   float64 `yaml:"salt_slip_chance"`
	PowderSinkChance float64 `yaml:"powder_sink_chance"`
	GroundFriction   float64 `yaml:"ground_friction"`

	LiquidSpread int `yaml:"liquid_spread"`
	LavaSpread   int `yaml:"lava_spread"`

	SaltDissolveChance float64 `yaml:"salt_dissolve_chance"`
	AcidCorrodeChance  float64 `yaml:"acid_corrode_chance"`
	AcidConsumeChance  float64 `yaml:"acid_consume_chance"`

	FireSpreadScale  float64 `yaml:"fire_spread_scale"`
	FireRiseChance   float64 `yaml:"fire_rise_chance"`
	FireSmokeChance  float64 `yaml:"fire_smoke_chance"`
	FireEmberChance  float64 `yaml:"fire_ember_chance"`
	EmberIgniteScale float64 `yaml:"ember_ignite_scale"`
	EmberSlipChance  float64 `yaml:"ember_slip_chance"`
	EmberSmokeChance float64 `yaml:"ember_smoke_chance"`
	LavaIgniteScale  float64 `yaml:"lava_ignite_scale"`

	ExplosionRadius int     `yaml:"explosion_radius"`
	ExplosionForce  float64 `yaml:"explosion_force"`

	GasLift             float64 `yaml:"gas_lift"`
	GasMaxSpeed         float64 `yaml:"gas_max_speed"`
	GasDriftChance      float64 `yaml:"gas_drift_chance"`
	GasFadeTime         float64 `yaml:"gas_fade_time"`
	SteamCondenseChance float64 `yaml:"steam_condense_chance"`
}

// Config controls the world dimensions, seed and physics.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 192,
		Seed:   1337,
		Params: DefaultParams(),
	}
}

// DefaultParams returns the standard physics tunables.
func DefaultParams() Params {
	return Params{
		Gravity:  10,
		MaxSpeed: 10,
		TickDT:   1.0 / 60.0,

		DisplaceThreshold: 10,
		SplashWindow:      10,
		SplashSpreadX:     2,
		SplashLift:        4,

		SandSlipChance:   1,
		SaltSlipChance:   0.35,
		PowderSinkChance: 0.6,
		GroundFriction:   0.5,

		LiquidSpread: 4,
		LavaSpread:   1,

		SaltDissolveChance: 0.005,
		AcidCorrodeChance:  0.2,
		AcidConsumeChance:  0.5,

		FireSpreadScale:  1,
		FireRiseChance:   0.5,
		FireSmokeChance:  0.4,
		FireEmberChance:  0.15,
		EmberIgniteScale: 0.5,
		EmberSlipChance:  0.5,
		EmberSmokeChance: 0.5,
		LavaIgniteScale:  0.5,

		ExplosionRadius: 3,
		ExplosionForce:  8,

		GasLift:             6,
		GasMaxSpeed:         2,
		GasDriftChance:      0.4,
		GasFadeTime:         0.5,
		SteamCondenseChance: 0.25,
	}
}

func (p *Params) floatFields() map[string]*float64 {
	return map[string]*float64{
		"gravity":               &p.Gravity,
		"max_speed":             &p.MaxSpeed,
		"tick_dt":               &p.TickDT,
		"displace_threshold":    &p.DisplaceThreshold,
		"splash_lift":           &p.SplashLift,
		"sand_slip_chance":      &p.SandSlipChance,
		"salt_slip_chance":      &p.SaltSlipChance,
		"powder_sink_chance":    &p.PowderSinkChance,
		"ground_friction":       &p.GroundFriction,
		"salt_dissolve_chance":  &p.SaltDissolveChance,
		"acid_corrode_chance":   &p.AcidCorrodeChance,
		"acid_consume_chance":   &p.AcidConsumeChance,
		"fire_spread_scale":     &p.FireSpreadScale,
		"fire_rise_chance":      &p.FireRiseChance,
		"fire_smoke_chance":     &p.FireSmokeChance,
		"fire_ember_chance":     &p.FireEmberChance,
		"ember_ignite_scale":    &p.EmberIgniteScale,
		"ember_slip_chance":     &p.EmberSlipChance,
		"ember_smoke_chance":    &p.EmberSmokeChance,
		"lava_ignite_scale":     &p.LavaIgniteScale,
		"explosion_force":       &p.ExplosionForce,
		"gas_lift":              &p.GasLift,
		"gas_max_speed":         &p.GasMaxSpeed,
		"gas_drift_chance":      &p.GasDriftChance,
		"gas_fade_time":         &p.GasFadeTime,
		"steam_condense_chance": &p.SteamCondenseChance,
	}
}

func (p *Params) intFields() map[string]*int {
	return map[string]*int{
		"splash_window":    &p.SplashWindow,
		"splash_spread_x":  &p.SplashSpreadX,
		"liquid_spread":    &p.LiquidSpread,
		"lava_spread":      &p.LavaSpread,
		"explosion_radius": &p.ExplosionRadius,
	}
}

// Sanitize clamps values into the ranges the rules assume.
func (p *Params) Sanitize() {
	if p.MaxSpeed <= 0 {
		p.MaxSpeed = 1
	}
	if p.TickDT < 0 {
		p.TickDT = 0
	}
	if p.GasMaxSpeed <= 0 {
		p.GasMaxSpeed = 1
	}
	for _, v := range []*int{&p.SplashWindow, &p.SplashSpreadX, &p.LiquidSpread, &p.LavaSpread, &p.ExplosionRadius} {
		if *v < 0 {
			*v = 0
		}
	}
	if p.GroundFriction < 0 {
		p.GroundFriction = 0
	}
	if p.GroundFriction > 1 {
		p.GroundFriction = 1
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs)
// over the defaults. Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	_ = c.Apply(cfg)
	return c
}

// Apply overrides c with the key/value pairs of kv. Keys are w, h, seed and
// the yaml names of Params. Every recognized, parsable value is applied; the
// returned error lists the rest.
func (c *Config) Apply(kv map[string]string) error {
	floats := c.Params.floatFields()
	ints := c.Params.intFields()
	var errs []error
	for key, v := range kv {
		var err error
		switch key {
		case "w":
			err = setPositive(&c.Width, v)
		case "h":
			err = setPositive(&c.Height, v)
		case "seed":
			var parsed int64
			if parsed, err = strconv.ParseInt(v, 10, 64); err == nil {
				c.Seed = parsed
			}
		default:
			if field, ok := floats[key]; ok {
				var parsed float64
				if parsed, err = strconv.ParseFloat(v, 64); err == nil {
					*field = parsed
				}
			} else if field, ok := ints[key]; ok {
				var parsed int
				if parsed, err = strconv.Atoi(v); err == nil {
					*field = parsed
				}
			} else {
				err = errors.New("unknown parameter")
			}
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
		}
	}
	c.Params.Sanitize()
	return errors.Join(errs...)
}

func setPositive(dst *int, v string) error {
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	if parsed <= 0 {
		return errors.New("must be positive")
	}
	*dst = parsed
	return nil
}
