package sand

import (
	"strconv"

	"sandsim/internal/core"
)

// Parameters returns the current tunables grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				floatParam("gravity", "Gravity", params.Gravity),
				floatParam("max_speed", "Max speed", params.MaxSpeed),
				floatParam("tick_dt", "Tick delta", params.TickDT),
				floatParam("ground_friction", "Ground friction", params.GroundFriction),
			},
		},
		{
			Name:    "Splash",
			Summary: "Fast powders punch through liquid, throwing it upward.",
			Params: []core.Parameter{
				floatParam("displace_threshold", "Displace threshold", params.DisplaceThreshold),
				intParam("splash_window", "Splash window", params.SplashWindow),
				intParam("splash_spread_x", "Splash lateral spread", params.SplashSpreadX),
				floatParam("splash_lift", "Splash lift", params.SplashLift),
			},
		},
		{
			Name: "Powders",
			Params: []core.Parameter{
				floatParam("sand_slip_chance", "Sand slip chance", params.SandSlipChance),
				floatParam("salt_slip_chance", "Salt slip chance", params.SaltSlipChance),
				floatParam("powder_sink_chance", "Powder sink chance", params.PowderSinkChance),
				floatParam("salt_dissolve_chance", "Salt dissolve chance", params.SaltDissolveChance),
			},
		},
		{
			Name: "Liquids",
			Params: []core.Parameter{
				intParam("liquid_spread", "Liquid spread", params.LiquidSpread),
				intParam("lava_spread", "Lava spread", params.LavaSpread),
				floatParam("acid_corrode_chance", "Acid corrode chance", params.AcidCorrodeChance),
				floatParam("acid_consume_chance", "Acid consume chance", params.AcidConsumeChance),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				floatParam("fire_spread_scale", "Fire spread scale", params.FireSpreadScale),
				floatParam("fire_rise_chance", "Fire rise chance", params.FireRiseChance),
				floatParam("fire_smoke_chance", "Fire smoke chance", params.FireSmokeChance),
				floatParam("fire_ember_chance", "Fire ember chance", params.FireEmberChance),
				floatParam("ember_ignite_scale", "Ember ignite scale", params.EmberIgniteScale),
				floatParam("ember_slip_chance", "Ember slip chance", params.EmberSlipChance),
				floatParam("ember_smoke_chance", "Ember smoke chance", params.EmberSmokeChance),
				floatParam("lava_ignite_scale", "Lava ignite scale", params.LavaIgniteScale),
				intParam("explosion_radius", "Explosion radius", params.ExplosionRadius),
				floatParam("explosion_force", "Explosion force", params.ExplosionForce),
			},
		},
		{
			Name: "Gases",
			Params: []core.Parameter{
				floatParam("gas_lift", "Gas lift", params.GasLift),
				floatParam("gas_max_speed", "Gas max speed", params.GasMaxSpeed),
				floatParam("gas_drift_chance", "Gas drift chance", params.GasDriftChance),
				floatParam("gas_fade_time", "Gas fade time", params.GasFadeTime),
				floatParam("steam_condense_chance", "Steam condense chance", params.SteamCondenseChance),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// hudControls lists the parameters adjustable at runtime. Bounds double as the
// clamping range of the setters.
var hudControls = []core.ParameterControl{
	floatControl("gravity", "Gravity", 1, 0, 100),
	floatControl("max_speed", "Max speed", 1, 1, 40),
	floatControl("displace_threshold", "Displace threshold", 0.5, 0, 40),
	intControl("splash_window", "Splash window", 1, 0, 32),
	floatControl("sand_slip_chance", "Sand slip chance", 0.05, 0, 1),
	floatControl("powder_sink_chance", "Powder sink chance", 0.05, 0, 1),
	intControl("liquid_spread", "Liquid spread", 1, 0, 16),
	floatControl("fire_spread_scale", "Fire spread scale", 0.1, 0, 20),
	intControl("explosion_radius", "Explosion radius", 1, 0, 12),
	floatControl("gas_lift", "Gas lift", 0.5, 0, 40),
	floatControl("steam_condense_chance", "Steam condense", 0.05, 0, 1),
}

// ParameterControls lists the HUD-adjustable tunables.
func (w *World) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(hudControls))
	copy(out, hudControls)
	return out
}

// SetFloatParameter updates a float tunable by key, clamping it to the
// control's bounds when it has any. It reports whether key was recognized.
func (w *World) SetFloatParameter(key string, value float64) bool {
	field, ok := w.cfg.Params.floatFields()[key]
	if !ok {
		return false
	}
	if ctrl, ok := controlFor(key); ok {
		value = clampControl(ctrl, value)
	}
	*field = value
	w.cfg.Params.Sanitize()
	return true
}

// SetIntParameter updates an integer tunable by key, clamping it to the
// control's bounds when it has any. It reports whether key was recognized.
func (w *World) SetIntParameter(key string, value int) bool {
	field, ok := w.cfg.Params.intFields()[key]
	if !ok {
		return false
	}
	if ctrl, ok := controlFor(key); ok {
		value = int(clampControl(ctrl, float64(value)))
	}
	*field = value
	w.cfg.Params.Sanitize()
	return true
}

func controlFor(key string) (core.ParameterControl, bool) {
	for _, ctrl := range hudControls {
		if ctrl.Key == key {
			return ctrl, true
		}
	}
	return core.ParameterControl{}, false
}

func clampControl(ctrl core.ParameterControl, value float64) float64 {
	if ctrl.HasMin && value < ctrl.Min {
		value = ctrl.Min
	}
	if ctrl.HasMax && value > ctrl.Max {
		value = ctrl.Max
	}
	return value
}

func floatControl(key, label string, step, lo, hi float64) core.ParameterControl {
	return core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeFloat,
		Step: step, Min: lo, Max: hi, HasMin: true, HasMax: true,
	}
}

func intControl(key, label string, step, lo, hi float64) core.ParameterControl {
	return core.ParameterControl{
		Key: key, Label: label, Type: core.ParamTypeInt,
		Step: step, Min: lo, Max: hi, HasMin: true, HasMax: true,
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
