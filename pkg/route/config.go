// Package route implements the orthogonal wire router: single-edge planning
// with quality scoring, spanning-tree routing for multi-pin nets, the
// wire-vs-stub fallback classification, and user route overrides.
package route

// Config holds the calibratable routing constants. The defaults are tuned
// empirically against typical 2.54mm-pitch schematics; none of them carry
// semantic meaning beyond "looks right", so they are configuration rather
// than code.
type Config struct {
	// Clearance pads item bodies when building obstacles.
	Clearance float64 `mapstructure:"clearance" json:"clearance"`

	// StubSpacing is the fixed escape distance a route travels away from a
	// pin before its first bend when the exit sides do not allow a direct L.
	StubSpacing float64 `mapstructure:"stub_spacing" json:"stub_spacing"`

	// NudgeStep is how far a mid-segment shifts per attempt to clear an
	// exact overlap with another net's parallel segment.
	NudgeStep float64 `mapstructure:"nudge_step" json:"nudge_step"`

	// MaxNudgeAttempts bounds overlap-clearing shifts per segment.
	MaxNudgeAttempts int `mapstructure:"max_nudge_attempts" json:"max_nudge_attempts"`

	// ParallelGap is the distance under which distinct parallel runs count
	// as close-parallel in quality scoring.
	ParallelGap float64 `mapstructure:"parallel_gap" json:"parallel_gap"`

	// Quality weights. Overlap is weighted heaviest: an overlapping wire
	// reads as a connection that does not exist.
	OverlapWeight  float64 `mapstructure:"overlap_weight" json:"overlap_weight"`
	CrossingWeight float64 `mapstructure:"crossing_weight" json:"crossing_weight"`
	ParallelWeight float64 `mapstructure:"parallel_weight" json:"parallel_weight"`
	LengthWeight   float64 `mapstructure:"length_weight" json:"length_weight"`

	// Fallback thresholds: a 2-pin signal net degrades to labeled stubs
	// when its route exceeds any of these.
	QualityCeiling float64 `mapstructure:"quality_ceiling" json:"quality_ceiling"`
	CrossingLimit  int     `mapstructure:"crossing_limit" json:"crossing_limit"`
	ParallelLimit  int     `mapstructure:"parallel_limit" json:"parallel_limit"`

	// SpanCap is the Manhattan endpoint distance beyond which a signal net
	// degrades; ForceDirectSpan is the distance under which it never does.
	SpanCap         float64 `mapstructure:"span_cap" json:"span_cap"`
	ForceDirectSpan float64 `mapstructure:"force_direct_span" json:"force_direct_span"`

	// MultiPinSpanCap bounds the pin cloud of a 3-5 pin net; larger nets
	// degrade without attempting tree routing.
	MultiPinSpanCap float64 `mapstructure:"multi_pin_span_cap" json:"multi_pin_span_cap"`

	// StubLength is the drawn length of a degraded net's labeled stubs.
	StubLength float64 `mapstructure:"stub_length" json:"stub_length"`
}

// DefaultConfig returns the tuned default constants.
func DefaultConfig() Config {
	return Config{
		Clearance:        1.27,
		StubSpacing:      2.54,
		NudgeStep:        1.27,
		MaxNudgeAttempts: 4,
		ParallelGap:      1.0,
		OverlapWeight:    100,
		CrossingWeight:   10,
		ParallelWeight:   5,
		LengthWeight:     0.1,
		QualityCeiling:   60,
		CrossingLimit:    4,
		ParallelLimit:    3,
		SpanCap:          200,
		ForceDirectSpan:  25.4,
		MultiPinSpanCap:  150,
		StubLength:       5.08,
	}
}
