package eq

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/tphakala/go-audio-eq/internal/mathutil"
)

// Parameter is a host-automatable cutoff frequency in Hz.
//
// The value is stored as float64 bits in an atomic word, so a control
// goroutine may Set while the audio goroutine reads with Get.
type Parameter struct {
	id           string
	name         string
	min          float64
	max          float64
	defaultValue float64
	interval     float64
	skew         float64

	value atomic.Uint64
}

func newCutoffParameter(id, name string, defaultValue float64) *Parameter {
	p := &Parameter{
		id:           id,
		name:         name,
		min:          MinCutoffHz,
		max:          MaxCutoffHz,
		defaultValue: defaultValue,
		interval:     cutoffIntervalHz,
		skew:         cutoffSkew,
	}
	p.Reset()
	return p
}

// ID returns the stable identifier used by hosts and state files.
func (p *Parameter) ID() string { return p.id }

// Name returns the display name.
func (p *Parameter) Name() string { return p.name }

// Default returns the default plain value.
func (p *Parameter) Default() float64 { return p.defaultValue }

// Range returns the plain value limits.
func (p *Parameter) Range() (minValue, maxValue float64) { return p.min, p.max }

// Get returns the current plain value in Hz.
func (p *Parameter) Get() float64 {
	return math.Float64frombits(p.value.Load())
}

// Set stores v snapped to the parameter interval and clamped to its range.
// NaN stores the minimum.
func (p *Parameter) Set(v float64) {
	p.value.Store(math.Float64bits(p.constrain(v)))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.Set(p.defaultValue)
}

// Normalized returns the current value mapped to [0, 1] through the skewed
// range: ((v-min)/(max-min))^skew.
func (p *Parameter) Normalized() float64 {
	return p.toNormalized(p.Get())
}

// SetNormalized stores the plain value for a normalized position in [0, 1].
// Positions outside the range are clamped.
func (p *Parameter) SetNormalized(normalized float64) {
	p.Set(p.fromNormalized(normalized))
}

// Format renders the current value for display.
func (p *Parameter) Format() string {
	return strconv.FormatFloat(p.Get(), 'f', 0, 64) + " Hz"
}

// Parse sets the value from its textual form, with or without a unit.
func (p *Parameter) Parse(text string) error {
	var v float64
	if _, err := fmt.Sscanf(text, "%g", &v); err != nil {
		return fmt.Errorf("parse %s: %w", p.id, err)
	}
	p.Set(v)
	return nil
}

// String implements fmt.Stringer.
func (p *Parameter) String() string {
	return fmt.Sprintf("%s: %s", p.name, p.Format())
}

func (p *Parameter) constrain(v float64) float64 {
	return mathutil.Clamp(mathutil.SnapToInterval(v, p.min, p.interval), p.min, p.max)
}

func (p *Parameter) toNormalized(v float64) float64 {
	proportion := mathutil.Clamp((v-p.min)/(p.max-p.min), 0, 1)
	if p.skew == 1 {
		return proportion
	}
	return math.Pow(proportion, p.skew)
}

func (p *Parameter) fromNormalized(normalized float64) float64 {
	proportion := mathutil.Clamp(normalized, 0, 1)
	if p.skew != 1 && proportion > 0 {
		proportion = math.Exp(math.Log(proportion) / p.skew)
	}
	return p.min + (p.max-p.min)*proportion
}

// Params is the equalizer's parameter store: one cutoff per stage.
type Params struct {
	// Lowpass is the cutoff of the low-pass stage.
	Lowpass *Parameter

	// Highpass is the cutoff of the high-pass stage.
	Highpass *Parameter
}

// NewParams returns a store holding the default cutoffs, both filters
// wide open.
func NewParams() *Params {
	return &Params{
		Lowpass:  newCutoffParameter(LowpassCutoffID, lowpassCutoffName, DefaultLowpassCutoffHz),
		Highpass: newCutoffParameter(HighpassCutoffID, highpassCutoffName, DefaultHighpassCutoffHz),
	}
}

// All returns the parameters in host order.
func (ps *Params) All() []*Parameter {
	return []*Parameter{ps.Lowpass, ps.Highpass}
}

// ByID looks up a parameter by identifier.
func (ps *Params) ByID(id string) (*Parameter, bool) {
	for _, p := range ps.All() {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// Reset restores every parameter to its default.
func (ps *Params) Reset() {
	for _, p := range ps.All() {
		p.Reset()
	}
}
