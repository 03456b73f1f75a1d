package eq

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2   // Stereo channel count (used by interleave functions)
	maxChannels    = 256 // Maximum supported channel count
)

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// Cutoff parameter layout.
const (
	// MinCutoffHz is the lowest settable cutoff of either filter.
	MinCutoffHz = 10.0

	// MaxCutoffHz is the highest settable cutoff of either filter.
	MaxCutoffHz = 20000.0

	// DefaultLowpassCutoffHz leaves the low-pass stage wide open.
	DefaultLowpassCutoffHz = 20000.0

	// DefaultHighpassCutoffHz leaves the high-pass stage wide open.
	DefaultHighpassCutoffHz = 10.0

	cutoffIntervalHz = 1.0 // Snapping interval of plain values
	cutoffSkew       = 0.5 // Skew of the normalized mapping
)

// Parameter identifiers.
const (
	LowpassCutoffID  = "lpCutoff"
	HighpassCutoffID = "hpCutoff"

	lowpassCutoffName  = "Low Pass Cutoff Frequency"
	highpassCutoffName = "High Pass Cutoff Frequency"
)

// Buffer and state constants
const (
	defaultMaxBlockSize = 4096 // Used when Config.MaxBlockSize is 0
	stateSize           = 8    // Two little-endian float32 cutoffs
	float32Size         = 4
	tailStages          = 2 // Both stages contribute order-1 samples of ring-out
)
