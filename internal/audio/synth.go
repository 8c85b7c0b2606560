package audio

import "math/rand"

// Synthesis parameters for the row-crossing click
const (
	SampleRate      = 44100
	ClickDurationMs = 20

	// One-pole low-pass coefficients: smooths white noise into a dull
	// click timbre instead of harsh static
	filterFeedback = 0.85
	filterInput    = 0.15

	clickGain = 3.0
)

// SynthesizeClick generates the click waveform: white noise through a
// one-pole low-pass filter, shaped by a quadratic decay envelope and a fixed
// gain. Pure function of the random source; called once at startup, the
// buffer is replayed on every click.
func SynthesizeClick(rng *rand.Rand, sampleRate, durationMs int) []float32 {
	numSamples := sampleRate * durationMs / 1000
	samples := make([]float32, 0, numSamples)

	last := float32(0)
	for i := 0; i < numSamples; i++ {
		raw := rng.Float32()*2 - 1
		filtered := last*filterFeedback + raw*filterInput
		last = filtered

		// Quadratic decay: front-loaded punch, quick fade.
		decay := 1 - float32(i)/float32(numSamples)
		samples = append(samples, filtered*decay*decay*clickGain)
	}

	return samples
}
