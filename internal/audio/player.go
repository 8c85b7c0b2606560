package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player replays one precomputed waveform through the audio device. A nil
// *Player is safe to use; Play becomes a no-op, which is how the app runs
// when no audio device is available.
type Player struct {
	ctx      *oto.Context
	pcm      []byte
	duration time.Duration
}

// NewPlayer opens the default audio device and prepares the waveform for
// replay. When the device cannot be opened the error is returned and the
// caller keeps running without sound.
func NewPlayer(samples []float32, sampleRate int) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{
		ctx:      ctx,
		pcm:      encodePCM(samples),
		duration: time.Duration(len(samples)) * time.Second / time.Duration(sampleRate),
	}, nil
}

// Play replays the click, fire-and-forget. Each call gets its own device
// player so rapid retriggers overlap instead of cutting each other off.
func (p *Player) Play() {
	if p == nil {
		return
	}

	player := p.ctx.NewPlayer(bytes.NewReader(p.pcm))
	player.Play()

	go func() {
		// The player must outlive the waveform before it is released.
		time.Sleep(p.duration + 50*time.Millisecond)
		player.Close()
	}()
}

// encodePCM converts float32 samples to the little-endian byte layout oto
// consumes. Amplitudes beyond [-1, 1) are passed through; the device clips.
func encodePCM(samples []float32) []byte {
	buf := make([]byte, 4*len(samples))
	for i, sample := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(sample))
	}
	return buf
}
