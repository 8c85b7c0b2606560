package audio

// Package audio synthesizes the percussive click heard on every reel row
// crossing and replays it through the system audio device. The waveform is
// generated once at startup; playback is fire-and-forget and tolerates
// overlapping retriggers. A missing audio device degrades to silence.
