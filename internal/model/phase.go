package model

// Phase represents the state of the roulette state machine
type Phase string

const (
	// PhaseReady means a listing is loaded and a spin can be requested
	PhaseReady Phase = "Ready"

	// PhaseLoading means a listing fetch is in flight
	PhaseLoading Phase = "Loading"

	// PhaseSpinning means the reveal animation is running
	PhaseSpinning Phase = "Spinning"

	// PhaseFinished means the reel has settled; a winner exists unless the
	// last fetch produced an empty listing
	PhaseFinished Phase = "Finished"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsBusy returns true while a fetch or spin is in progress; new fetch and
// spin requests are rejected in these phases
func (p Phase) IsBusy() bool {
	return p == PhaseLoading || p == PhaseSpinning
}

// IsSettled returns true when the reel is at rest and accepting requests
func (p Phase) IsSettled() bool {
	return p == PhaseReady || p == PhaseFinished
}
