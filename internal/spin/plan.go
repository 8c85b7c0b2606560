package spin

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/squadtools/squad-roulette/internal/model"
)

// Animation timing and geometry. RowHeight is shared with the presentation
// layer so scroll offsets translate directly into pixels.
const (
	MinSpinSeconds = 10.0
	MaxSpinSeconds = 15.0

	// TargetScrollRows is the minimum number of virtual rows every spin
	// scrolls past before settling
	TargetScrollRows = 100

	// BrakingPower is the ease-out exponent; 7 gives the near-instant launch
	// and long decelerating tail of a slot machine
	BrakingPower = 7

	RowHeight = 80.0

	// MaxJitter is the half-width of the random stop offset, in distance
	// units, so repeated spins never stop on pixel-identical positions
	MaxJitter = 30.0

	// SnapDistance ends the spin once the eased tail is this close to the
	// target; the curve approaches 1.0 asymptotically and would otherwise
	// crawl forever
	SnapDistance = 0.5

	// MinLoops is the least number of full passes through the listing,
	// keeping short lists from producing a stubby hop instead of a spin
	MinLoops = 3

	PlanIDPrefix = "spin-"
)

// Plan fixes the outcome and trajectory of one spin. It is created when the
// spin starts and immutable for the spin's lifetime.
type Plan struct {
	ID           string
	Winner       model.ServerRecord
	WinnerIndex  int
	Duration     float64 // seconds, drawn from [MinSpinSeconds, MaxSpinSeconds)
	StartOffset  float64
	TargetOffset float64
}

// NewPlan draws the winner, duration, and stop jitter from rng and computes
// the virtual target row. It returns false for an empty listing.
func NewPlan(servers []model.ServerRecord, rng *rand.Rand) (Plan, bool) {
	if len(servers) == 0 {
		return Plan{}, false
	}

	winnerIndex := rng.Intn(len(servers))
	duration := MinSpinSeconds + rng.Float64()*(MaxSpinSeconds-MinSpinSeconds)
	jitter := -MaxJitter + rng.Float64()*2*MaxJitter

	virtualRow := Loops(len(servers))*len(servers) + winnerIndex

	return Plan{
		ID:           generatePlanID(),
		Winner:       servers[winnerIndex],
		WinnerIndex:  winnerIndex,
		Duration:     duration,
		StartOffset:  0,
		TargetOffset: float64(virtualRow)*RowHeight + jitter,
	}, true
}

// Loops returns the number of full passes through a listing of length n the
// reel makes before stopping: at least MinLoops, and enough that the scroll
// crosses TargetScrollRows virtual rows even for short listings.
func Loops(n int) int {
	loops := (TargetScrollRows + n - 1) / n
	if loops < MinLoops {
		return MinLoops
	}
	return loops
}

// generatePlanID generates a unique plan ID using UUID v7 for better
// uniqueness and time ordering
func generatePlanID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(PlanIDPrefix+"%d", time.Now().UnixNano())
	}
	return PlanIDPrefix + id.String()
}
