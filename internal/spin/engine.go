package spin

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/squadtools/squad-roulette/internal/model"
)

// Fetcher delivers eligible servers for a player-count range. Implementations
// may block for several seconds; the engine always calls them off the tick
// path, on a worker goroutine.
type Fetcher interface {
	FetchServers(ctx context.Context, minPlayers, maxPlayers int) []model.ServerRecord
}

// Engine is the roulette state machine. It owns the current listing, the
// active spin plan, and the animation state, and is advanced once per frame
// by Tick. At most one fetch is in flight at a time; its result arrives
// through a capacity-1 channel polled non-blockingly each tick.
type Engine struct {
	mu      sync.Mutex
	fetcher Fetcher
	rng     *rand.Rand
	now     func() time.Time

	phase   model.Phase
	servers []model.ServerRecord
	stale   bool

	plan           Plan
	hasPlan        bool
	spinStart      time.Time
	currentOffset  float64
	lastCrossedRow int

	results chan []model.ServerRecord

	onClick func() // fired once per virtual row crossed
}

// Snapshot is the render-facing view of the engine, taken once per frame
type Snapshot struct {
	Phase     model.Phase
	Offset    float64
	Servers   []model.ServerRecord
	Stale     bool
	PlanID    string // empty until a spin has started
	Winner    model.ServerRecord
	HasWinner bool
	CanSpin   bool
}

// NewEngine creates an engine around the given fetcher. A nil rng falls back
// to a time-seeded source; tests inject a fixed seed for reproducible spins.
func NewEngine(fetcher Fetcher, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		fetcher:        fetcher,
		rng:            rng,
		now:            time.Now,
		phase:          model.PhaseReady,
		stale:          true, // no listing yet; a refresh is required first
		lastCrossedRow: -1,
		results:        make(chan []model.ServerRecord, 1),
	}
}

// SetClickCallback sets the callback fired on every virtual row crossing
func (e *Engine) SetClickCallback(callback func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onClick = callback
}

// SetClock overrides the wall clock, for tests
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// StartFetch begins a background listing fetch for the given player range.
// It is rejected while a fetch or spin is in progress. The current listing
// and winner are cleared immediately.
func (e *Engine) StartFetch(minPlayers, maxPlayers int) bool {
	e.mu.Lock()
	if e.phase.IsBusy() {
		e.mu.Unlock()
		return false
	}
	e.phase = model.PhaseLoading
	e.servers = nil
	e.hasPlan = false
	e.currentOffset = 0
	// The fetch now in flight matches the current filter. Staleness set
	// after this point (a filter change mid-fetch) survives delivery.
	e.stale = false
	e.mu.Unlock()

	go func() {
		servers := e.fetcher.FetchServers(context.Background(), minPlayers, maxPlayers)
		e.results <- servers
	}()
	return true
}

// Spin selects a winner and starts the reveal animation. It is rejected
// while busy, when the listing is empty, or when the listing is stale.
func (e *Engine) Spin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase.IsBusy() || e.stale || len(e.servers) == 0 {
		return false
	}

	plan, ok := NewPlan(e.servers, e.rng)
	if !ok {
		return false
	}

	e.plan = plan
	e.hasPlan = true
	e.spinStart = e.now()
	e.currentOffset = plan.StartOffset
	e.lastCrossedRow = -1
	e.phase = model.PhaseSpinning
	log.Printf("Spin %s started: %d servers, %.1fs", plan.ID, len(e.servers), plan.Duration)
	return true
}

// MarkStale flags the listing as no longer matching the filter parameters.
// Spinning is disabled until a fresh fetch completes. An already in-flight
// fetch result is still applied when it arrives.
func (e *Engine) MarkStale() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stale = true
}

// Tick advances the state machine by one frame: it polls for a completed
// fetch, advances the scroll while spinning, and fires the click callback
// once per virtual row crossed. It never blocks and is a no-op once settled.
func (e *Engine) Tick() {
	e.pollFetch()

	e.mu.Lock()
	if e.phase != model.PhaseSpinning {
		e.mu.Unlock()
		return
	}

	elapsed := e.now().Sub(e.spinStart).Seconds()
	t := elapsed / e.plan.Duration
	if t >= 1 {
		e.currentOffset = e.plan.TargetOffset
		e.phase = model.PhaseFinished
		e.mu.Unlock()
		return
	}

	offset := e.plan.StartOffset + (e.plan.TargetOffset-e.plan.StartOffset)*EaseOut(t)
	if math.Abs(e.plan.TargetOffset-offset) < SnapDistance {
		e.currentOffset = e.plan.TargetOffset
		e.phase = model.PhaseFinished
		e.mu.Unlock()
		return
	}
	e.currentOffset = offset

	// A slow frame can cross several row boundaries at once; fire one click
	// per boundary so total click count is independent of tick granularity.
	row := virtualRow(offset)
	crossed := 0
	if row > e.lastCrossedRow {
		crossed = row - e.lastCrossedRow
		e.lastCrossedRow = row
	}
	callback := e.onClick
	e.mu.Unlock()

	if callback != nil {
		for i := 0; i < crossed; i++ {
			callback()
		}
	}
}

// Snapshot returns the current render state. The servers slice is shared but
// only ever replaced wholesale, never mutated in place.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := Snapshot{
		Phase:   e.phase,
		Offset:  e.currentOffset,
		Servers: e.servers,
		Stale:   e.stale,
	}
	if e.hasPlan {
		snapshot.PlanID = e.plan.ID
	}
	if e.hasPlan && e.phase == model.PhaseFinished {
		snapshot.Winner = e.plan.Winner
		snapshot.HasWinner = true
	}
	snapshot.CanSpin = !e.phase.IsBusy() && !e.stale && len(e.servers) > 0
	return snapshot
}

// pollFetch applies a completed fetch result, if one is pending. The listing
// is replaced atomically; an empty result settles into Finished rather than
// Ready so the UI can message "nothing matched".
func (e *Engine) pollFetch() {
	select {
	case servers := <-e.results:
		e.mu.Lock()
		e.servers = servers
		if e.phase == model.PhaseLoading {
			if len(servers) == 0 {
				e.phase = model.PhaseFinished
			} else {
				e.phase = model.PhaseReady
			}
		}
		e.mu.Unlock()
	default:
	}
}

// EaseOut maps normalized elapsed time to normalized scroll progress with a
// BrakingPower-th power ease-out: very fast initial motion, long
// decelerating tail.
func EaseOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(1-t, BrakingPower)
}

// virtualRow returns the index of the row currently under the viewport
// marker; the half-row bias flips the index at row centers rather than
// edges, which is where the click belongs.
func virtualRow(offset float64) int {
	return int(math.Floor((offset + RowHeight/2) / RowHeight))
}
