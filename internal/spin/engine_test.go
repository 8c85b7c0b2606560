package spin

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/squadtools/squad-roulette/internal/model"
)

// stubFetcher returns a canned listing immediately.
type stubFetcher struct {
	servers []model.ServerRecord
}

func (f *stubFetcher) FetchServers(ctx context.Context, minPlayers, maxPlayers int) []model.ServerRecord {
	return f.servers
}

// fakeClock drives the engine's notion of time from the test.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// waitForFetch ticks until the engine leaves Loading.
func waitForFetch(t *testing.T, engine *Engine) {
	t.Helper()
	for i := 0; i < 200; i++ {
		engine.Tick()
		if engine.Snapshot().Phase != model.PhaseLoading {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Fetch result never arrived")
}

func testListing(n int) []model.ServerRecord {
	servers := make([]model.ServerRecord, n)
	for i := range servers {
		servers[i] = model.ServerRecord{
			Name:       "Server " + string(rune('A'+i)),
			Players:    70,
			MaxPlayers: 100,
			Map:        "Narva",
			Mode:       "RAAS",
			Country:    "DE",
		}
	}
	return servers
}

// readyEngine returns an engine that has loaded the given listing, with a
// fake clock installed.
func readyEngine(t *testing.T, servers []model.ServerRecord, seed int64) (*Engine, *fakeClock) {
	t.Helper()
	engine := NewEngine(&stubFetcher{servers: servers}, rand.New(rand.NewSource(seed)))
	clock := &fakeClock{current: time.Unix(1000, 0)}
	engine.SetClock(clock.now)

	if !engine.StartFetch(60, 100) {
		t.Fatal("StartFetch rejected on idle engine")
	}
	waitForFetch(t, engine)
	return engine, clock
}

func TestEaseOut_Properties(t *testing.T) {
	if got := EaseOut(0); got != 0 {
		t.Errorf("EaseOut(0) = %v, expected 0", got)
	}
	if got := EaseOut(1); got != 1 {
		t.Errorf("EaseOut(1) = %v, expected 1", got)
	}
	if got := EaseOut(1.5); got != 1 {
		t.Errorf("EaseOut(1.5) = %v, expected clamp to 1", got)
	}

	// Strictly increasing across [0, 1].
	prev := -1.0
	for i := 0; i <= 1000; i++ {
		v := EaseOut(float64(i) / 1000)
		if v <= prev && i > 0 {
			t.Fatalf("EaseOut not increasing at t=%v: %v <= %v", float64(i)/1000, v, prev)
		}
		prev = v
	}

	// Near the end of any spin the remaining distance is far below the snap
	// threshold, even for the longest realistic listing (five full pages).
	longestTarget := float64(Loops(500)*500+499) * RowHeight
	remaining := (1 - EaseOut(0.999)) * longestTarget
	if remaining >= SnapDistance {
		t.Errorf("Remaining distance at t=0.999 is %v, expected under %v", remaining, SnapDistance)
	}
}

func TestLoops(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{1, 100},
		{2, 50},
		{3, 34},
		{7, 15},
		{33, 4},
		{34, 3},
		{50, 3},
		{100, 3},
		{500, 3},
	}

	for _, test := range tests {
		if got := Loops(test.length); got != test.expected {
			t.Errorf("Loops(%d) = %d, expected %d", test.length, got, test.expected)
		}
	}
}

func TestNewPlan_EmptyListing(t *testing.T) {
	if _, ok := NewPlan(nil, rand.New(rand.NewSource(1))); ok {
		t.Error("NewPlan should fail on an empty listing")
	}
}

func TestNewPlan_Bounds(t *testing.T) {
	servers := testListing(7)

	for seed := int64(0); seed < 50; seed++ {
		plan, ok := NewPlan(servers, rand.New(rand.NewSource(seed)))
		if !ok {
			t.Fatal("NewPlan failed on non-empty listing")
		}

		if plan.WinnerIndex < 0 || plan.WinnerIndex >= len(servers) {
			t.Fatalf("Winner index %d out of range", plan.WinnerIndex)
		}
		if plan.Winner != servers[plan.WinnerIndex] {
			t.Errorf("Winner is not the listing element at index %d", plan.WinnerIndex)
		}
		if plan.Duration < MinSpinSeconds || plan.Duration >= MaxSpinSeconds {
			t.Errorf("Duration %v outside [%v, %v)", plan.Duration, MinSpinSeconds, MaxSpinSeconds)
		}
		if plan.StartOffset != 0 {
			t.Errorf("StartOffset = %v, expected 0", plan.StartOffset)
		}

		exactRow := float64(Loops(len(servers))*len(servers)+plan.WinnerIndex) * RowHeight
		jitter := plan.TargetOffset - exactRow
		if jitter < -MaxJitter || jitter >= MaxJitter {
			t.Errorf("Jitter %v outside [%v, %v)", jitter, -MaxJitter, MaxJitter)
		}
	}
}

func TestNewPlan_EligibleListingTargetRow(t *testing.T) {
	// Two eligible servers (as after EU-filtering [A(DE) B(US) C(FR)]):
	// whatever index wins, the virtual target row must be loops*2 + index.
	eligible := []model.ServerRecord{
		{Name: "A", Country: "DE"},
		{Name: "C", Country: "FR"},
	}

	sawIndex := map[int]bool{}
	for seed := int64(0); seed < 100; seed++ {
		plan, ok := NewPlan(eligible, rand.New(rand.NewSource(seed)))
		if !ok {
			t.Fatal("NewPlan failed")
		}
		sawIndex[plan.WinnerIndex] = true

		// Jitter is under half a row, so rounding recovers the exact row.
		wantRow := Loops(2)*2 + plan.WinnerIndex
		gotRow := int(math.Round(plan.TargetOffset / RowHeight))
		if gotRow != wantRow {
			t.Errorf("Virtual target row %d, expected %d", gotRow, wantRow)
		}
		if plan.WinnerIndex == 1 && plan.Winner.Name != "C" {
			t.Errorf("Index 1 must select C, got %s", plan.Winner.Name)
		}
	}

	if !sawIndex[0] || !sawIndex[1] {
		t.Errorf("Expected both indices to be selectable across seeds, saw %v", sawIndex)
	}
}

func TestEngine_StartsStale(t *testing.T) {
	engine := NewEngine(&stubFetcher{servers: testListing(3)}, rand.New(rand.NewSource(1)))

	snapshot := engine.Snapshot()
	if !snapshot.Stale {
		t.Error("A fresh engine must be stale until the first fetch")
	}
	if engine.Spin() {
		t.Error("Spin must be rejected before any fetch")
	}
}

func TestEngine_StaleSetDuringFetchSurvivesDelivery(t *testing.T) {
	engine := NewEngine(&stubFetcher{servers: testListing(3)}, rand.New(rand.NewSource(1)))

	engine.StartFetch(60, 100)
	// Filter changed while the fetch is in flight: the delivered listing no
	// longer matches and must stay flagged.
	engine.MarkStale()
	waitForFetch(t, engine)

	snapshot := engine.Snapshot()
	if !snapshot.Stale {
		t.Error("Staleness set mid-fetch must survive result delivery")
	}
	if len(snapshot.Servers) != 3 {
		t.Errorf("Stale result is still applied: expected 3 servers, got %d", len(snapshot.Servers))
	}
}

func TestEngine_SpinGuards(t *testing.T) {
	engine, _ := readyEngine(t, testListing(5), 1)

	if !engine.Spin() {
		t.Fatal("Spin rejected on ready engine with non-empty listing")
	}
	if engine.Spin() {
		t.Error("Spin should be rejected while already spinning")
	}
	if engine.StartFetch(60, 100) {
		t.Error("StartFetch should be rejected while spinning")
	}
}

func TestEngine_SpinRejectedWhenStale(t *testing.T) {
	engine, _ := readyEngine(t, testListing(5), 1)

	engine.MarkStale()
	if engine.Spin() {
		t.Error("Spin should be rejected on a stale listing")
	}
	if !engine.Snapshot().Stale {
		t.Error("Snapshot should report the listing as stale")
	}
}

func TestEngine_EmptyFetchSettlesFinished(t *testing.T) {
	engine := NewEngine(&stubFetcher{}, rand.New(rand.NewSource(1)))
	engine.StartFetch(60, 100)
	waitForFetch(t, engine)

	snapshot := engine.Snapshot()
	if snapshot.Phase != model.PhaseFinished {
		t.Errorf("Empty listing should settle in Finished, got %s", snapshot.Phase)
	}
	if snapshot.HasWinner {
		t.Error("Empty-result Finished state must not expose a winner")
	}
	if engine.Spin() {
		t.Error("Spin should be rejected on an empty listing")
	}
}

func TestEngine_SpinRunsToCompletion(t *testing.T) {
	engine, clock := readyEngine(t, testListing(5), 7)

	if !engine.Spin() {
		t.Fatal("Spin rejected")
	}

	// 16 ms frames for 16 simulated seconds covers the whole duration range.
	for i := 0; i < 1000; i++ {
		clock.advance(16 * time.Millisecond)
		engine.Tick()
	}

	snapshot := engine.Snapshot()
	if snapshot.Phase != model.PhaseFinished {
		t.Fatalf("Expected Finished after full duration, got %s", snapshot.Phase)
	}
	if !snapshot.HasWinner {
		t.Fatal("Finished spin must expose a winner")
	}

	found := false
	for _, server := range snapshot.Servers {
		if server == snapshot.Winner {
			found = true
		}
	}
	if !found {
		t.Error("Winner is not an element of the listing")
	}
}

func TestEngine_TickIdempotentAfterFinish(t *testing.T) {
	engine, clock := readyEngine(t, testListing(5), 7)
	engine.Spin()

	clock.advance(20 * time.Second)
	engine.Tick()

	settled := engine.Snapshot()
	if settled.Phase != model.PhaseFinished {
		t.Fatalf("Expected Finished, got %s", settled.Phase)
	}

	clicks := 0
	engine.SetClickCallback(func() { clicks++ })
	for i := 0; i < 10; i++ {
		clock.advance(16 * time.Millisecond)
		engine.Tick()
	}

	after := engine.Snapshot()
	if after.Phase != settled.Phase || after.Offset != settled.Offset {
		t.Error("Tick after Finished must not change phase or offset")
	}
	if clicks != 0 {
		t.Errorf("Tick after Finished fired %d clicks, expected 0", clicks)
	}
}

func TestEngine_SnapOnTimeout(t *testing.T) {
	engine, clock := readyEngine(t, testListing(5), 3)
	engine.Spin()

	clock.advance(time.Duration(MaxSpinSeconds * float64(time.Second)))
	engine.Tick()

	snapshot := engine.Snapshot()
	if snapshot.Phase != model.PhaseFinished {
		t.Fatalf("Expected Finished at t>=1, got %s", snapshot.Phase)
	}

	wantRow := Loops(5)*5 + snapshotWinnerIndex(engine)
	jitter := snapshot.Offset - float64(wantRow)*RowHeight
	if jitter < -MaxJitter || jitter >= MaxJitter {
		t.Errorf("Settled offset misses the winner row: jitter %v", jitter)
	}
}

// snapshotWinnerIndex digs the plan's winner index out for assertions.
func snapshotWinnerIndex(engine *Engine) int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.plan.WinnerIndex
}

func TestEngine_PlanIDDistinctAcrossSpins(t *testing.T) {
	engine, clock := readyEngine(t, testListing(4), 7)

	if engine.Snapshot().PlanID != "" {
		t.Error("Plan ID should be empty before the first spin")
	}

	if !engine.Spin() {
		t.Fatal("Spin rejected")
	}
	first := engine.Snapshot().PlanID
	if !strings.HasPrefix(first, PlanIDPrefix) {
		t.Errorf("Plan ID %q missing prefix %q", first, PlanIDPrefix)
	}

	clock.advance(time.Duration(MaxSpinSeconds * float64(time.Second)))
	engine.Tick()

	if !engine.Spin() {
		t.Fatal("Second spin rejected after settling")
	}
	second := engine.Snapshot().PlanID
	if second == first {
		t.Errorf("Each spin must get a fresh plan ID, both were %q", first)
	}
}

func TestEngine_ClickCountIndependentOfTickRate(t *testing.T) {
	countClicks := func(frame time.Duration) (int, float64) {
		engine, clock := readyEngine(t, testListing(5), 99)
		clicks := 0
		engine.SetClickCallback(func() { clicks++ })

		if !engine.Spin() {
			t.Fatal("Spin rejected")
		}
		for engine.Snapshot().Phase == model.PhaseSpinning {
			clock.advance(frame)
			engine.Tick()
		}
		return clicks, engine.Snapshot().Offset
	}

	fineClicks, fineOffset := countClicks(4 * time.Millisecond)
	coarseClicks, coarseOffset := countClicks(120 * time.Millisecond)

	if fineOffset != coarseOffset {
		t.Fatalf("Same seed must settle on the same offset: %v vs %v", fineOffset, coarseOffset)
	}
	if fineClicks != coarseClicks {
		t.Errorf("Click count depends on tick rate: fine=%d coarse=%d", fineClicks, coarseClicks)
	}
	if fineClicks < TargetScrollRows {
		t.Errorf("Spin crossed only %d rows, expected at least %d", fineClicks, TargetScrollRows)
	}
}
