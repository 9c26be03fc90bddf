package rolling

import (
	"math"
	"reflect"
	"testing"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// makePAs builds n plate appearances, all with weight 1, where realized
// and expected values are produced per position.
func makePAs(n int, woba, xwoba func(i int) float64) []model.PlateAppearance {
	pas := make([]model.PlateAppearance, n)
	for i := range pas {
		pas[i] = model.PlateAppearance{
			Batter:      1,
			GameDate:    "2024-05-01",
			AtBatNumber: i + 1,
			WOBAValue:   woba(i),
			WOBADenom:   1,
			XWOBAValue:  xwoba(i),
		}
	}
	return pas
}

func constant(v float64) func(int) float64 { return func(int) float64 { return v } }

// alternating030 yields 0.3 on even positions and 0.0 on odd ones.
func alternating030(i int) float64 {
	if i%2 == 0 {
		return 0.3
	}
	return 0.0
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestCompute_BelowMinPAExcluded(t *testing.T) {
	pas := makePAs(DefaultMinPA-1, constant(0.3), constant(0.3))
	if res := Compute(pas, DefaultConfig()); res != nil {
		t.Errorf("batter with %d PA should be excluded, got %+v", DefaultMinPA-1, res)
	}
}

func TestCompute_ExactlyMinPAIncluded(t *testing.T) {
	pas := makePAs(DefaultMinPA, constant(0.3), constant(0.3))
	res := Compute(pas, DefaultConfig())
	if res == nil {
		t.Fatalf("batter with exactly %d PA should be included", DefaultMinPA)
	}
	if res.TotalPA != DefaultMinPA {
		t.Errorf("TotalPA: got %d, want %d", res.TotalPA, DefaultMinPA)
	}
	if _, ok := res.Windows[50]; !ok {
		t.Error("window 50 should be present at exactly 50 PA")
	}
	if len(res.Windows) != 1 {
		t.Errorf("only window 50 should fit in 50 PA, got %v", res.Windows)
	}
}

// Sixty PA with weight 1, realized alternating 0.3/0.0 and a constant
// 0.310 estimate: the trailing-50 realized ratio is 0.15, the expected
// ratio 0.310, the differential −0.160, and windows 100/250 are omitted.
func TestCompute_SixtyPAScenario(t *testing.T) {
	pas := makePAs(60, alternating030, constant(0.310))
	res := Compute(pas, DefaultConfig())
	if res == nil {
		t.Fatal("expected a rolling result")
	}
	if len(res.Windows) != 1 {
		t.Fatalf("expected only window 50, got %v", res.Windows)
	}

	wr, ok := res.Windows[50]
	if !ok {
		t.Fatal("window 50 missing")
	}
	if wr.RollingWOBA == nil || wr.RollingXWOBA == nil || wr.RollingDiff == nil {
		t.Fatal("headline values should all be defined")
	}
	approx(t, "rolling wOBA", *wr.RollingWOBA, 0.15)
	approx(t, "rolling xwOBA", *wr.RollingXWOBA, 0.31)
	approx(t, "rolling diff", *wr.RollingDiff, -0.16)
}

func TestCompute_HeadlineMatchesTrailingSums(t *testing.T) {
	// Ramp values so every trailing window has a distinct sum.
	pas := makePAs(120, func(i int) float64 { return float64(i) / 100 }, constant(0.2))
	cfg := DefaultConfig()
	res := Compute(pas, cfg)
	if res == nil {
		t.Fatal("expected a rolling result")
	}

	for _, w := range []int{50, 100} {
		wr := res.Windows[w]
		var sum float64
		for i := 120 - w; i < 120; i++ {
			sum += float64(i) / 100
		}
		wantWOBA := math.Round(sum/float64(w)*1000) / 1000
		if wr.RollingWOBA == nil {
			t.Fatalf("window %d: headline absent", w)
		}
		approx(t, "headline", *wr.RollingWOBA, wantWOBA)

		wantDiff := math.Round((sum/float64(w)-0.2)*1000) / 1000
		approx(t, "diff", *wr.RollingDiff, wantDiff)
	}
	if _, ok := res.Windows[250]; ok {
		t.Error("window 250 should be omitted for 120 PA")
	}
}

func TestCompute_ZeroWeightHeadlineAbsent(t *testing.T) {
	pas := makePAs(4, constant(0.3), constant(0.3))
	pas[2].WOBADenom = 0
	pas[3].WOBADenom = 0

	cfg := Config{Windows: []int{2}, MinPA: 2, TrendPoints: 20}
	res := Compute(pas, cfg)
	if res == nil {
		t.Fatal("expected a rolling result")
	}

	wr := res.Windows[2]
	if wr.RollingDiff != nil {
		t.Errorf("headline diff should be absent when trailing weight sum is 0, got %v", *wr.RollingDiff)
	}
	// Positions with a zero weight sum are dropped, not kept as gaps.
	if len(wr.TrendWOBA) != 2 {
		t.Errorf("expected 2 defined trend positions, got %d", len(wr.TrendWOBA))
	}
}

func TestCompute_TrendLengthAndConsistency(t *testing.T) {
	pas := makePAs(300, func(i int) float64 { return 0.2 + float64(i%7)/50 }, func(i int) float64 { return 0.25 + float64(i%5)/40 })
	res := Compute(pas, DefaultConfig())
	if res == nil {
		t.Fatal("expected a rolling result")
	}

	for w, wr := range res.Windows {
		defined := 300 - w + 1
		wantLen := defined
		if wantLen > DefaultTrendPoints {
			wantLen = DefaultTrendPoints
		}
		if len(wr.TrendWOBA) != wantLen || len(wr.TrendXWOBA) != wantLen || len(wr.TrendDiff) != wantLen {
			t.Errorf("window %d: trend lengths %d/%d/%d, want %d",
				w, len(wr.TrendWOBA), len(wr.TrendXWOBA), len(wr.TrendDiff), wantLen)
		}
		// Realized and expected are sampled at identical indices, so the
		// diff trend must equal the elementwise difference.
		for i := range wr.TrendDiff {
			want := math.Round((wr.TrendWOBA[i]-wr.TrendXWOBA[i])*1000) / 1000
			approx(t, "trend diff elementwise", wr.TrendDiff[i], want)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	pas := makePAs(137, alternating030, constant(0.28))
	a := Compute(pas, DefaultConfig())
	b := Compute(pas, DefaultConfig())
	if !reflect.DeepEqual(a, b) {
		t.Error("Compute should be deterministic for identical input")
	}
}

func TestSampleIndices(t *testing.T) {
	// Short series: everything, in order.
	if got := SampleIndices(5, 20); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("short series: got %v", got)
	}
	if got := SampleIndices(0, 20); got != nil {
		t.Errorf("empty series: got %v, want nil", got)
	}

	// Long series: fixed length, endpoints inclusive, non-decreasing.
	got := SampleIndices(173, 20)
	if len(got) != 20 {
		t.Fatalf("length: got %d, want 20", len(got))
	}
	if got[0] != 0 || got[19] != 172 {
		t.Errorf("endpoints: got first=%d last=%d, want 0 and 172", got[0], got[19])
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("indices must be non-decreasing: %v", got)
		}
	}

	// Deterministic.
	if again := SampleIndices(173, 20); !reflect.DeepEqual(got, again) {
		t.Error("SampleIndices should be deterministic")
	}
}

func TestComputeAll_FiltersAndCounts(t *testing.T) {
	groups := map[int][]model.PlateAppearance{
		1: makePAs(60, alternating030, constant(0.31)),
		2: makePAs(10, constant(0.3), constant(0.3)), // below MinPA
		3: makePAs(110, alternating030, constant(0.25)),
	}

	var calls int
	results := ComputeAll(groups, DefaultConfig(), func(done, total int) {
		calls++
		if total != 3 {
			t.Errorf("progress total: got %d, want 3", total)
		}
	})

	if calls != 3 {
		t.Errorf("progress should fire once per batter: got %d calls", calls)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 qualifying batters, got %d", len(results))
	}
	if _, ok := results[2]; ok {
		t.Error("batter below MinPA must not appear in results")
	}
	if results[3].TotalPA != 110 {
		t.Errorf("batter 3 TotalPA: got %d, want 110", results[3].TotalPA)
	}
	if _, ok := results[3].Windows[100]; !ok {
		t.Error("batter 3 should have a 100-PA window")
	}
}

func TestComputeAll_MatchesSequentialCompute(t *testing.T) {
	groups := map[int][]model.PlateAppearance{}
	for id := 1; id <= 12; id++ {
		groups[id] = makePAs(50+id*13, alternating030, constant(0.3))
	}

	cfg := DefaultConfig()
	cfg.Workers = 4
	parallel := ComputeAll(groups, cfg, nil)

	for id, pas := range groups {
		want := Compute(pas, cfg)
		if !reflect.DeepEqual(parallel[id], want) {
			t.Errorf("batter %d: parallel result differs from sequential", id)
		}
	}
}
