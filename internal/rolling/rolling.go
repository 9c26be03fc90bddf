// Package rolling computes trailing-window wOBA/xwOBA ratios per batter
// and reduces each rolling series to a fixed-length trend sequence.
package rolling

import (
	"math"
	"sort"
	"sync"

	"github.com/pable/go-mlb-metrics/internal/model"
)

// Defaults matching the published dataset.
const (
	DefaultMinPA       = 50
	DefaultTrendPoints = 20
	DefaultWorkers     = 8
)

// DefaultWindows are the trailing-window sizes in plate appearances.
var DefaultWindows = []int{50, 100, 250}

// Config controls the rolling computation.
type Config struct {
	Windows     []int
	MinPA       int
	TrendPoints int
	Workers     int
}

// DefaultConfig returns the standard windows and thresholds.
func DefaultConfig() Config {
	return Config{
		Windows:     append([]int(nil), DefaultWindows...),
		MinPA:       DefaultMinPA,
		TrendPoints: DefaultTrendPoints,
		Workers:     DefaultWorkers,
	}
}

// Compute builds the rolling block for one batter's ordered PA sequence.
// It returns nil when the batter has fewer than MinPA plate appearances or
// when no configured window fits within the sequence.
func Compute(pas []model.PlateAppearance, cfg Config) *model.RollingResult {
	total := len(pas)
	if total < cfg.MinPA {
		return nil
	}

	// Prefix sums; trailing sums over [i-w+1, i] come out of one pass.
	wobaSum := make([]float64, total+1)
	denomSum := make([]float64, total+1)
	xwobaSum := make([]float64, total+1)
	for i, pa := range pas {
		wobaSum[i+1] = wobaSum[i] + pa.WOBAValue
		denomSum[i+1] = denomSum[i] + pa.WOBADenom
		xwobaSum[i+1] = xwobaSum[i] + pa.XWOBAValue
	}

	windows := make(map[int]model.WindowResult)
	for _, w := range cfg.Windows {
		if w <= 0 || total < w {
			continue
		}

		// A position is defined once w events have occurred and the
		// trailing weight sum is non-zero; both series share the same
		// denominator, so their defined positions coincide.
		woba := make([]float64, 0, total-w+1)
		xwoba := make([]float64, 0, total-w+1)
		for i := w - 1; i < total; i++ {
			den := denomSum[i+1] - denomSum[i+1-w]
			if den == 0 {
				continue
			}
			woba = append(woba, (wobaSum[i+1]-wobaSum[i+1-w])/den)
			xwoba = append(xwoba, (xwobaSum[i+1]-xwobaSum[i+1-w])/den)
		}

		wr := model.WindowResult{
			TrendWOBA:  []float64{},
			TrendXWOBA: []float64{},
			TrendDiff:  []float64{},
		}

		// Headline values come from the final position of the full
		// series; absent when the last trailing weight sum is zero.
		if lastDen := denomSum[total] - denomSum[total-w]; lastDen != 0 {
			lw := round3((wobaSum[total] - wobaSum[total-w]) / lastDen)
			lx := round3((xwobaSum[total] - xwobaSum[total-w]) / lastDen)
			ld := round3(((wobaSum[total] - wobaSum[total-w]) - (xwobaSum[total] - xwobaSum[total-w])) / lastDen)
			wr.RollingWOBA = &lw
			wr.RollingXWOBA = &lx
			wr.RollingDiff = &ld
		}

		for _, idx := range SampleIndices(len(woba), cfg.TrendPoints) {
			tw := round3(woba[idx])
			tx := round3(xwoba[idx])
			wr.TrendWOBA = append(wr.TrendWOBA, tw)
			wr.TrendXWOBA = append(wr.TrendXWOBA, tx)
			wr.TrendDiff = append(wr.TrendDiff, round3(tw-tx))
		}

		windows[w] = wr
	}

	if len(windows) == 0 {
		return nil
	}
	return &model.RollingResult{TotalPA: total, Windows: windows}
}

// SampleIndices selects at most points indices from a series of length n,
// evenly spaced and inclusive of both endpoints, rounding each slot to the
// nearest index. With n ≤ points every index is returned in order.
func SampleIndices(n, points int) []int {
	if n <= 0 || points <= 0 {
		return nil
	}
	if n <= points {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	if points == 1 {
		return []int{0}
	}
	idx := make([]int, points)
	step := float64(n-1) / float64(points-1)
	for k := 0; k < points; k++ {
		idx[k] = int(math.Round(float64(k) * step))
	}
	return idx
}

// ComputeAll runs Compute for every batter group across a worker pool.
// Batters that fall below MinPA (or fit no window) are absent from the
// returned map. The progress callback, if non-nil, is invoked after each
// batter with the number processed so far; it may be called from multiple
// goroutines' completions but never concurrently.
func ComputeAll(groups map[int][]model.PlateAppearance, cfg Config, progress func(done, total int)) map[int]*model.RollingResult {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	results := make(map[int]*model.RollingResult, len(ids))
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		done int
	)
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				res := Compute(groups[id], cfg)
				mu.Lock()
				if res != nil {
					results[id] = res
				}
				done++
				if progress != nil {
					progress(done, len(ids))
				}
				mu.Unlock()
			}
		}()
	}
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return results
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
