package spiral

import (
	"log"
	"math"
	"time"
)

// denseArm holds one arm pre-sampled into a dense polyline, with a
// bucket grid over the plane for candidate lookup. Built once, read
// only afterwards.
type denseArm struct {
	xs, ys  []float64
	cell    float64
	buckets map[int64][]int32

	minCX, maxCX int64
	minCY, maxCY int64
}

// cellID maps a signed cell coordinate pair to a unique key using
// zigzag encoding plus Szudzik's pairing function.
func cellID(cx, cy int64) int64 {
	var a, b int64
	if cx >= 0 {
		a = 2 * cx
	} else {
		a = -2*cx - 1
	}
	if cy >= 0 {
		b = 2 * cy
	} else {
		b = -2*cy - 1
	}
	if a >= b {
		return a*a + a + b
	}
	return a + b*b
}

func (g *Geometry) buildGrid() {
	start := time.Now()
	grid := make([]denseArm, len(g.arms))
	total := 0
	for i := range g.arms {
		grid[i] = newDenseArm(&g.arms[i], g.denseStep, bucketSize)
		total += len(grid[i].xs)
	}
	g.grid = grid
	log.Printf("[SpiralArms] dense sample index built: %d arms, %d samples in %.1fms",
		len(grid), total, float64(time.Since(start).Microseconds())/1000)
}

func newDenseArm(a *arm, step, cell float64) denseArm {
	th0 := a.theta[0]
	thEnd := a.theta[len(a.theta)-1]
	n := int((thEnd-th0)/step) + 1

	d := denseArm{
		xs:      make([]float64, 0, n+1),
		ys:      make([]float64, 0, n+1),
		cell:    cell,
		buckets: make(map[int64][]int32, n/8),
	}
	add := func(t float64) {
		r := a.radius.Predict(t)
		d.xs = append(d.xs, -r*math.Sin(t))
		d.ys = append(d.ys, r*math.Cos(t))
	}
	for k := 0; k < n; k++ {
		add(th0 + float64(k)*step)
	}
	if th0+float64(n-1)*step < thEnd {
		add(thEnd)
	}

	d.minCX, d.minCY = math.MaxInt64, math.MaxInt64
	d.maxCX, d.maxCY = math.MinInt64, math.MinInt64
	for k := range d.xs {
		cx := int64(math.Floor(d.xs[k] / cell))
		cy := int64(math.Floor(d.ys[k] / cell))
		id := cellID(cx, cy)
		d.buckets[id] = append(d.buckets[id], int32(k))
		if cx < d.minCX {
			d.minCX = cx
		}
		if cx > d.maxCX {
			d.maxCX = cx
		}
		if cy < d.minCY {
			d.minCY = cy
		}
		if cy > d.maxCY {
			d.maxCY = cy
		}
	}
	return d
}

// minDist returns the exact minimum distance from (x, y) to the dense
// samples of this arm, searching buckets in expanding Chebyshev rings.
func (d *denseArm) minDist(x, y float64) float64 {
	cx := int64(math.Floor(x / d.cell))
	cy := int64(math.Floor(y / d.cell))

	maxRing := max(cx-d.minCX, d.maxCX-cx, cy-d.minCY, d.maxCY-cy)
	if maxRing < 0 {
		maxRing = 0
	}

	best := math.Inf(1)
	for ring := int64(0); ring <= maxRing; ring++ {
		// Cells at Chebyshev distance ring are at least (ring-1) cells
		// away from any point in the query cell; once the current best
		// beats that, wider rings cannot improve it.
		if !math.IsInf(best, 1) && float64(ring-1)*d.cell > math.Sqrt(best) {
			break
		}
		d.scanRing(cx, cy, ring, x, y, &best)
	}
	return math.Sqrt(best)
}

func (d *denseArm) scanRing(cx, cy, ring int64, x, y float64, best *float64) {
	if ring == 0 {
		d.scanCell(cx, cy, x, y, best)
		return
	}
	for i := -ring; i <= ring; i++ {
		d.scanCell(cx+i, cy-ring, x, y, best)
		d.scanCell(cx+i, cy+ring, x, y, best)
	}
	for i := -ring + 1; i <= ring-1; i++ {
		d.scanCell(cx-ring, cy+i, x, y, best)
		d.scanCell(cx+ring, cy+i, x, y, best)
	}
}

func (d *denseArm) scanCell(cx, cy int64, x, y float64, best *float64) {
	if cx < d.minCX || cx > d.maxCX || cy < d.minCY || cy > d.maxCY {
		return
	}
	for _, k := range d.buckets[cellID(cx, cy)] {
		dx := d.xs[k] - x
		dy := d.ys[k] - y
		if q := dx*dx + dy*dy; q < *best {
			*best = q
		}
	}
}
