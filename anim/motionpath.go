package anim

import (
	"math"
	"slices"
	"sort"

	"github.com/gogpu/gg"
)

const pathFlattenTolerance = 0.05

// MotionPathCache memoizes the flattened geometry of the most recent offset path so
// that consecutive frames sampling the same path do not re-flatten it.
type MotionPathCache struct {
	key      []gg.PathElement
	points   []gg.Point
	lengths  []float64
	rebuilds int
}

// Rebuilds reports how many times the geometry has been recomputed.
func (c *MotionPathCache) Rebuilds() int { return c.rebuilds }

// Length returns the total length of the cached path.
func (c *MotionPathCache) Length() float64 {
	if len(c.lengths) == 0 {
		return 0
	}
	return c.lengths[len(c.lengths)-1]
}

func (c *MotionPathCache) use(path *gg.Path) {
	elems := path.Elements()
	if c.points != nil && slices.Equal(c.key, elems) {
		return
	}

	c.key = slices.Clone(elems)
	c.points = c.points[:0]
	c.lengths = c.lengths[:0]
	for _, pt := range path.Flatten(pathFlattenTolerance) {
		if n := len(c.points); n > 0 && c.points[n-1] == pt {
			continue
		}
		total := 0.0
		if n := len(c.points); n > 0 {
			total = c.lengths[n-1] + c.points[n-1].Distance(pt)
		}
		c.points = append(c.points, pt)
		c.lengths = append(c.lengths, total)
	}
	if c.points == nil {
		c.points = []gg.Point{}
	}
	c.rebuilds++
}

// PointAt returns the point at a fraction of the path length together with the
// direction of travel there, in radians. Fractions are clamped to [0, 1].
func (c *MotionPathCache) PointAt(path *gg.Path, fraction float64) (gg.Point, float64) {
	c.use(path)
	switch len(c.points) {
	case 0:
		return gg.Point{}, 0
	case 1:
		return c.points[0], 0
	}

	dist := min(max(fraction, 0), 1) * c.Length()
	i := sort.SearchFloat64s(c.lengths, dist)
	if i == 0 {
		i = 1
	}
	if i >= len(c.points) {
		i = len(c.points) - 1
	}

	a, b := c.points[i-1], c.points[i]
	span := c.lengths[i] - c.lengths[i-1]
	t := 0.0
	if span > 0 {
		t = (dist - c.lengths[i-1]) / span
	}
	d := b.Sub(a)
	return a.Lerp(b, t), math.Atan2(d.Y, d.X)
}
