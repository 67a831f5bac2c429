package regime

import "gitlab.com/aoterocom/AOBacktester/models"

// Cursor walks a regime series forward as a lower-timeframe clock advances.
// It belongs to a single engine run and must be queried with non-decreasing
// times.
type Cursor struct {
	points []models.RegimePoint
	next   int
}

func NewCursor(points []models.RegimePoint) *Cursor {
	return &Cursor{points: points}
}

// At returns the regime of the last point whose Time is <= t. ok is false
// before the first point.
func (c *Cursor) At(t int64) (models.RegimePoint, bool) {
	for c.next < len(c.points) && c.points[c.next].Time <= t {
		c.next++
	}
	if c.next == 0 {
		return models.RegimePoint{}, false
	}
	return c.points[c.next-1], true
}
