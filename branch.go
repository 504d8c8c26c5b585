package conifer

import (
	"fmt"
	"math"
)

// DrawBranch grows one branch from origin along axisAngle, emitting a leaf
// stroke per step until the cursor crosses the vertical projection of the
// branch tip. Leaf brightness is drawn from [minValue, maxValue).
//
// At least one leaf is always drawn. Per step the stream yields one angle and
// one value; the pair for the step after the last leaf is drawn before the
// termination check and discarded.
func (g *Generator) DrawBranch(origin Vec2, axisAngle, length, minValue, maxValue float64) {
	if !(minValue < maxValue) {
		panic(fmt.Sprintf("conifer: DrawBranch value range [%v, %v) is empty", minValue, maxValue))
	}
	leaf := &g.cfg.Leaf

	// Signed vertical distance from origin to the tip. The loop ends once the
	// cursor has moved at least that far in the same direction; a level axis
	// (sign 0) ends after the first leaf.
	tipDy := -length * math.Sin(axisAngle)
	tipY := origin.Y + tipDy
	dir := sign(tipDy)

	// Near-level axes can step below float resolution and never reach the tip.
	maxLeaves := int(math.Ceil(length/leaf.Spacing)) + 2

	cursor := origin
	angle := axisAngle + g.stream.NextDouble(-leaf.MaxAngle, leaf.MaxAngle)
	value := g.stream.NextDouble(minValue, maxValue)

	for n := 1; ; n++ {
		end := cursor.Offset(angle, leaf.Length)
		g.surface.SetStrokeColor(HSVA{H: leaf.Hue, S: leaf.Saturation, V: value}.Color())
		g.surface.DrawLine(cursor.X, cursor.Y, end.X, end.Y)
		g.stats.Leaves++

		cursor = cursor.Offset(axisAngle, leaf.Spacing)
		angle = axisAngle + g.stream.NextDouble(-leaf.MaxAngle, leaf.MaxAngle)
		value = g.stream.NextDouble(minValue, maxValue)

		if dir*(cursor.Y-tipY) >= 0 || n >= maxLeaves {
			return
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
