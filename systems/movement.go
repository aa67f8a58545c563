package systems

import "math"

// Advance moves from (x, y) toward (tx, ty) by dist world units along the
// straight line between them and returns the new position. If the step
// would overshoot the target on either axis, the position snaps exactly to
// the target. A target directly above or below moves along y only.
func Advance(x, y, tx, ty, dist float64) (nx, ny float64) {
	dx := tx - x
	dy := ty - y

	var stepX, stepY float64
	if dy != 0 {
		ratio := dx / dy
		stepY = math.Sqrt(dist * dist / (ratio*ratio + 1))
		if dy < 0 {
			stepY = -stepY
		}
		stepX = math.Abs(ratio * stepY)
		if dx < 0 {
			stepX = -stepX
		}
	} else {
		stepY = 0
		stepX = dist
		if dx < 0 {
			stepX = -stepX
		}
	}

	if math.Abs(stepX) > math.Abs(dx) || math.Abs(stepY) > math.Abs(dy) {
		return tx, ty
	}
	return x + stepX, y + stepY
}

// AgeSpeed returns the current speed of an animal from the age curve.
// Speed ramps up through childhood, peaks at half the maximum age, and
// declines through old age. The curve value is floored at 0.1 so no animal
// ever fully stalls.
func AgeSpeed(age, maxAge, maxSpeed float64) float64 {
	x := age / maxAge
	if x > 1 {
		x = 1
	}
	var y float64
	if x < 0.5 {
		d := 2*x - 1
		y = -(d * d * d * d) + 1
	} else {
		x -= 0.5
		y = 5.1*x*x*x - 6.4*x*x + 0.6*x + 1
	}
	if y <= 0.1 {
		y = 0.1
	}
	return y * maxSpeed
}
