package render

import "math"

// monotoneCurve samples a monotone cubic Hermite curve through the points
// (xs[i], ys[i]), with steps samples per segment. The curve never overshoots
// between neighbouring points (Fritsch-Carlson tangents), so a series that
// never goes below zero is never drawn below zero.
//
// xs must be strictly increasing. Fewer than three points are returned as is.
func monotoneCurve(xs, ys []float64, steps int) ([]float64, []float64) {
	n := len(xs)
	if n < 3 || steps < 2 {
		return append([]float64(nil), xs...), append([]float64(nil), ys...)
	}

	h := make([]float64, n-1)
	delta := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		h[i] = xs[i+1] - xs[i]
		delta[i] = (ys[i+1] - ys[i]) / h[i]
	}

	m := make([]float64, n)
	m[0] = delta[0]
	m[n-1] = delta[n-2]
	for i := 1; i < n-1; i++ {
		if delta[i-1]*delta[i] <= 0 {
			m[i] = 0
			continue
		}
		m[i] = (delta[i-1] + delta[i]) / 2
	}

	for i := 0; i < n-1; i++ {
		if delta[i] == 0 {
			m[i] = 0
			m[i+1] = 0
			continue
		}
		a := m[i] / delta[i]
		b := m[i+1] / delta[i]
		if s := a*a + b*b; s > 9 {
			t := 3 / math.Sqrt(s)
			m[i] = t * a * delta[i]
			m[i+1] = t * b * delta[i]
		}
	}

	outX := make([]float64, 0, (n-1)*steps+1)
	outY := make([]float64, 0, (n-1)*steps+1)
	for i := 0; i < n-1; i++ {
		for s := 0; s < steps; s++ {
			t := float64(s) / float64(steps)
			t2 := t * t
			t3 := t2 * t
			h00 := 2*t3 - 3*t2 + 1
			h10 := t3 - 2*t2 + t
			h01 := -2*t3 + 3*t2
			h11 := t3 - t2
			outX = append(outX, xs[i]+t*h[i])
			outY = append(outY, h00*ys[i]+h10*h[i]*m[i]+h01*ys[i+1]+h11*h[i]*m[i+1])
		}
	}
	outX = append(outX, xs[n-1])
	outY = append(outY, ys[n-1])

	return outX, outY
}

// segments splits values into runs of consecutive defined values. Each run
// is returned as x positions (point indexes) and y values.
func segments(values []*float64) [][2][]float64 {
	var out [][2][]float64
	var xs, ys []float64
	flush := func() {
		if len(xs) > 0 {
			out = append(out, [2][]float64{xs, ys})
		}
		xs, ys = nil, nil
	}
	for i, v := range values {
		if v == nil {
			flush()
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, *v)
	}
	flush()
	return out
}
