// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

package calibration

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// scaledCubic is a cubic a*x^3 + b*x^2 + c*x + d fit to data that has
// been rescaled to the unit square; at() undoes the rescaling.
type scaledCubic struct {
	a, b, c, d float64
	xm, ym     float64
	rxr, yr    float64
}

func (s scaledCubic) at(x float64) float64 {
	xs := (x - s.xm) * s.rxr
	return (((s.a*xs+s.b)*xs+s.c)*xs+s.d)*s.yr + s.ym
}

// fitCubicConstrained fits a cubic to (xs, ys), rescaled to the unit
// square, constrained to be strictly increasing everywhere (3a > 0
// and (2b)^2 - 12ac < 0) with a non-negative y-intercept. The warm
// start comes from an ordinary least-squares normal-equations solve;
// the constraints are then enforced by a penalty-method gradient
// refinement, since this is a small, fixed-shape nonlinear program
// with no natural closed form.
func fitCubicConstrained(xs, ys []float64) (scaledCubic, bool) {
	n := len(xs)
	if n == 0 {
		return scaledCubic{}, false
	}
	xmin, xmax := minFloat64(xs), maxFloat64(xs)
	ymin, ymax := minFloat64(ys), maxFloat64(ys)
	xrange := xmax - xmin
	yrange := ymax - ymin
	if xrange == 0 || yrange == 0 || math.IsNaN(xrange) || math.IsNaN(yrange) {
		return scaledCubic{}, false
	}

	xss := make([]float64, n)
	yss := make([]float64, n)
	for i := range xs {
		xss[i] = (xs[i] - xmin) / xrange
		yss[i] = (ys[i] - ymin) / yrange
	}

	coef, ok := cubicNormalEquations(xss, yss)
	if !ok {
		coef = [4]float64{0, 0, 1, 0}
	}
	coef = enforceCubicConstraints(coef, xss, yss)

	return scaledCubic{
		a: coef[0], b: coef[1], c: coef[2], d: coef[3],
		xm: xmin, ym: ymin, rxr: 1 / xrange, yr: yrange,
	}, true
}

// cubicNormalEquations solves the ordinary least-squares cubic fit via
// the Vandermonde normal equations, used only as an initial guess for
// the constrained refinement below.
func cubicNormalEquations(xs, ys []float64) ([4]float64, bool) {
	n := len(xs)
	a := mat.NewDense(n, 4, nil)
	for i, x := range xs {
		a.Set(i, 0, x*x*x)
		a.Set(i, 1, x*x)
		a.Set(i, 2, x)
		a.Set(i, 3, 1)
	}
	y := mat.NewVecDense(n, ys)

	var ata mat.Dense
	ata.Mul(a.T(), a)
	var aty mat.VecDense
	aty.MulVec(a.T(), y)

	var coef mat.VecDense
	if err := coef.SolveVec(&ata, &aty); err != nil {
		return [4]float64{}, false
	}
	return [4]float64{coef.AtVec(0), coef.AtVec(1), coef.AtVec(2), coef.AtVec(3)}, true
}

// enforceCubicConstraints refines coef0 by penalty-method gradient
// descent: minimize least-squares residual plus a quadratic penalty on
// constraint violation, with the penalty weight increased each outer
// round so the solution is pushed onto the feasible region.
func enforceCubicConstraints(coef0 [4]float64, xs, ys []float64) [4]float64 {
	lse := func(c [4]float64) float64 {
		total := 0.0
		for i, x := range xs {
			z := ((c[0]*x+c[1])*x+c[2])*x + c[3]
			r := z - ys[i]
			total += r * r
		}
		return total
	}
	violation := func(c [4]float64) float64 {
		const margin = 1e-6
		a3 := 3 * c[0]
		disc := (2*c[1])*(2*c[1]) - 4*a3*c[2]
		v := 0.0
		if a3 <= margin {
			d := margin - a3
			v += d * d
		}
		if disc >= -margin {
			d := disc + margin
			v += d * d
		}
		if c[3] < 0 {
			v += c[3] * c[3]
		}
		return v
	}
	objective := func(c [4]float64, mu float64) float64 {
		return lse(c) + mu*violation(c)
	}
	grad := func(c [4]float64, mu float64) [4]float64 {
		const h = 1e-6
		base := objective(c, mu)
		var g [4]float64
		for i := 0; i < 4; i++ {
			cp := c
			cp[i] += h
			g[i] = (objective(cp, mu) - base) / h
		}
		return g
	}

	coef := coef0
	mu := 1.0
	for outer := 0; outer < 30; outer++ {
		step := 0.05
		for it := 0; it < 200; it++ {
			g := grad(coef, mu)
			gn := math.Sqrt(g[0]*g[0] + g[1]*g[1] + g[2]*g[2] + g[3]*g[3])
			if gn < 1e-12 {
				break
			}
			for i := range coef {
				coef[i] -= step * g[i] / gn
			}
			if coef[3] < 0 {
				coef[3] = 0
			}
		}
		mu *= 4
	}
	if coef[3] < 0 {
		coef[3] = 0
	}
	return coef
}

func maxFloat64(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
