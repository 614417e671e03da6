package calc

import (
	"container/heap"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

type quadParams struct {
	atol, rtol float64
	maxEvals   int
}

type internalQuadOption func(*quadParams)

// QuadOption tunes a call to Integrate.
type QuadOption internalQuadOption

// ATol sets the absolute error target. The default is 0.
func ATol(tol float64) QuadOption {
	return func(p *quadParams) { p.atol = tol }
}

// RTol sets the relative error target. The default is 1e-3.
func RTol(tol float64) QuadOption {
	return func(p *quadParams) { p.rtol = tol }
}

// MaxEvals sets the maximum number of integrand evaluations. The default is
// 1e5.
func MaxEvals(n int) QuadOption {
	return func(p *quadParams) { p.maxEvals = n }
}

func (p *quadParams) loadOptions(opts []QuadOption) {
	p.atol, p.rtol, p.maxEvals = 0, 1e-3, 100000
	for _, opt := range opts {
		opt(p)
	}
}

// gaussRule is a Gauss-Legendre rule on [-1, 1].
type gaussRule struct{ x, w []float64 }

func newGaussRule(n int) gaussRule {
	r := gaussRule{make([]float64, n), make([]float64, n)}
	quad.Legendre{}.FixedLocations(r.x, r.w, -1, 1)
	return r
}

// apply integrates f over [lo, hi] with the rule.
func (r gaussRule) apply(f func(float64) float64, lo, hi float64) float64 {
	mid, half := (lo+hi)/2, (hi-lo)/2
	sum := 0.0
	for i := range r.x {
		sum += r.w[i] * f(mid+half*r.x[i])
	}
	return sum * half
}

var (
	rulesOnce      sync.Once
	coarse, refine gaussRule
)

func rules() (gaussRule, gaussRule) {
	rulesOnce.Do(func() {
		coarse, refine = newGaussRule(7), newGaussRule(15)
	})
	return coarse, refine
}

type panel struct{ lo, hi, val, err float64 }

// panelHeap is a max-heap on the error estimate.
type panelHeap []panel

func (h panelHeap) Len() int            { return len(h) }
func (h panelHeap) Less(i, j int) bool  { return h[i].err > h[j].err }
func (h panelHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *panelHeap) Push(x interface{}) { *h = append(*h, x.(panel)) }
func (h *panelHeap) Pop() interface{} {
	old := *h
	p := old[len(old)-1]
	*h = old[:len(old)-1]
	return p
}

// Integrate computes the definite integral of f from lo to hi with globally
// adaptive Gauss-Legendre quadrature. Each panel is integrated with a 7- and
// a 15-point rule and their difference is used as the panel's error. The
// panel with the largest error is split in half until the total error is
// below max(ATol, RTol*|I|).
//
// f is never evaluated at lo or hi, so integrands which are only defined on
// the open interval are fine. If the MaxEvals budget runs out, a *QuadError
// is returned.
func Integrate(
	f func(float64) float64, lo, hi float64, opts ...QuadOption,
) (float64, error) {
	p := new(quadParams)
	p.loadOptions(opts)

	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) ||
		math.IsInf(hi, 0) {
		return math.NaN(), fmt.Errorf(
			"%w: integration bounds [%g, %g]", ErrInvalidInterval, lo, hi,
		)
	}
	if lo == hi {
		return 0, nil
	} else if lo > hi {
		val, err := Integrate(f, hi, lo, opts...)
		if qe, ok := err.(*QuadError); ok {
			qe.Estimate = -qe.Estimate
		}
		return -val, err
	}

	g, k := rules()
	perPanel := len(g.x) + len(k.x)
	evals := 0
	eval := func(lo, hi float64) panel {
		coarse, fine := g.apply(f, lo, hi), k.apply(f, lo, hi)
		evals += perPanel
		return panel{lo, hi, fine, math.Abs(fine - coarse)}
	}

	h := &panelHeap{eval(lo, hi)}
	total, errSum := (*h)[0].val, (*h)[0].err
	for {
		if math.IsNaN(total) || math.IsNaN(errSum) {
			return math.NaN(), fmt.Errorf(
				"%w: integrand is NaN inside [%g, %g]", ErrNoConvergence, lo, hi,
			)
		}
		if errSum <= math.Max(p.atol, p.rtol*math.Abs(total)) {
			return total, nil
		}
		if evals+2*perPanel > p.maxEvals {
			return math.NaN(), &QuadError{total, errSum, evals}
		}

		worst := heap.Pop(h).(panel)
		mid := worst.lo + (worst.hi-worst.lo)/2
		left, right := eval(worst.lo, mid), eval(mid, worst.hi)
		heap.Push(h, left)
		heap.Push(h, right)

		total += left.val + right.val - worst.val
		errSum += left.err + right.err - worst.err
	}
}
