package l4propagate

import (
	"math"

	"github.com/heptrack/trackcore/internal/trackreco/l1geom"
	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"gonum.org/v1/gonum/mat"
)

// Params controls the numerical behavior of the helix propagator. Kappa
// is the signed curvature coefficient: a track of charge q and transverse
// momentum pt bends with curvature q*Kappa/pt (1/length units), standing
// in for the detector's axial magnetic field strength, which an external
// geometry/field collaborator owns.
type Params struct {
	Kappa          float64
	MaxNewtonIters int
	NewtonTol      float64
	MinTransverseP float64
}

// DefaultParams returns propagator numerical defaults suitable for the
// geometry scales of a typical cylindrical silicon tracker.
func DefaultParams() Params {
	return Params{
		Kappa:          0.01,
		MaxNewtonIters: 50,
		NewtonTol:      1e-9,
		MinTransverseP: 1e-9,
	}
}

const straightLineKappaEps = 1e-12

// PropagateHelixToLayer advances state to the cylinder radius of the
// given layer.
func PropagateHelixToLayer(state l3state.TrackState, layer int, geom *l1geom.Geometry, p Params) l3state.TrackState {
	return PropagateHelixToR(state, geom.Radius(layer), p)
}

// PropagateHelixToR advances a helical track state to the cylinder of
// radius R, transporting its covariance by the propagation Jacobian.
// Deterministic and a pure function of its inputs. Sets Valid=false if
// the helix cannot reach R within numerical tolerance, or if an invalid
// state is passed in (an invalid state is inert and simply passes through).
func PropagateHelixToR(state l3state.TrackState, R float64, p Params) l3state.TrackState {
	if !state.Valid {
		return state
	}

	newParams, ok := solveToR(state.Params, state.Charge, p, R)
	if !ok {
		return l3state.TrackState{Valid: false, Charge: state.Charge}
	}

	j, ok := jacobian(state.Params, state.Charge, p, R)
	if !ok {
		return l3state.TrackState{Valid: false, Charge: state.Charge}
	}

	jm := j.Dense()
	cm := state.Cov.Dense()
	var tmp, newCovM mat.Dense
	tmp.Mul(jm, cm)
	newCovM.Mul(&tmp, jm.T())
	newCov := l2linalg.Mat6FromDense(&newCovM).Symmetrize()

	if !finite6(newParams) || !finiteMat6(newCov) {
		return l3state.TrackState{Valid: false, Charge: state.Charge}
	}

	return l3state.TrackState{Params: newParams, Cov: newCov, Valid: true, Charge: state.Charge}
}

// solveToR returns the propagated 6-vector at radius R, or ok=false if
// the helix does not intersect R.
func solveToR(params l2linalg.Vec6, charge float64, p Params, r float64) (l2linalg.Vec6, bool) {
	x0, y0, z0 := params[0], params[1], params[2]
	px0, py0, pz0 := params[3], params[4], params[5]

	pt0 := math.Hypot(px0, py0)
	if pt0 < p.MinTransverseP {
		return l2linalg.Vec6{}, false
	}
	phi0 := math.Atan2(py0, px0)
	k := charge * p.Kappa / pt0

	if math.Abs(k) < straightLineKappaEps {
		return straightLineToR(x0, y0, z0, phi0, pt0, pz0, r)
	}
	return curvedToR(x0, y0, z0, phi0, pt0, pz0, k, p, r)
}

func straightLineToR(x0, y0, z0, phi0, pt0, pz0, r float64) (l2linalg.Vec6, bool) {
	cosPhi, sinPhi := math.Cos(phi0), math.Sin(phi0)
	a := 1.0
	b := 2 * (x0*cosPhi + y0*sinPhi)
	c := x0*x0 + y0*y0 - r*r
	disc := b*b - 4*a*c
	if disc < 0 {
		return l2linalg.Vec6{}, false
	}
	sq := math.Sqrt(disc)
	s1 := (-b + sq) / (2 * a)
	s2 := (-b - sq) / (2 * a)
	s, ok := smallestNonNegative(s1, s2)
	if !ok {
		return l2linalg.Vec6{}, false
	}
	return l2linalg.Vec6{
		x0 + cosPhi*s,
		y0 + sinPhi*s,
		z0 + s*(pz0/pt0),
		pt0 * cosPhi,
		pt0 * sinPhi,
		pz0,
	}, true
}

func curvedToR(x0, y0, z0, phi0, pt0, pz0, k float64, p Params, r float64) (l2linalg.Vec6, bool) {
	rho := 1 / math.Abs(k)
	cx := x0 - math.Sin(phi0)/k
	cy := y0 + math.Cos(phi0)/k
	d0 := math.Hypot(cx, cy)

	const tol = 1e-9
	if r < math.Abs(d0-rho)-tol || r > d0+rho+tol {
		return l2linalg.Vec6{}, false
	}

	// Seed Newton with the straight-line path length to R: alpha=0 is a
	// stationary point of f when the track starts at the origin.
	alpha := 0.0
	if lin, ok := straightLineToR(x0, y0, 0, phi0, pt0, 0, r); ok {
		alpha = k * math.Hypot(lin[0]-x0, lin[1]-y0)
	}
	converged := false
	for i := 0; i < p.MaxNewtonIters; i++ {
		x := x0 + (math.Sin(phi0+alpha)-math.Sin(phi0))/k
		y := y0 - (math.Cos(phi0+alpha)-math.Cos(phi0))/k
		f := x*x + y*y - r*r
		if math.Abs(f) < p.NewtonTol {
			converged = true
			break
		}
		dxda := math.Cos(phi0+alpha) / k
		dyda := math.Sin(phi0+alpha) / k
		df := 2*x*dxda + 2*y*dyda
		if math.Abs(df) < 1e-15 {
			break
		}
		alpha -= f / df
	}
	if !converged || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return l2linalg.Vec6{}, false
	}

	s := alpha / k
	x1 := x0 + (math.Sin(phi0+alpha)-math.Sin(phi0))/k
	y1 := y0 - (math.Cos(phi0+alpha)-math.Cos(phi0))/k
	z1 := z0 + s*(pz0/pt0)
	px1 := pt0 * math.Cos(phi0+alpha)
	py1 := pt0 * math.Sin(phi0+alpha)
	return l2linalg.Vec6{x1, y1, z1, px1, py1, pz0}, true
}

func smallestNonNegative(a, b float64) (float64, bool) {
	switch {
	case a >= 0 && b >= 0:
		return math.Min(a, b), true
	case a >= 0:
		return a, true
	case b >= 0:
		return b, true
	default:
		return 0, false
	}
}

// jacobian computes the propagation Jacobian d(output)/d(input) by
// central finite differences. The transverse-circle intersection (the
// Newton solve above) has no convenient closed-form partial derivative
// with respect to all six input parameters at once, so this implements
// the Jacobian transport numerically rather than deriving six columns of
// closed-form partials by hand; the rest of the propagation is analytic.
func jacobian(params l2linalg.Vec6, charge float64, p Params, r float64) (l2linalg.Mat6, bool) {
	var j l2linalg.Mat6
	for col := 0; col < 6; col++ {
		scale := math.Abs(params[col])
		if scale < 1 {
			scale = 1
		}
		eps := scale * 1e-6

		plus := params
		plus[col] += eps
		minus := params
		minus[col] -= eps

		outPlus, okP := solveToR(plus, charge, p, r)
		outMinus, okM := solveToR(minus, charge, p, r)
		if !okP || !okM {
			return l2linalg.Mat6{}, false
		}
		for row := 0; row < 6; row++ {
			j[row*6+col] = (outPlus[row] - outMinus[row]) / (2 * eps)
		}
	}
	return j, true
}

func finite6(v l2linalg.Vec6) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func finiteMat6(m l2linalg.Mat6) bool {
	for _, x := range m {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
