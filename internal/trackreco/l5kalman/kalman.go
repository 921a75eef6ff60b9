package l5kalman

import (
	"math"

	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"gonum.org/v1/gonum/mat"
)

// projection is H, the fixed projection from the 6D state space to the
// 3D position space hits are measured in.
func projection() l2linalg.Mat3x6 {
	var h l2linalg.Mat3x6
	h[0*6+0] = 1
	h[1*6+1] = 1
	h[2*6+2] = 1
	return h
}

func residual(predicted l3state.TrackState, hit l3state.Hit) l2linalg.Vec3 {
	p := predicted.Params
	return l2linalg.Vec3{hit.X - p[0], hit.Y - p[1], hit.Z - p[2]}
}

// innovationCov returns S = H*C*Hᵀ + V, where V is the hit's own
// position covariance.
func innovationCov(cov l2linalg.Mat6, v l2linalg.Mat3) l2linalg.Mat3 {
	h := projection()
	var hc mat.Dense
	hc.Mul(h.Dense(), cov.Dense())
	var s mat.Dense
	s.Mul(&hc, l2linalg.Transpose3x6(h).Dense())
	return l2linalg.Add3(l2linalg.Mat3FromDense(&s), v)
}

// ComputeChi2 computes the χ² of the residual between a predicted state
// and a hit measurement: r = m - H*x, S = H*C*Hᵀ + V, χ² = rᵀ*S⁻¹*r.
// Returns ok=false if S is singular or the result is non-finite or
// non-positive -- callers must treat that as hit rejection, not an
// error.
func ComputeChi2(predicted l3state.TrackState, hit l3state.Hit) (chi2 float64, ok bool) {
	if !predicted.Valid {
		return 0, false
	}
	r := residual(predicted, hit)
	s := innovationCov(predicted.Cov, hit.Cov)

	sInv, err := l2linalg.Inverse3(s)
	if err != nil {
		return 0, false
	}

	var rs mat.VecDense
	rs.MulVec(sInv.Dense(), r.Dense())
	chi2 = r[0]*rs.AtVec(0) + r[1]*rs.AtVec(1) + r[2]*rs.AtVec(2)

	if math.IsNaN(chi2) || math.IsInf(chi2, 0) || chi2 <= 0 {
		return 0, false
	}
	return chi2, true
}

// UpdateParameters applies the standard Kalman update: gain
// K = C*Hᵀ*S⁻¹, posterior parameters x + K*r, posterior covariance
// (I - K*H)*C, symmetrized. Returns ok=false (and the caller must drop
// the candidate) if S is singular or the result is non-finite.
func UpdateParameters(predicted l3state.TrackState, hit l3state.Hit) (l3state.TrackState, bool) {
	if !predicted.Valid {
		return l3state.TrackState{}, false
	}
	r := residual(predicted, hit)
	s := innovationCov(predicted.Cov, hit.Cov)

	sInv, err := l2linalg.Inverse3(s)
	if err != nil {
		return l3state.TrackState{}, false
	}

	h := projection()
	ht := l2linalg.Transpose3x6(h)

	var cht mat.Dense // C*Hᵀ (6x3)
	cht.Mul(predicted.Cov.Dense(), ht.Dense())

	var kDense mat.Dense // K = C*Hᵀ*S⁻¹ (6x3)
	kDense.Mul(&cht, sInv.Dense())

	var kr mat.VecDense // K*r (6x1)
	kr.MulVec(&kDense, r.Dense())
	newParams := predicted.Params.Add(l2linalg.Vec6FromDense(&kr))

	var kh mat.Dense // K*H (6x6)
	kh.Mul(&kDense, h.Dense())
	khMat := l2linalg.Mat6FromDense(&kh)

	imKH := l2linalg.Sub6(l2linalg.Identity6(), khMat)
	var newCovDense mat.Dense
	newCovDense.Mul(imKH.Dense(), predicted.Cov.Dense())
	newCov := l2linalg.Mat6FromDense(&newCovDense).Symmetrize()

	if !finite6(newParams) || !finiteMat6(newCov) {
		return l3state.TrackState{}, false
	}

	return l3state.TrackState{
		Params: newParams,
		Cov:    newCov,
		Valid:  true,
		Charge: predicted.Charge,
	}, true
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
