package l7builder

import (
	"math"

	"github.com/heptrack/trackcore/internal/trackreco/config"
	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"github.com/heptrack/trackcore/internal/trackreco/l6segindex"
)

// window is the (η-bin × φ-bin) search rectangle computed from a
// propagated state's covariance, kept around for the validation sink's
// per-seed/per-layer record.
type window struct {
	phiBinMin, phiBinMax int
	etaBinMin, etaBinMax int
	nSigmaDPhi, nSigmaDEta float64
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// phiPartials returns ∂φ/∂x, ∂φ/∂y at (x,y) in closed form.
func phiPartials(x, y float64) (dphidx, dphidy float64) {
	rho2 := x*x + y*y
	return -y / rho2, x / rho2
}

const etaFiniteDiffStep = 1e-5

// etaOf mirrors l3state.Hit.Eta()'s definition for a bare (x,y,z) triple.
func etaOf(x, y, z float64) float64 {
	r := math.Hypot(x, y)
	theta := math.Atan2(r, z)
	return -math.Log(math.Tan(theta / 2))
}

// etaPartials returns ∂η/∂x, ∂η/∂y, ∂η/∂z by central finite differences.
// Unlike φ, η's partials with respect to all three spatial coordinates
// don't collapse into a convenient closed form, so this follows
// l4propagate's own precedent of using finite differences where a single
// closed form doesn't cover every partial cleanly.
func etaPartials(x, y, z float64) (dEtadx, dEtady, dEtadz float64) {
	const h = etaFiniteDiffStep
	dEtadx = (etaOf(x+h, y, z) - etaOf(x-h, y, z)) / (2 * h)
	dEtady = (etaOf(x, y+h, z) - etaOf(x, y-h, z)) / (2 * h)
	dEtadz = (etaOf(x, y, z+h) - etaOf(x, y, z-h)) / (2 * h)
	return
}

// computeWindow derives the (η,φ) search rectangle around a propagated
// state's predicted position from its covariance.
func computeWindow(p l3state.TrackState, cfg config.Config) window {
	x, y, z := p.Params[0], p.Params[1], p.Params[2]
	c := p.Cov

	dphidx, dphidy := phiPartials(x, y)
	dphi2 := dphidx*dphidx*c[0*6+0] + dphidy*dphidy*c[1*6+1] + 2*dphidx*dphidy*c[0*6+1]
	nSigmaDPhi := clamp(cfg.NSigma*math.Sqrt(math.Abs(dphi2)), cfg.MinDPhi, math.Pi)

	phi := math.Atan2(y, x)
	phiMin := l6segindex.NormalizedPhi(phi - nSigmaDPhi)
	phiMax := l6segindex.NormalizedPhi(phi + nSigmaDPhi)

	w := window{
		nSigmaDPhi: nSigmaDPhi,
		phiBinMin:  l6segindex.GetPhiBin(phiMin, cfg.NPhiPart),
		phiBinMax:  l6segindex.GetPhiBin(phiMax, cfg.NPhiPart),
	}

	if !cfg.EtaSeg {
		return w
	}

	dEtadx, dEtady, dEtadz := etaPartials(x, y, z)
	dEta2 := dEtadx*dEtadx*c[0*6+0] + dEtady*dEtady*c[1*6+1] + dEtadz*dEtadz*c[2*6+2] +
		2*dEtadx*dEtady*c[0*6+1] + 2*dEtadx*dEtadz*c[0*6+2] + 2*dEtady*dEtadz*c[1*6+2]
	nSigmaDEta := clamp(cfg.NSigma*math.Sqrt(math.Abs(dEta2)), 0, 1)
	eta := etaOf(x, y, z)

	w.nSigmaDEta = nSigmaDEta
	w.etaBinMin = l6segindex.GetEtaBin(eta-nSigmaDEta, cfg.EtaDet, cfg.NEtaPart, true)
	w.etaBinMax = l6segindex.GetEtaBin(eta+nSigmaDEta, cfg.EtaDet, cfg.NEtaPart, true)
	return w
}

// lerpParams linearly interpolates two propagated parameter vectors by
// hit radius for the optional linear-interpolation propagator mode:
// propState = (1-t)*propMin + t*propMax.
func lerpParams(min, max l2linalg.Vec6, t float64) l2linalg.Vec6 {
	var out l2linalg.Vec6
	for i := range out {
		out[i] = (1-t)*min[i] + t*max[i]
	}
	return out
}
