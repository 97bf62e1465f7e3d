package rating

import "math"

// Glicko-2 constants from the paper, on the public 1500 scale.
const (
	glickoScale = 173.7178
	glickoQ     = math.Ln10 / 400.0
	piSquared   = math.Pi * math.Pi

	convergenceTolerance = 1e-6
	maxIterations        = 60
)

// Glicko2Rating holds a player's paired-comparison rating triple on the
// public 1500 scale.
type Glicko2Rating struct {
	Rating     float64
	Deviation  float64
	Volatility float64
	Games      int
}

// gameResult is one opponent's aggregate outcome within a rating
// period. Score is 1 for a win, 0 for a loss.
type gameResult struct {
	Opponent Glicko2Rating
	Score    float64
}

func toInternalScale(r, rd float64) (mu, phi float64) {
	return (r - 1500.0) / glickoScale, rd / glickoScale
}

func fromInternalScale(mu, phi float64) (r, rd float64) {
	return mu*glickoScale + 1500.0, phi * glickoScale
}

func gFactor(phi float64) float64 {
	return 1.0 / math.Sqrt(1.0+3.0*glickoQ*glickoQ*phi*phi/piSquared)
}

func expectedScore(mu, muOpp, phiOpp float64) float64 {
	return 1.0 / (1.0 + math.Exp(-gFactor(phiOpp)*(mu-muOpp)))
}

// age applies the no-games rating-period step: the deviation grows by
// the volatility while the rating itself stays put.
func (p *Glicko2Rating) age() {
	mu, phi := toInternalScale(p.Rating, p.Deviation)
	phiStar := math.Sqrt(phi*phi + p.Volatility*p.Volatility)
	p.Rating, p.Deviation = fromInternalScale(mu, phiStar)
	p.Games++
}

// applyPeriod runs the canonical Glicko-2 rating-period update against
// all of the player's games in the period at once. Opponent triples
// must be their values at the start of the period.
func (p *Glicko2Rating) applyPeriod(results []gameResult, tau float64) {
	if len(results) == 0 {
		p.age()
		return
	}

	mu, phi := toInternalScale(p.Rating, p.Deviation)

	var sumG2E float64
	var sumGSE float64
	for _, r := range results {
		muOpp, phiOpp := toInternalScale(r.Opponent.Rating, r.Opponent.Deviation)
		g := gFactor(phiOpp)
		e := expectedScore(mu, muOpp, phiOpp)
		sumG2E += g * g * e * (1.0 - e)
		sumGSE += g * (r.Score - e)
	}
	v := 1.0 / (glickoQ * glickoQ * sumG2E)
	delta := v * glickoQ * sumGSE

	if math.Abs(delta) < 1e-12 {
		phiStar := math.Sqrt(phi*phi + p.Volatility*p.Volatility)
		phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
		muNew := mu + phiNew*phiNew*glickoQ*sumGSE
		p.Rating, p.Deviation = fromInternalScale(muNew, phiNew)
		p.Games++
		return
	}

	newVolatility := solveVolatility(delta, phi, v, p.Volatility, tau)
	phiStar := math.Sqrt(phi*phi + newVolatility*newVolatility)
	phiNew := 1.0 / math.Sqrt(1.0/(phiStar*phiStar)+1.0/v)
	muNew := mu + phiNew*phiNew*glickoQ*sumGSE

	p.Rating, p.Deviation = fromInternalScale(muNew, phiNew)
	p.Volatility = newVolatility
	p.Games++
}

// solveVolatility finds the new volatility via the Illinois-style root
// finder over the paper's f(x).
func solveVolatility(delta, phi, v, volatility, tau float64) float64 {
	a := math.Log(volatility * volatility)
	f := func(x float64) float64 {
		ex := math.Exp(x)
		num := ex * (delta*delta - phi*phi - v - ex)
		den := 2.0 * (phi*phi + v + ex) * (phi*phi + v + ex)
		return num/den - (x-a)/(tau*tau)
	}

	lower := a
	var upper float64
	if delta*delta > phi*phi+v {
		upper = math.Log(delta*delta - phi*phi - v)
	} else {
		k := 1.0
		for f(a-k) < 0 && k < 1e6 {
			k *= 2.0
		}
		upper = a - k
	}

	fLower := f(lower)
	fUpper := f(upper)
	for i := 0; i < maxIterations && math.Abs(upper-lower) > convergenceTolerance; i++ {
		c := lower + (lower-upper)*fLower/(fUpper-fLower)
		fc := f(c)
		if math.IsNaN(fc) || math.IsInf(fc, 0) {
			break
		}
		if fc*fUpper < 0 {
			lower = upper
			fLower = fUpper
		}
		upper = c
		fUpper = fc
	}

	return math.Exp(upper / 2.0)
}
