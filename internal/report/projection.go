package report

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/rmartinez-edu/enrollcast/internal/models"
)

var ErrInvalidTrials = errors.New("simulation trials must be >= 1")

// DefaultTrials es el número de iteraciones cuando el llamador no pide otro.
const DefaultTrials = 10000

const (
	cplStdFraction  = 0.15 // dispersión del CPL simulado alrededor de la media
	rateStdFraction = 0.30 // dispersión de la tasa de conversión (beta)
	fallbackRateStd = 0.02 // normal truncada cuando la tasa está en los extremos
)

var goalThresholds = []float64{0.8, 0.9, 1.0, 1.1, 1.2}

// Project corre la simulación Monte Carlo de cierre de campaña. El rng es
// explícito: el llamador lo siembra (rand.New(rand.NewSource(seed))) para
// corridas reproducibles. La memoria es O(trials) por la muestra retenida.
func Project(m models.Metrics, remainingBudget float64, trials int, rng *rand.Rand) (models.Projection, error) {
	if trials < 1 {
		return models.Projection{}, ErrInvalidTrials
	}
	if remainingBudget < 0 {
		remainingBudget = 0
	}

	rateMean := m.ConversionRatePct / 100
	cplMean := m.AverageCPL

	leads := make([]float64, trials)
	enrolls := make([]float64, trials)

	for i := 0; i < trials; i++ {
		// CPL normal ±15%; con cplMean == 0 la desviación también es 0 y el
		// clamp a 1 evita la división por cero.
		cpl := rng.NormFloat64()*cplMean*cplStdFraction + cplMean
		if cpl < 1 {
			cpl = 1
		}
		leads[i] = remainingBudget / cpl

		var rate float64
		if rateMean > 0 && rateMean < 1 {
			variance := (rateMean * rateStdFraction) * (rateMean * rateStdFraction)
			total := rateMean*(1-rateMean)/variance - 1
			alpha := math.Max(0.1, rateMean*total)
			beta := math.Max(0.1, (1-rateMean)*total)
			rate = betaSample(rng, alpha, beta)
		} else {
			rate = rng.NormFloat64()*fallbackRateStd + rateMean
			if rate < 0.001 {
				rate = 0.001
			}
			if rate > 0.999 {
				rate = 0.999
			}
		}
		enrolls[i] = leads[i] * rate
	}

	leadsMean, leadsStd := meanStd(leads)
	enrollMean, enrollStd := meanStd(enrolls)
	pcts := percentiles(enrolls, []float64{5, 25, 50, 75, 95})

	p := models.Projection{
		LeadsProjected:    int(math.Round(leadsMean)),
		LeadsProjectedStd: leadsStd,
		EnrollmentsP5:     int(pcts[0]),
		EnrollmentsQ1:     int(pcts[1]),
		EnrollmentsMedian: int(pcts[2]),
		EnrollmentsQ3:     int(pcts[3]),
		EnrollmentsP95:    int(pcts[4]),
		EnrollmentsMean:   int(enrollMean),
		EnrollmentsStd:    enrollStd,
		Sample:            enrolls,
	}

	// Con objetivo no positivo todas las probabilidades quedan en 0; nunca
	// se divide entre el objetivo.
	if m.TargetEnrollments > 0 {
		acc := float64(m.EnrollmentsAccumulated)
		target := float64(m.TargetEnrollments)
		probs := make([]float64, len(goalThresholds))
		for ti, thr := range goalThresholds {
			hits := 0
			for _, sim := range enrolls {
				if acc+sim >= target*thr {
					hits++
				}
			}
			probs[ti] = float64(hits) / float64(trials) * 100
		}
		p.ProbMeta80, p.ProbMeta90, p.ProbMeta100, p.ProbMeta110, p.ProbMeta120 =
			probs[0], probs[1], probs[2], probs[3], probs[4]
		p.ProjectedFulfillmentPct = (acc + enrollMean) / target * 100
	}

	return p, nil
}

func meanStd(xs []float64) (mean, std float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	std = math.Sqrt(std / float64(len(xs)))
	return mean, std
}

// percentiles con interpolación lineal sobre una copia ordenada.
func percentiles(xs []float64, ps []float64) []float64 {
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	out := make([]float64, len(ps))
	n := len(s)
	for i, p := range ps {
		if n == 1 {
			out[i] = s[0]
			continue
		}
		pos := p / 100 * float64(n-1)
		lo := int(math.Floor(pos))
		frac := pos - float64(lo)
		if lo+1 < n {
			out[i] = s[lo] + frac*(s[lo+1]-s[lo])
		} else {
			out[i] = s[lo]
		}
	}
	return out
}

// betaSample genera Beta(a,b) como cociente de dos gammas.
func betaSample(rng *rand.Rand, a, b float64) float64 {
	x := gammaSample(rng, a)
	y := gammaSample(rng, b)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// gammaSample implementa Marsaglia-Tsang; para shape < 1 usa el boost
// G(a) = G(a+1) * U^(1/a).
func gammaSample(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return gammaSample(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
