package stats

import (
	"errors"
	"fmt"
	"sort"

	"bloomcross/internal/model"
)

var ErrImpossibleOutcome = errors.New("observed outcome has zero expected probability")

// Fit compares sampled counts with an exact offspring distribution.
type Fit struct {
	Draws            int     `json:"draws"`
	ChiSquare        float64 `json:"chi_square"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	// MaxDeviation is the largest absolute gap between a share and its
	// expected probability.
	MaxDeviation float64 `json:"max_deviation"`
	Missing      []string `json:"missing,omitempty"`
}

// GoodnessOfFit computes Pearson's chi-square statistic of counts against
// expected. Expected outcomes never sampled are listed in Missing.
func GoodnessOfFit(counts []model.OutcomeCount, expected map[string]float64) (Fit, error) {
	draws := 0
	observed := make(map[string]int, len(counts))
	for _, c := range counts {
		if expected[c.Genotype] <= 0 {
			return Fit{}, fmt.Errorf("%w: %s", ErrImpossibleOutcome, c.Genotype)
		}
		observed[c.Genotype] += c.Count
		draws += c.Count
	}
	if draws == 0 {
		return Fit{}, errors.New("no draws to compare")
	}

	fit := Fit{Draws: draws}
	for genotype, p := range expected {
		if p <= 0 {
			continue
		}
		fit.DegreesOfFreedom++
		n := observed[genotype]
		if n == 0 {
			fit.Missing = append(fit.Missing, genotype)
		}
		e := p * float64(draws)
		diff := float64(n) - e
		fit.ChiSquare += diff * diff / e

		deviation := float64(n)/float64(draws) - p
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation > fit.MaxDeviation {
			fit.MaxDeviation = deviation
		}
	}
	if fit.DegreesOfFreedom > 0 {
		fit.DegreesOfFreedom--
	}
	sort.Strings(fit.Missing)
	return fit, nil
}
