package genetics

// MendelianState is a diploid pair of binary alleles (A/a), order-insensitive.
type MendelianState uint8

const (
	HomozygousRecessive MendelianState = iota
	Heterozygous
	HomozygousDominant
)

func (s MendelianState) Valid() bool {
	return s <= HomozygousDominant
}

func (s MendelianState) String() string {
	switch s {
	case HomozygousRecessive:
		return "homozygous-recessive"
	case Heterozygous:
		return "heterozygous"
	case HomozygousDominant:
		return "homozygous-dominant"
	default:
		return "invalid"
	}
}

// alleles returns the pair; true marks the dominant allele.
func (s MendelianState) alleles() [2]bool {
	switch s {
	case HomozygousRecessive:
		return [2]bool{false, false}
	case Heterozygous:
		return [2]bool{true, false}
	default:
		return [2]bool{true, true}
	}
}

func mendelianFromAlleles(pair [2]bool) MendelianState {
	switch {
	case pair[0] && pair[1]:
		return HomozygousDominant
	case !pair[0] && !pair[1]:
		return HomozygousRecessive
	default:
		return Heterozygous
	}
}

func crossMendelian(rng Source, a, b MendelianState) MendelianState {
	fromA := a.alleles()[rng.Intn(2)]
	fromB := b.alleles()[rng.Intn(2)]
	return mendelianFromAlleles([2]bool{fromA, fromB})
}

func mendelianOutcomes(a, b MendelianState) []GeneOutcome {
	pa, pb := a.alleles(), b.alleles()
	outcomes := make([]GeneOutcome, 0, 4)
	for _, x := range pa {
		for _, y := range pb {
			outcomes = append(outcomes, GeneOutcome{
				Gene:        MendelianGene(mendelianFromAlleles([2]bool{x, y})),
				Probability: 0.25,
			})
		}
	}
	return mergeGeneOutcomes(outcomes)
}
