package genetics

// DominanceLevel is the number of dominant alleles among the four
// independent binary alleles of a Quadruplet gene.
type DominanceLevel uint8

const (
	QuadHomozygousRecessive DominanceLevel = iota
	QuadMostlyRecessive
	QuadBalanced
	QuadMostlyDominant
	QuadHomozygousDominant
)

// quadrupletPairs lists every way to take 2 of the 4 alleles without replacement.
var quadrupletPairs = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

func (l DominanceLevel) Valid() bool {
	return l <= QuadHomozygousDominant
}

func (l DominanceLevel) String() string {
	switch l {
	case QuadHomozygousRecessive:
		return "homozygous-recessive"
	case QuadMostlyRecessive:
		return "mostly-recessive"
	case QuadBalanced:
		return "balanced"
	case QuadMostlyDominant:
		return "mostly-dominant"
	case QuadHomozygousDominant:
		return "homozygous-dominant"
	default:
		return "invalid"
	}
}

// DominantAlleles is the count of dominant alleles, 0 through 4.
func (l DominanceLevel) DominantAlleles() int {
	return int(l)
}

func (l DominanceLevel) alleles() [4]bool {
	var set [4]bool
	for i := 0; i < int(l) && i < len(set); i++ {
		set[i] = true
	}
	return set
}

func dominanceFromAlleles(set [4]bool) DominanceLevel {
	count := 0
	for _, dominant := range set {
		if dominant {
			count++
		}
	}
	return DominanceLevel(count)
}

func combineQuadruplet(a, b [4]bool, pairA, pairB [2]int) [4]bool {
	return [4]bool{a[pairA[0]], a[pairA[1]], b[pairB[0]], b[pairB[1]]}
}

func crossQuadruplet(rng Source, a, b DominanceLevel) DominanceLevel {
	pairA := quadrupletPairs[rng.Intn(len(quadrupletPairs))]
	pairB := quadrupletPairs[rng.Intn(len(quadrupletPairs))]
	return dominanceFromAlleles(combineQuadruplet(a.alleles(), b.alleles(), pairA, pairB))
}

func quadrupletOutcomes(a, b DominanceLevel) []GeneOutcome {
	sa, sb := a.alleles(), b.alleles()
	p := 1.0 / float64(len(quadrupletPairs)*len(quadrupletPairs))
	outcomes := make([]GeneOutcome, 0, len(quadrupletPairs)*len(quadrupletPairs))
	for _, pairA := range quadrupletPairs {
		for _, pairB := range quadrupletPairs {
			level := dominanceFromAlleles(combineQuadruplet(sa, sb, pairA, pairB))
			outcomes = append(outcomes, GeneOutcome{Gene: QuadrupletGene(level), Probability: p})
		}
	}
	return mergeGeneOutcomes(outcomes)
}
