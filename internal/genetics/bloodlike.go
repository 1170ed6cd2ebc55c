package genetics

// Antigen is one allele of the ABO-like model.
type Antigen uint8

const (
	NoAntigen Antigen = iota
	AntigenA
	AntigenB
)

// BloodType is the six-valued state of a Bloodlike gene.
type BloodType uint8

const (
	HomozygousA BloodType = iota
	HeterozygousA
	HomozygousB
	HeterozygousB
	TypeAB
	TypeO
)

func (t BloodType) Valid() bool {
	return t <= TypeO
}

func (t BloodType) String() string {
	switch t {
	case HomozygousA:
		return "homozygous-a"
	case HeterozygousA:
		return "heterozygous-a"
	case HomozygousB:
		return "homozygous-b"
	case HeterozygousB:
		return "heterozygous-b"
	case TypeAB:
		return "ab"
	case TypeO:
		return "o"
	default:
		return "invalid"
	}
}

func (t BloodType) alleles() [2]Antigen {
	switch t {
	case HomozygousA:
		return [2]Antigen{AntigenA, AntigenA}
	case HeterozygousA:
		return [2]Antigen{AntigenA, NoAntigen}
	case HomozygousB:
		return [2]Antigen{AntigenB, AntigenB}
	case HeterozygousB:
		return [2]Antigen{AntigenB, NoAntigen}
	case TypeAB:
		return [2]Antigen{AntigenA, AntigenB}
	default:
		return [2]Antigen{NoAntigen, NoAntigen}
	}
}

// bloodTypeFromAlleles is order-insensitive. An antigen paired with
// NoAntigen resolves to the heterozygous label of that antigen.
func bloodTypeFromAlleles(pair [2]Antigen) BloodType {
	x, y := pair[0], pair[1]
	if x > y {
		x, y = y, x
	}
	switch {
	case x == AntigenA && y == AntigenA:
		return HomozygousA
	case x == AntigenB && y == AntigenB:
		return HomozygousB
	case x == AntigenA && y == AntigenB:
		return TypeAB
	case x == NoAntigen && y == NoAntigen:
		return TypeO
	case y == AntigenA:
		return HeterozygousA
	default:
		return HeterozygousB
	}
}

func crossBloodlike(rng Source, a, b BloodType) BloodType {
	fromA := a.alleles()[rng.Intn(2)]
	fromB := b.alleles()[rng.Intn(2)]
	return bloodTypeFromAlleles([2]Antigen{fromA, fromB})
}

func bloodlikeOutcomes(a, b BloodType) []GeneOutcome {
	pa, pb := a.alleles(), b.alleles()
	outcomes := make([]GeneOutcome, 0, 4)
	for _, x := range pa {
		for _, y := range pb {
			outcomes = append(outcomes, GeneOutcome{
				Gene:        BloodlikeGene(bloodTypeFromAlleles([2]Antigen{x, y})),
				Probability: 0.25,
			})
		}
	}
	return mergeGeneOutcomes(outcomes)
}
