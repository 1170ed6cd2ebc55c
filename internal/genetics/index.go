package genetics

import (
	"fmt"
	"math"
)

const indexRadix = 3

// LookupIndex encodes an all-Mendelian genotype as a base-3 number with
// position 0 as the most significant digit. The second result is false when
// any gene is not Mendelian or the value does not fit in an int; callers
// treat that as "no index", not as a failure.
func (g Genotype) LookupIndex() (int, bool) {
	index := 0
	for _, gene := range g.genes {
		state, ok := gene.Mendelian()
		if !ok {
			return 0, false
		}
		if index > (math.MaxInt-int(HomozygousDominant))/indexRadix {
			return 0, false
		}
		index = index*indexRadix + int(state)
	}
	return index, true
}

// IndexSpace is 3^length, the number of distinct lookup indices for an
// all-Mendelian print of that length.
func IndexSpace(length int) (int, error) {
	if length < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrIndexRange, length)
	}
	space := 1
	for i := 0; i < length; i++ {
		if space > math.MaxInt/indexRadix {
			return 0, fmt.Errorf("%w: length %d overflows", ErrIndexRange, length)
		}
		space *= indexRadix
	}
	return space, nil
}

// GenotypeFromIndex is the inverse of LookupIndex for an all-Mendelian
// print of the given length.
func GenotypeFromIndex(length, index int) (Genotype, error) {
	space, err := IndexSpace(length)
	if err != nil {
		return Genotype{}, err
	}
	if index < 0 || index >= space {
		return Genotype{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexRange, index, space)
	}
	genes := make([]Gene, length)
	for i := length - 1; i >= 0; i-- {
		genes[i] = MendelianGene(MendelianState(index % indexRadix))
		index /= indexRadix
	}
	return Genotype{genes: genes}, nil
}
