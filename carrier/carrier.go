// Package carrier decides which frequency bins carry modulated data, and in
// what order.
//
// A plan is a named, deterministic algorithm over the usable bin range: DC and
// Nyquist are always excluded, and the ordered result is a pure function of
// (n, seed, plan). Fixed plans have a seed-independent length; the auto plan
// takes a caller-chosen count. Determinism here is load-bearing: the decoder
// reruns the same selection to find the encoder's bins.
package carrier

import (
	"sort"

	"github.com/phasorlab/spectral/rng"
)

// Plan names a carrier-bin selection algorithm.
type Plan string

const (
	// Auto shuffles the candidate bins and takes the first count needed,
	// sorted ascending. Capacity is the whole candidate range.
	Auto Plan = "auto"

	// Pentad7 selects 49 bins as seven groups of seven, each group sorted
	// ascending, concatenated group by group.
	Pentad7 Plan = "pentad7"

	// Pentad7Plus1 is Pentad7 with one extra bin from the remainder,
	// maximizing its minimum distance to the 49, prepended.
	Pentad7Plus1 Plan = "pentad7+1"

	// Merkaba125 selects 125 bins sorted ascending, laid into a 5x5x5 cube
	// and flattened by nested (u, v, w) iteration.
	Merkaba125 Plan = "merkaba125"

	// Merkaba125Plus3 is Merkaba125 with three greedily chosen anchor bins
	// prepended in selection order.
	Merkaba125Plus3 Plan = "merkaba125+3"
)

// DetectOrder is the fixed priority order used when decoding without a known
// plan. The order is observable behavior: the first plan whose checksum
// matches wins, so it must not change between releases.
var DetectOrder = []Plan{Auto, Pentad7, Pentad7Plus1, Merkaba125, Merkaba125Plus3}

// Shuffle-seed perturbations per plan family.
const (
	autoXOR  uint32 = 0xA5A5A5A5
	groupXOR uint32 = 0x7E571DEE
)

// Capacity returns the fixed bin count of plan. Auto has no fixed capacity
// and reports 0.
func Capacity(plan Plan) (int, error) {
	switch plan {
	case Auto:
		return 0, nil
	case Pentad7:
		return 49, nil
	case Pentad7Plus1:
		return 50, nil
	case Merkaba125:
		return 125, nil
	case Merkaba125Plus3:
		return 128, nil
	default:
		return 0, &UnknownPlanError{Name: string(plan)}
	}
}

// Valid reports whether plan names a known selection algorithm.
func Valid(plan Plan) bool {
	_, err := Capacity(plan)
	return err == nil
}

// CandidateCount returns how many usable carrier bins an n-sample vector
// offers. It equals the auto plan's capacity.
func CandidateCount(n int) int {
	return upperBin(n)
}

// upperBin returns the highest usable bin index for an n-sample vector:
// n/2-1 for even n, n/2 for odd n. DC (0) and the even-n Nyquist bin never
// carry data.
func upperBin(n int) int {
	if n%2 == 0 {
		return n/2 - 1
	}
	return n / 2
}

// shuffled returns the candidate bins 1..upper in Fisher-Yates order driven
// by a generator seeded with seed XOR xor.
func shuffled(n int, seed, xor uint32) []int {
	upper := upperBin(n)
	if upper < 1 {
		return nil
	}

	cands := make([]int, upper)
	for i := range cands {
		cands[i] = i + 1
	}

	r := rng.New(seed ^ xor)
	for i := len(cands) - 1; i > 0; i-- {
		j := r.Uint32n(i + 1)
		cands[i], cands[j] = cands[j], cands[i]
	}

	return cands
}

// Select returns the ordered carrier bins for (n, seed, plan). For Auto,
// count is the number of bins wanted; fixed plans ignore it and return their
// full sequence.
func Select(n int, seed uint32, plan Plan, count int) ([]int, error) {
	switch plan {
	case Auto:
		return selectAuto(n, seed, count)
	case Pentad7:
		return selectPentad7(n, seed, false)
	case Pentad7Plus1:
		return selectPentad7(n, seed, true)
	case Merkaba125:
		return selectMerkaba125(n, seed, false)
	case Merkaba125Plus3:
		return selectMerkaba125(n, seed, true)
	default:
		return nil, &UnknownPlanError{Name: string(plan)}
	}
}

func selectAuto(n int, seed uint32, count int) ([]int, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	cands := shuffled(n, seed, autoXOR)
	if count > len(cands) {
		return nil, &CapacityError{Needed: count, Available: len(cands)}
	}

	bins := append([]int(nil), cands[:count]...)
	sort.Ints(bins)
	return bins, nil
}

func selectPentad7(n int, seed uint32, plusOne bool) ([]int, error) {
	need := 49
	if plusOne {
		need = 50
	}

	cands := shuffled(n, seed, groupXOR)
	if len(cands) < need {
		return nil, &CapacityError{Needed: need, Available: len(cands)}
	}

	bins := make([]int, 0, need)
	for g := 0; g < 7; g++ {
		group := append([]int(nil), cands[g*7:(g+1)*7]...)
		sort.Ints(group)
		bins = append(bins, group...)
	}

	if !plusOne {
		return bins, nil
	}

	extra, _ := farthest(cands[49:], bins)
	return append([]int{extra}, bins...), nil
}

func selectMerkaba125(n int, seed uint32, plusThree bool) ([]int, error) {
	need := 125
	if plusThree {
		need = 128
	}

	cands := shuffled(n, seed, groupXOR)
	if len(cands) < need {
		return nil, &CapacityError{Needed: need, Available: len(cands)}
	}

	base := append([]int(nil), cands[:125]...)
	sort.Ints(base)

	// Lay the sorted bins into a 5x5x5 cube and flatten it by nested
	// (u, v, w) iteration, mirroring the documented layout.
	var cube [5][5][5]int
	idx := 0
	for u := 0; u < 5; u++ {
		for v := 0; v < 5; v++ {
			for w := 0; w < 5; w++ {
				cube[u][v][w] = base[idx]
				idx++
			}
		}
	}
	bins := make([]int, 0, need)
	for u := 0; u < 5; u++ {
		for v := 0; v < 5; v++ {
			for w := 0; w < 5; w++ {
				bins = append(bins, cube[u][v][w])
			}
		}
	}

	if !plusThree {
		return bins, nil
	}

	remainder := append([]int(nil), cands[125:]...)
	chosen := append([]int(nil), bins...)
	anchors := make([]int, 0, 3)
	for a := 0; a < 3; a++ {
		best, at := farthest(remainder, chosen)
		anchors = append(anchors, best)
		chosen = append(chosen, best)
		remainder = append(remainder[:at], remainder[at+1:]...)
	}

	return append(anchors, bins...), nil
}

// farthest picks the candidate maximizing its minimum absolute distance to
// the chosen bins. Candidates are scanned in order and only a strictly
// greater distance displaces the current best, keeping the pick
// deterministic.
func farthest(candidates, chosen []int) (value, index int) {
	bestDist := -1
	for i, c := range candidates {
		minDist := int(^uint(0) >> 1)
		for _, b := range chosen {
			d := c - b
			if d < 0 {
				d = -d
			}
			if d < minDist {
				minDist = d
			}
		}
		if minDist > bestDist {
			bestDist = minDist
			value = c
			index = i
		}
	}
	return value, index
}
