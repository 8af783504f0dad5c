package basis

import "github.com/katalvlaran/reflux/matrix"

// termKind tags the polynomial-identity case a (l, m) column falls into.
// The order of the constants is the order in which cases are tested.
type termKind int

const (
	// termEvenNu: nu even, the monomial x^(mu/2) y^(nu/2).
	termEvenNu termKind = iota
	// termZ: l == 1, m == 0, the bare z term.
	termZ
	// termEvenMu1: mu == 1 with even l, x^(l-2) y z.
	termEvenMu1
	// termOddMu1: mu == 1 with odd l, x^(l-3) z.
	termOddMu1
	// termGeneral: every remaining odd-nu term.
	termGeneral
)

// String implements fmt.Stringer.
func (k termKind) String() string {
	switch k {
	case termEvenNu:
		return "even-nu"
	case termZ:
		return "z"
	case termEvenMu1:
		return "even-l-mu1"
	case termOddMu1:
		return "odd-l-mu1"
	case termGeneral:
		return "general"
	}

	return "unknown"
}

// classify returns the case for degree l and order m.
func classify(l, m int) termKind {
	mu, nu := l-m, l+m
	switch {
	case nu%2 == 0:
		return termEvenNu
	case l == 1 && m == 0:
		return termZ
	case mu == 1 && l%2 == 0:
		return termEvenMu1
	case mu == 1 && l%2 == 1:
		return termOddMu1
	default:
		return termGeneral
	}
}

// columnEntries returns the non-zero entries of column n, the column that
// belongs to (l, m). All divisions are exact.
func columnEntries(l, m, n int) []matrix.Triplet {
	mu, nu := l-m, l+m
	at := func(row, val int) matrix.Triplet {
		return matrix.Triplet{Row: row, Col: n, Val: float64(val)}
	}

	switch classify(l, m) {
	case termEvenNu:
		return []matrix.Triplet{at(n, (mu+2)/2)}
	case termZ:
		return []matrix.Triplet{at(n, 1)}
	case termEvenMu1:
		return []matrix.Triplet{at(l*l+3, 3)}
	case termOddMu1:
		return []matrix.Triplet{
			at(1+(l-2)*(l-2), -1), // x^(l-3) z
			at(l*l+1, 1),          // x^(l-1) z
			at(l*l+5, 4),          // x^(l-3) y^2 z
		}
	}

	// termGeneral
	out := make([]matrix.Triplet, 0, 3)
	if mu != 3 {
		out = append(out,
			at(nu+((mu-4+nu)*(mu-4+nu))/4, (mu-3)/2), // x^((mu-5)/2) y^((nu-1)/2)
			at(nu+4+((mu+nu)*(mu+nu))/4, -(mu-3)/2),  // x^((mu-5)/2) y^((nu+3)/2)
		)
	}

	return append(out, at(nu+(mu+nu)*(mu+nu)/4, -(mu+3)/2)) // x^((mu-1)/2) y^((nu-1)/2)
}

// Rule lists every entry of A2InvFull for a surface map of degree ydeg:
// columns n = 0..N2-1 in (l, m) order with l in [0, ydeg+1] and m in [-l, l].
// The result is deterministic. ydeg must be non-negative.
func Rule(ydeg int) []matrix.Triplet {
	n2 := Size(ydeg + 1)
	out := make([]matrix.Triplet, 0, n2+n2/2)
	var l, m, n int
	for l = 0; l < ydeg+2; l++ {
		for m = -l; m < l+1; m++ {
			out = append(out, columnEntries(l, m, n)...)
			n++
		}
	}

	return out
}

// Size returns (deg+1)², the number of terms in the degree-deg basis.
func Size(deg int) int {
	return (deg + 1) * (deg + 1)
}
