// Package eseries implements exponential series: finite sums of
// matrix-valued terms ampl * exp(rate * t). A series built from a
// diagonalized generator is the closed-form solution of the evolution
// and can be evaluated at arbitrary times without integration.
package eseries

import (
	"math/cmplx"

	"bitbucket.org/mrrlab/qevo/qobj"
)

// Term is one exponential term. Ampl carries the shape of the state
// the series represents; Rate is the complex exponent.
type Term struct {
	Ampl *qobj.Qobj
	Rate complex128
}

// ESeries is an ordered collection of exponential terms. Once tidied
// a series is never mutated, so it may be evaluated concurrently.
type ESeries struct {
	terms []Term
}

// New creates a series from a list of terms.
func New(terms ...Term) *ESeries {
	es := &ESeries{terms: make([]Term, len(terms))}
	copy(es.terms, terms)
	return es
}

// Len returns the number of terms.
func (es *ESeries) Len() int { return len(es.terms) }

// Terms returns the term slice. The slice is shared, not copied.
func (es *ESeries) Terms() []Term { return es.terms }

// Add returns the sum of two series (term concatenation; use Tidy to
// merge coinciding rates).
func (es *ESeries) Add(o *ESeries) *ESeries {
	n := &ESeries{terms: make([]Term, 0, len(es.terms)+len(o.terms))}
	n.terms = append(n.terms, es.terms...)
	n.terms = append(n.terms, o.terms...)
	return n
}

// Tidy returns a series where terms whose rates coincide within tol
// are merged by summing their amplitudes. The represented function is
// unchanged.
func (es *ESeries) Tidy(tol float64) *ESeries {
	n := &ESeries{terms: make([]Term, 0, len(es.terms))}
	for _, t := range es.terms {
		merged := false
		for i := range n.terms {
			if cmplx.Abs(n.terms[i].Rate-t.Rate) <= tol {
				n.terms[i].Ampl = n.terms[i].Ampl.Add(t.Ampl)
				merged = true
				break
			}
		}
		if !merged {
			n.terms = append(n.terms, Term{Ampl: t.Ampl.Copy(), Rate: t.Rate})
		}
	}
	return n
}

// Value evaluates the series at time t.
func (es *ESeries) Value(t float64) *qobj.Qobj {
	if len(es.terms) == 0 {
		panic("eseries: evaluating an empty series")
	}
	out := es.terms[0].Ampl.Scale(cmplx.Exp(es.terms[0].Rate * complex(t, 0)))
	for _, term := range es.terms[1:] {
		out = out.Add(term.Ampl.Scale(cmplx.Exp(term.Rate * complex(t, 0))))
	}
	return out
}

// ValueAt evaluates the series at every time in tlist.
func (es *ESeries) ValueAt(tlist []float64) []*qobj.Qobj {
	states := make([]*qobj.Qobj, len(tlist))
	for i, t := range tlist {
		states[i] = es.Value(t)
	}
	return states
}
