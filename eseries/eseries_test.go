package eseries

import (
	"math"
	"math/cmplx"
	"testing"

	"bitbucket.org/mrrlab/qevo/qobj"
)

const (
	// smallDiff is a threshold for testing
	smallDiff = 1e-12
)

func TestValue(tst *testing.T) {
	// f(t) = e^{-t} + e^{it}, evaluated on 1x1 amplitudes
	one := qobj.NewKet([]complex128{1})
	es := New(
		Term{Ampl: one, Rate: -1},
		Term{Ampl: one, Rate: complex(0, 1)},
	)
	for _, t := range []float64{0, 0.5, 2} {
		want := cmplx.Exp(complex(-t, 0)) + cmplx.Exp(complex(0, t))
		got := es.Value(t).At(0, 0)
		if cmplx.Abs(want-got) > smallDiff {
			tst.Error("At t=", t, "expected", want, "got", got)
		}
	}
}

func TestValueAtZero(tst *testing.T) {
	a := qobj.NewKet([]complex128{1, 0})
	b := qobj.NewKet([]complex128{0, complex(0, 0.5)})
	es := New(
		Term{Ampl: a, Rate: complex(0, -3)},
		Term{Ampl: b, Rate: complex(-0.2, 1)},
	)
	// at t=0 the value is the plain amplitude sum
	if !es.Value(0).Equal(a.Add(b), smallDiff) {
		tst.Error("Value at 0 is not the amplitude sum")
	}
}

func TestTidy(tst *testing.T) {
	a := qobj.NewKet([]complex128{1})
	es := New(
		Term{Ampl: a, Rate: 1},
		Term{Ampl: a, Rate: 1 + 1e-14},
		Term{Ampl: a, Rate: 2},
	)
	tidied := es.Tidy(1e-10)
	if tidied.Len() != 2 {
		tst.Fatal("Expected 2 terms after tidy, got", tidied.Len())
	}
	// merging must not change the represented function
	for _, t := range []float64{0, 0.3, 1.7} {
		d := cmplx.Abs(es.Value(t).At(0, 0) - tidied.Value(t).At(0, 0))
		if d > smallDiff*math.Exp(2*t) {
			tst.Error("Tidy changed the function at t=", t, "diff=", d)
		}
	}
}

func TestAdd(tst *testing.T) {
	a := qobj.NewKet([]complex128{1})
	es := New(Term{Ampl: a, Rate: 1}).Add(New(Term{Ampl: a, Rate: 2}))
	if es.Len() != 2 {
		tst.Error("Expected 2 terms, got", es.Len())
	}
}
