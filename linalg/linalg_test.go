package linalg

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
	"testing"

	"bitbucket.org/mrrlab/qevo/qobj"
)

const (
	// smallDiff is a threshold for testing
	// if the residual is larger an error is emitted
	smallDiff = 1e-10
)

// residual returns max_i |A v_i - w_i v_i| over all eigenpairs.
func residual(a *qobj.Qobj, w []complex128, v *qobj.Qobj) float64 {
	n := a.Rows()
	m := 0.0
	for i := 0; i < n; i++ {
		for r := 0; r < n; r++ {
			var av complex128
			for c := 0; c < n; c++ {
				av += a.At(r, c) * v.At(c, i)
			}
			d := cmplx.Abs(av - w[i]*v.At(r, i))
			if d > m {
				m = d
			}
		}
	}
	return m
}

func sortedReal(w []complex128) []float64 {
	s := make([]float64, len(w))
	for i, v := range w {
		s[i] = real(v)
	}
	sort.Float64s(s)
	return s
}

func TestEigenPauliY(tst *testing.T) {
	sy := qobj.NewOper(2, []complex128{
		0, complex(0, -1),
		complex(0, 1), 0,
	})
	w, v, err := Eigen(sy)
	if err != nil {
		tst.Fatal("Error:", err)
	}
	vals := sortedReal(w)
	if math.Abs(vals[0]+1) > smallDiff || math.Abs(vals[1]-1) > smallDiff {
		tst.Error("Expected eigenvalues -1, 1, got", w)
	}
	for _, x := range w {
		if math.Abs(imag(x)) > smallDiff {
			tst.Error("Hermitian matrix with complex eigenvalue:", x)
		}
	}
	if r := residual(sy, w, v); r > smallDiff {
		tst.Error("Eigenpair residual too large:", r)
	}
}

// TestEigenNonNormal uses a non-normal complex matrix of the kind
// Liouvillians produce.
func TestEigenNonNormal(tst *testing.T) {
	a := qobj.NewOper(3, []complex128{
		complex(-0.1, 1), complex(0.5, -0.2), 0,
		0.3, complex(-0.4, -1), complex(0, 0.7),
		complex(0.1, 0.1), 0, complex(-0.9, 0.3),
	})
	w, v, err := Eigen(a)
	if err != nil {
		tst.Fatal("Error:", err)
	}
	if len(w) != 3 {
		tst.Fatal("Expected 3 eigenvalues, got", len(w))
	}
	if r := residual(a, w, v); r > smallDiff {
		tst.Error("Eigenpair residual too large:", r)
	}
}

// TestEigenConjugatePairs checks a real matrix whose complex spectrum
// is conjugate-symmetric, the case where the embedded spectrum is
// doubled and term selection matters.
func TestEigenConjugatePairs(tst *testing.T) {
	// rotation generator, eigenvalues ±i
	a := qobj.NewOper(2, []complex128{
		0, -1,
		1, 0,
	})
	w, v, err := Eigen(a)
	if err != nil {
		tst.Fatal("Error:", err)
	}
	im := []float64{imag(w[0]), imag(w[1])}
	sort.Float64s(im)
	if math.Abs(im[0]+1) > smallDiff || math.Abs(im[1]-1) > smallDiff {
		tst.Error("Expected eigenvalues ±i, got", w)
	}
	if r := residual(a, w, v); r > smallDiff {
		tst.Error("Eigenpair residual too large:", r)
	}
}

func TestSolveRoundTrip(tst *testing.T) {
	a := qobj.NewOper(2, []complex128{
		complex(1, 1), 2,
		complex(0, -1), complex(3, -2),
	})
	b := []complex128{complex(1, 2), complex(-0.5, 0)}
	x, err := Solve(a, b)
	if err != nil {
		tst.Fatal("Error:", err)
	}
	for i := 0; i < 2; i++ {
		var ax complex128
		for j := 0; j < 2; j++ {
			ax += a.At(i, j) * x[j]
		}
		if cmplx.Abs(ax-b[i]) > smallDiff {
			tst.Error("Solution residual too large:", ax, b[i])
		}
	}
}

func TestSolveSingular(tst *testing.T) {
	a := qobj.NewOper(2, []complex128{
		1, 2,
		2, 4,
	})
	_, err := Solve(a, []complex128{1, 1})
	if err == nil {
		tst.Error("Expected an error for a singular system")
	}
	if !errors.Is(err, ErrSingular) {
		tst.Error("Expected ErrSingular, got", err)
	}
}

func BenchmarkEigen(b *testing.B) {
	n := 16
	data := make([]complex128, n*n)
	for i := range data {
		// deterministic, non-normal fill
		data[i] = complex(float64((i*7)%13)-6, float64((i*5)%11)-5)
	}
	a := qobj.NewOper(n, data)
	for i := 0; i < b.N; i++ {
		if _, _, err := Eigen(a); err != nil {
			b.Fatal(err)
		}
	}
}
