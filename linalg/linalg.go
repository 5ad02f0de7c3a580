// Package linalg provides the dense complex linear algebra needed for
// generator diagonalization: a general (non-Hermitian)
// eigendecomposition and a linear solve. gonum's solvers are
// real-only, so an n x n complex matrix A is handled through its
// 2n x 2n real embedding
//
//	J(A) = | Re(A)  -Im(A) |
//	       | Im(A)   Re(A) |
//
// whose spectrum is spec(A) together with its mirror image
// spec(conj(A)).
package linalg

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"

	"bitbucket.org/mrrlab/qevo/qobj"
)

// ErrNoConvergence is returned when the eigendecomposition fails.
var ErrNoConvergence = errors.New("linalg: eigendecomposition did not converge")

// ErrSingular is returned when a linear system is singular or too
// badly conditioned to solve.
var ErrSingular = errors.New("linalg: matrix is singular or badly conditioned")

// embed writes the real embedding of a, shifted by -i*sigma on the
// diagonal, into a 2n x 2n dense matrix.
func embed(a *qobj.Qobj, sigma float64) *mat.Dense {
	n := a.Rows()
	j := mat.NewDense(2*n, 2*n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := a.At(r, c)
			re, im := real(v), imag(v)
			if r == c {
				im -= sigma
			}
			j.Set(r, c, re)
			j.Set(r, n+c, -im)
			j.Set(n+r, c, im)
			j.Set(n+r, n+c, re)
		}
	}
	return j
}

// oneNorm returns the maximum absolute column sum, an upper bound on
// the spectral radius.
func oneNorm(a *qobj.Qobj) float64 {
	n := a.Rows()
	m := 0.0
	for c := 0; c < n; c++ {
		s := 0.0
		for r := 0; r < n; r++ {
			s += cmplx.Abs(a.At(r, c))
		}
		if s > m {
			m = s
		}
	}
	return m
}

// Eigen computes all eigenvalues and right eigenvectors of a general
// complex square matrix. It returns the eigenvalues w and a matrix v
// whose column i is a unit eigenvector for w[i]. No eigenvalue
// ordering is guaranteed.
//
// The matrix is first shifted by -i*sigma with sigma exceeding the
// spectral radius, so that in the real embedding the true spectrum
// (imaginary part < 0) and its mirror image (imaginary part > 0) lie
// in disjoint half-planes and the n true eigenpairs can be selected
// exactly.
func Eigen(a *qobj.Qobj) (w []complex128, v *qobj.Qobj, err error) {
	n := a.Rows()
	if n != a.Cols() {
		return nil, nil, fmt.Errorf("linalg: eigendecomposition of a non-square %dx%d matrix", n, a.Cols())
	}
	sigma := oneNorm(a) + 1

	var eig mat.Eigen
	if ok := eig.Factorize(embed(a, sigma), mat.EigenRight); !ok {
		return nil, nil, ErrNoConvergence
	}
	vals := eig.Values(nil)
	var vecs mat.CDense
	eig.VectorsTo(&vecs)

	// The n smallest imaginary parts are the shifted true spectrum.
	idx := make([]int, 2*n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return imag(vals[idx[i]]) < imag(vals[idx[j]])
	})

	w = make([]complex128, n)
	v = qobj.Zeros(qobj.Oper, n)
	x := make([]complex128, n)
	for i := 0; i < n; i++ {
		k := idx[i]
		w[i] = vals[k] + complex(0, sigma)
		// For an embedded eigenvector (a; b) of the true spectrum,
		// a + i*b is proportional to the complex eigenvector.
		nrm := 0.0
		for r := 0; r < n; r++ {
			x[r] = vecs.At(r, k) + complex(0, 1)*vecs.At(n+r, k)
			nrm += real(x[r])*real(x[r]) + imag(x[r])*imag(x[r])
		}
		nrm = math.Sqrt(nrm)
		if nrm == 0 {
			return nil, nil, ErrNoConvergence
		}
		for r := 0; r < n; r++ {
			v.Set(r, i, x[r]/complex(nrm, 0))
		}
	}
	return w, v, nil
}

// Solve solves the complex linear system a*x = b.
func Solve(a *qobj.Qobj, b []complex128) ([]complex128, error) {
	n := a.Rows()
	if n != a.Cols() {
		return nil, fmt.Errorf("linalg: solving a non-square %dx%d system", n, a.Cols())
	}
	if len(b) != n {
		return nil, fmt.Errorf("linalg: right-hand side length %d doesn't match dimension %d", len(b), n)
	}
	rhs := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, real(b[i]))
		rhs.SetVec(n+i, imag(b[i]))
	}
	var sol mat.VecDense
	if err := sol.SolveVec(embed(a, 0), rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	x := make([]complex128, n)
	for i := 0; i < n; i++ {
		x[i] = complex(sol.AtVec(i), sol.AtVec(n+i))
	}
	return x, nil
}
