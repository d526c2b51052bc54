package atoms

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 is a Cartesian vector in Angstrom.
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns s*v.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{s * v[0], s * v[1], s * v[2]} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Cell is a periodic cell given as three row vectors in Angstrom.
type Cell [3]Vec3

// Volume returns the absolute value of the cell determinant.
func (c Cell) Volume() float64 {
	m := mat.NewDense(3, 3, []float64{
		c[0][0], c[0][1], c[0][2],
		c[1][0], c[1][1], c[1][2],
		c[2][0], c[2][1], c[2][2],
	})
	return math.Abs(mat.Det(m))
}

// CartesianFromFractional maps fractional coordinates onto Cartesian space.
func (c Cell) CartesianFromFractional(f Vec3) Vec3 {
	return c[0].Scale(f[0]).Add(c[1].Scale(f[1])).Add(c[2].Scale(f[2]))
}

// FractionalFromCartesian maps a Cartesian vector onto fractional
// coordinates by solving against the cell row vectors. A singular cell
// yields a zero vector.
func (c Cell) FractionalFromCartesian(v Vec3) Vec3 {
	// cart = f0*row0 + f1*row1 + f2*row2, so solve transpose(cell) * f = v.
	m := mat.NewDense(3, 3, []float64{
		c[0][0], c[1][0], c[2][0],
		c[0][1], c[1][1], c[2][1],
		c[0][2], c[1][2], c[2][2],
	})
	b := mat.NewVecDense(3, []float64{v[0], v[1], v[2]})
	var f mat.VecDense
	if err := f.SolveVec(m, b); err != nil {
		return Vec3{}
	}
	return Vec3{f.AtVec(0), f.AtVec(1), f.AtVec(2)}
}

// EulerRotate rotates every site about center using the zxz Euler convention:
// phi about the z axis, theta about the x axis, then psi about the z axis.
// Angles are in degrees.
func (a *Atoms) EulerRotate(phi, theta, psi float64, center Vec3) {
	d := rotationZ(phi)
	c := rotationX(theta)
	b := rotationZ(psi)

	var cd, r mat.Dense
	cd.Mul(c, d)
	r.Mul(b, &cd)
	a.applyRotation(&r, center)
}

// RotateAxis rotates every site by angleDeg about the given axis through
// center. The axis need not be normalized.
func (a *Atoms) RotateAxis(axis Vec3, angleDeg float64, center Vec3) {
	a.applyRotation(rotationAxis(axis, angleDeg), center)
}

func (a *Atoms) applyRotation(r mat.Matrix, center Vec3) {
	p := mat.NewVecDense(3, nil)
	var q mat.VecDense
	for i := range a.positions {
		rel := a.positions[i].Sub(center)
		p.SetVec(0, rel[0])
		p.SetVec(1, rel[1])
		p.SetVec(2, rel[2])
		q.MulVec(r, p)
		a.positions[i] = Vec3{q.AtVec(0), q.AtVec(1), q.AtVec(2)}.Add(center)
	}
}

func rotationZ(angleDeg float64) *mat.Dense {
	s, c := math.Sincos(angleDeg * math.Pi / 180)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func rotationX(angleDeg float64) *mat.Dense {
	s, c := math.Sincos(angleDeg * math.Pi / 180)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// rotationAxis builds the Rodrigues rotation matrix for angleDeg about axis.
func rotationAxis(axis Vec3, angleDeg float64) *mat.Dense {
	n := axis.Norm()
	if n == 0 {
		// Degenerate axis rotates nothing.
		return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	}
	u := axis.Scale(1 / n)
	s, c := math.Sincos(angleDeg * math.Pi / 180)
	ic := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + u[0]*u[0]*ic, u[0]*u[1]*ic - u[2]*s, u[0]*u[2]*ic + u[1]*s,
		u[1]*u[0]*ic + u[2]*s, c + u[1]*u[1]*ic, u[1]*u[2]*ic - u[0]*s,
		u[2]*u[0]*ic - u[1]*s, u[2]*u[1]*ic + u[0]*s, c + u[2]*u[2]*ic,
	})
}
