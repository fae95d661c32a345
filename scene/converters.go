package scene

import (
	"log"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// QvecToRotMat converts a unit quaternion in (w, x, y, z) order to the
// equivalent 3x3 rotation matrix. The input must be normalized; the result is
// only a rotation when it is.
func QvecToRotMat(qvec []float64) *mat.Dense {
	w, x, y, z := qvec[0], qvec[1], qvec[2], qvec[3]
	return mat.NewDense(3, 3, []float64{
		1 - 2*y*y - 2*z*z, 2*x*y - 2*w*z, 2*z*x + 2*w*y,
		2*x*y + 2*w*z, 1 - 2*x*x - 2*z*z, 2*y*z - 2*w*x,
		2*z*x - 2*w*y, 2*y*z + 2*w*x, 1 - 2*x*x - 2*y*y,
	})
}

// RotMatToQvec converts a rotation matrix to a unit quaternion in (w, x, y, z)
// order. The quaternion is the largest-eigenvalue eigenvector of the symmetric
// K matrix built from R, which keeps the conversion stable for rotations near
// the 180-degree singularities of the direct formulas. The sign is normalized
// so that w >= 0.
func RotMatToQvec(r mat.Matrix) []float64 {
	rxx, rxy, rxz := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	ryx, ryy, ryz := r.At(1, 0), r.At(1, 1), r.At(1, 2)
	rzx, rzy, rzz := r.At(2, 0), r.At(2, 1), r.At(2, 2)

	k := mat.NewSymDense(4, nil)
	k.SetSym(0, 0, (rxx-ryy-rzz)/3)
	k.SetSym(0, 1, (ryx+rxy)/3)
	k.SetSym(0, 2, (rzx+rxz)/3)
	k.SetSym(0, 3, (ryz-rzy)/3)
	k.SetSym(1, 1, (ryy-rxx-rzz)/3)
	k.SetSym(1, 2, (rzy+ryz)/3)
	k.SetSym(1, 3, (rzx-rxz)/3)
	k.SetSym(2, 2, (rzz-rxx-ryy)/3)
	k.SetSym(2, 3, (rxy-ryx)/3)
	k.SetSym(3, 3, (rxx+ryy+rzz)/3)

	var eig mat.EigenSym
	if ok := eig.Factorize(k, true); !ok {
		log.Fatal("failed to factorize K")
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	largest := 0
	for i, v := range values {
		if v > values[largest] {
			largest = i
		}
	}

	// Eigenvector components are stored (x, y, z, w); reorder to (w, x, y, z).
	qvec := []float64{
		vectors.At(3, largest),
		vectors.At(0, largest),
		vectors.At(1, largest),
		vectors.At(2, largest),
	}
	if qvec[0] < 0 {
		for i := range qvec {
			qvec[i] = -qvec[i]
		}
	}
	return qvec
}

// RotationMatrix returns the direction-cosine matrix of the image pose.
func (im Image) RotationMatrix() *mat.Dense {
	return QvecToRotMat(im.Qvec)
}

// Quaternion returns the pose rotation as a gonum quaternion.
func (im Image) Quaternion() quat.Number {
	return quat.Number{Real: im.Qvec[0], Imag: im.Qvec[1], Jmag: im.Qvec[2], Kmag: im.Qvec[3]}
}
