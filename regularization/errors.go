package regularization

import "errors"

var (
	// ErrInvalidParameter rejects non-physical builder inputs, above all a
	// filter radius that is not strictly positive.
	ErrInvalidParameter = errors.New("invalid filter parameter")

	// ErrMeshShapeMismatch rejects structured meshes whose grid metadata
	// disagrees with the stored cell count.
	ErrMeshShapeMismatch = errors.New("grid shape mismatch")
)
