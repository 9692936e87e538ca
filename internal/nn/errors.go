package nn

import "errors"

// Contract violations. They are returned wrapped with the offending sizes;
// test with errors.Is.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrArityMismatch     = errors.New("module arities do not chain")
	ErrTooFewModules     = errors.New("composition needs at least two modules")
	ErrNoForward         = errors.New("backward called before forward")
	ErrInvalidConfig     = errors.New("invalid network configuration")
)

// ErrSampleTypeMismatch is returned by Load when a record was trained on a
// different input element type than requested.
var ErrSampleTypeMismatch = errors.New("sample type mismatch")

// ErrUnsavableActivation is returned by Save and Encode when the network's
// activation is not the function activation.Lookup resolves its name to, so
// a saved record could not be loaded back.
var ErrUnsavableActivation = errors.New("activation cannot be restored from its name")
