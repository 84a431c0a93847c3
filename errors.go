package nefield

import (
	"github.com/galdata/nefield/internal/losint"
	"github.com/galdata/nefield/internal/params"
)

// Sentinel errors returned by Model construction and queries. Wrapped
// errors carry context; match with errors.Is.
var (
	// ErrConfiguration reports an invalid parameter table, catalog
	// entry, or construction option.
	ErrConfiguration = params.ErrConfiguration

	// ErrDomain reports a query outside the model's valid input range
	// (non-finite coordinates, latitude off the sphere, negative or
	// excessive distance).
	ErrDomain = losint.ErrDomain

	// ErrOutOfRange reports a target DM beyond the maximum reachable
	// along the requested ray.
	ErrOutOfRange = losint.ErrOutOfRange

	// ErrConvergence reports an inverse lookup that failed to bracket
	// its target on a finite profile.
	ErrConvergence = losint.ErrConvergence
)
