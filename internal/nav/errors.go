package nav

import "errors"

// Fatal conditions per the error taxonomy: configuration errors abort a run
// before any stage executes, empty inputs abort before precompute/export.
var (
	ErrNoSurface     = errors.New("nav: no surface sampler configured")
	ErrNoBounds      = errors.New("nav: no bounds provider configured")
	ErrNoPOIRegistry = errors.New("nav: no POI registry configured")
	ErrNoWaypoints   = errors.New("nav: surface produced no waypoints")
	ErrNoPOIs        = errors.New("nav: POI registry is empty")
	ErrEmptyDataset  = errors.New("nav: dataset has no waypoints or POIs")
)
