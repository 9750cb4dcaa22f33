// Copyright 2012 Luuk van Dijk. All Rights Reserved.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the LICENSE file.

// Package errs defines the error kinds shared across this module's
// components, per the propagation policy: CalibrationFailed is
// recoverable in-process (callers fall back to empirical physical
// limits); the rest carry enough context to diagnose and are surfaced
// whole.
package errs

import "fmt"

// GridMismatch indicates two Locations do not share identical grid
// parameters and cannot be intersected.
type GridMismatch struct {
	Reason string
}

func (e *GridMismatch) Error() string {
	return fmt.Sprintf("grid mismatch: %s", e.Reason)
}

// BadObservation indicates a calibration or ranging input matrix was
// ill-formed: wrong shape, every row infeasible, or no distinct
// distances to fit against.
type BadObservation struct {
	Reason string
}

func (e *BadObservation) Error() string {
	return fmt.Sprintf("bad observation data: %s", e.Reason)
}

// BadFile indicates a baseline or Location file is missing required
// attributes, or its matrix shape is inconsistent with its lon/lat
// vectors.
type BadFile struct {
	Path   string
	Reason string
}

func (e *BadFile) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("bad file %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("bad file: %s", e.Reason)
}

// CalibrationFailed indicates a calibration curve's optimizer did not
// converge. The calibration object must remain queryable and report
// this failure; it is recoverable by falling back to
// PhysicalLimitsOnly("empirical").
type CalibrationFailed struct {
	Reason string
}

func (e *CalibrationFailed) Error() string {
	return fmt.Sprintf("calibration failed: %s", e.Reason)
}

// DegenerateGeometry indicates a bounds polygon is invalid after
// antimeridian repair, or an observation polygon fails to contain its
// reference point and fails to invert sensibly.
type DegenerateGeometry struct {
	Reason string
}

func (e *DegenerateGeometry) Error() string {
	return fmt.Sprintf("degenerate geometry: %s", e.Reason)
}

// DegenerateCentroid indicates a weighted geocentric sum inverted to a
// non-finite longitude/latitude.
type DegenerateCentroid struct {
	Reason string
}

func (e *DegenerateCentroid) Error() string {
	return fmt.Sprintf("degenerate centroid: %s", e.Reason)
}
