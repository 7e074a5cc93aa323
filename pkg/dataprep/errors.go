package dataprep

import (
	"errors"

	"salesfeat/pkg/frame"
)

var (
	// ErrNotFitted indicates Transform was called before Fit.
	ErrNotFitted = errors.New("dataprep: transformer is not fitted")
	// ErrInvalidMode indicates a mean-encoding mode other than train or test.
	ErrInvalidMode = errors.New("dataprep: invalid mode")
	// ErrZeroShift indicates a lag of zero months, which would copy the feature.
	ErrZeroShift = errors.New("dataprep: shift must be non-zero")
	// ErrMonthNotGrouped indicates a group aggregation whose keys lack the month column.
	ErrMonthNotGrouped = errors.New("dataprep: group keys must include the month column")
	// ErrNonFiniteKey indicates a NaN or infinite shop, item or month value.
	ErrNonFiniteKey = errors.New("dataprep: non-finite key value")
	// ErrMissingColumn indicates a required input column is absent.
	ErrMissingColumn = frame.ErrColumnNotFound
)
