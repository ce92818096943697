package stats

import (
	"errors"
	"fmt"
)

// ErrNoNumericColumns indicates the dataset has too few numeric columns for
// the requested computation.
var ErrNoNumericColumns = errors.New("no numeric columns to analyze")

// ColumnNotFoundError indicates a referenced column is absent from the dataset.
type ColumnNotFoundError struct {
	Column string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in dataset", e.Column)
}

// InsufficientColumnsError indicates an analysis received fewer columns than
// it requires.
type InsufficientColumnsError struct {
	Need, Got int
}

func (e *InsufficientColumnsError) Error() string {
	return fmt.Sprintf("at least %d columns are required, got %d", e.Need, e.Got)
}

// ShapeError indicates two series that must align by row have different lengths.
type ShapeError struct {
	LenTrue, LenPred int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("length mismatch: %d true values vs %d predictions", e.LenTrue, e.LenPred)
}

// FitError indicates a regression fit could not be computed.
type FitError struct {
	Reason string
	Err    error
}

func (e *FitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fit failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fit failed: %s", e.Reason)
}

func (e *FitError) Unwrap() error { return e.Err }
