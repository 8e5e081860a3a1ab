package linfit

import "fmt"

// Stage identifies the pipeline step that failed.
type Stage uint8

const (
	StageResolve Stage = iota + 1
	StageParse
	StageValidate
	StageSolve
)

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "resolution"
	case StageParse:
		return "parsing"
	case StageValidate:
		return "validation"
	case StageSolve:
		return "solving"
	default:
		return "unknown"
	}
}

// StageError tags a pipeline failure with its stage and, for per-series
// stages, the series concerned ("x" or "y").
type StageError struct {
	Stage  Stage
	Series string
	Err    error
}

func (e *StageError) Error() string {
	if e.Series != "" {
		return fmt.Sprintf("%s of series %s: %v", e.Stage, e.Series, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
