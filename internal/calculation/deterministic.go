package calculation

import (
	"time"

	"github.com/google/uuid"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// runIDFunc mints the identifier stamped on every payroll run.
var runIDFunc = uuid.New

// SetRunIDFunc overrides the run ID provider (use only in tests).
func SetRunIDFunc(f func() uuid.UUID) { runIDFunc = f }
