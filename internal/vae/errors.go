package vae

import (
	"github.com/pkg/errors"
)

// ErrDiverged reports that a training step produced a non-finite loss.
// The step that detects it applies no parameter update and records no
// metrics; callers match it with errors.Is.
var ErrDiverged = errors.New("training diverged: loss is not finite")

// ErrConfig is the sentinel wrapped by every configuration error: shape
// mismatches between collaborators, invalid dimensions, empty datasets.
// Configuration errors are always detected before any parameter mutation.
var ErrConfig = errors.New("invalid configuration")

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// configErrorf wraps ErrConfig with call-site context.
func configErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrConfig, format, args...)
}
