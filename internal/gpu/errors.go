package gpu

import (
	"errors"
	"fmt"
)

// GPU errors.
var (
	// ErrNilDevice is returned when a synchronizer or renderer is created
	// without a device or queue.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrProviderNotHAL is returned when a host device provider does not
	// expose hal.Device and hal.Queue.
	ErrProviderNotHAL = errors.New("gpu: provider does not expose HAL device")

	// ErrOutOfMemory is returned when a buffer cannot be (re)allocated.
	ErrOutOfMemory = errors.New("gpu: buffer allocation failed")

	// ErrDeviceLost is returned when command encoding, submission or the
	// completion wait fails.
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrSurfaceLost is returned when the frame target is missing or
	// unusable. The host should reconfigure the surface and retry.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrTooManyPoints is returned by AddPoint once the node limit is reached.
	ErrTooManyPoints = errors.New("gpu: too many points")

	// ErrDestroyed is returned when using a destroyed synchronizer.
	ErrDestroyed = errors.New("gpu: synchronizer destroyed")
)

// Severity says how the render loop must react to an error.
type Severity int

const (
	// SeverityNone means no error.
	SeverityNone Severity = iota
	// SeverityRecoverable means skip the frame or input and carry on.
	SeverityRecoverable
	// SeverityFatal means end the session.
	SeverityFatal
)

// String returns the string representation of Severity.
func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "None"
	case SeverityRecoverable:
		return "Recoverable"
	case SeverityFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Classify maps an error to the severity the render loop acts on.
// Errors this package does not know are fatal.
func Classify(err error) Severity {
	switch {
	case err == nil:
		return SeverityNone
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrTooManyPoints):
		return SeverityRecoverable
	default:
		return SeverityFatal
	}
}
