package dragsort

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid drag configuration")

// Transform is the visual scale applied to a proxy. A terminal cell grid has
// no rotation or skew, so scaling is all that remains of an affine transform.
type Transform struct {
	ScaleX float64
	ScaleY float64
}

// IdentityTransform leaves the proxy at its natural size.
var IdentityTransform = Transform{ScaleX: 1, ScaleY: 1}

// Scale returns a transform scaling by sx horizontally and sy vertically.
func Scale(sx, sy float64) Transform {
	return Transform{ScaleX: sx, ScaleY: sy}
}

// IsIdentity reports whether t leaves its target unscaled.
func (t Transform) IsIdentity() bool {
	return t == IdentityTransform
}

// Config holds the tunables of a drag. It is read when a drag begins and may
// only be replaced while no drag is in progress.
type Config struct {
	// PickUpTransform is applied to the proxy while the row is lifted.
	PickUpTransform Transform
	// DepositTransform is the proxy's transform at the end of the drop.
	DepositTransform Transform
	// PickUpDuration is the length of the lift animation.
	PickUpDuration time.Duration
	// DepositDuration is the length of the drop animation.
	DepositDuration time.Duration
	// DraggingAlpha is the proxy opacity while it follows the pointer.
	DraggingAlpha float64
}

// DefaultConfig returns the configuration used by new controllers.
func DefaultConfig() Config {
	return Config{
		PickUpTransform:  Scale(1.05, 1.05),
		DepositTransform: IdentityTransform,
		PickUpDuration:   250 * time.Millisecond,
		DepositDuration:  250 * time.Millisecond,
		DraggingAlpha:    0.98,
	}
}

// Validate checks that durations are non-negative, scales are positive and
// the alpha lies in [0, 1].
func (c Config) Validate() error {
	if c.PickUpDuration < 0 {
		return fmt.Errorf("%w: negative pick-up duration %s", ErrInvalidConfig, c.PickUpDuration)
	}
	if c.DepositDuration < 0 {
		return fmt.Errorf("%w: negative deposit duration %s", ErrInvalidConfig, c.DepositDuration)
	}
	if c.DraggingAlpha < 0 || c.DraggingAlpha > 1 {
		return fmt.Errorf("%w: alpha %v outside [0, 1]", ErrInvalidConfig, c.DraggingAlpha)
	}
	for name, t := range map[string]Transform{"pick-up": c.PickUpTransform, "deposit": c.DepositTransform} {
		if t.ScaleX <= 0 || t.ScaleY <= 0 {
			return fmt.Errorf("%w: %s transform %vx%v must be positive", ErrInvalidConfig, name, t.ScaleX, t.ScaleY)
		}
	}
	return nil
}
