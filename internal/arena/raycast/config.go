package raycast

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when caster configuration is out of range.
var ErrInvalidConfig = errors.New("invalid ray cast configuration")

// Config holds the sensor geometry. Angles are in radians.
type Config struct {
	MaxAnglePerSide float64
	RaysPerSide     int
	RayLength       float64
	RayWidth        float64 // side offset of the outer sub-rays
	FrontRayWidth   float64 // side offset for the 0° ray
	HitOffset       float64 // subtracted from every hit fraction before clamping
}

// Validate checks the configuration ranges.
func (c Config) Validate() error {
	if c.RaysPerSide < 1 {
		return fmt.Errorf("%w: rays_per_side must be >= 1, got %d", ErrInvalidConfig, c.RaysPerSide)
	}
	if !(c.MaxAnglePerSide > 0) || c.MaxAnglePerSide > math.Pi {
		return fmt.Errorf("%w: max_angle_per_side must be in (0, π], got %g", ErrInvalidConfig, c.MaxAnglePerSide)
	}
	if !(c.RayLength > 0) || math.IsInf(c.RayLength, 0) {
		return fmt.Errorf("%w: ray_length must be positive, got %g", ErrInvalidConfig, c.RayLength)
	}
	if !(c.RayWidth > 0) {
		return fmt.Errorf("%w: ray_width must be positive, got %g", ErrInvalidConfig, c.RayWidth)
	}
	if !(c.FrontRayWidth > 0) {
		return fmt.Errorf("%w: front_ray_width must be positive, got %g", ErrInvalidConfig, c.FrontRayWidth)
	}
	if c.HitOffset < 0 || c.HitOffset >= 1 {
		return fmt.Errorf("%w: hit_distance_offset must be in [0, 1), got %g", ErrInvalidConfig, c.HitOffset)
	}
	return nil
}

// RayAngles returns 2n+1 ray angles relative to the robot heading:
// -max … -max/n, 0, max/n … max, then reversed. The reversal matches the
// sector order the policy was trained with and must be kept.
func RayAngles(maxAngle float64, n int) []float64 {
	delta := maxAngle / float64(n)
	angles := make([]float64, 0, 2*n+1)
	for i := 0; i < n; i++ {
		angles = append(angles, -maxAngle+float64(i)*delta)
	}
	angles = append(angles, 0)
	for i := 0; i < n; i++ {
		angles = append(angles, float64(i+1)*delta)
	}
	for i, j := 0, len(angles)-1; i < j; i, j = i+1, j-1 {
		angles[i], angles[j] = angles[j], angles[i]
	}
	return angles
}
