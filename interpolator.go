package gimbal

import (
	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Interpolator moves a scalar toward a target over successive Run calls.
// Reset sets both ends; implementations may keep internal velocity across
// resets so that retargeting every frame stays smooth.
type Interpolator interface {
	Reset(current, target float64)
	Run(dt float64) float64
}

// InterpolatorConfig creates per-instance interpolators. Nodes hold a config
// and call NewInterpolator from Build.
type InterpolatorConfig interface {
	NewInterpolator() Interpolator
}

// --- spring ---

// SpringInterpolatorConfig configures a damped harmonic spring.
type SpringInterpolatorConfig struct {
	// AngularFrequency controls stiffness. Higher converges faster.
	AngularFrequency float64
	// DampingRatio below 1 overshoots, 1 is critically damped, above 1
	// is over-damped.
	DampingRatio float64
}

// NewInterpolator implements InterpolatorConfig.
func (c SpringInterpolatorConfig) NewInterpolator() Interpolator {
	return &SpringInterpolator{config: c}
}

// SpringInterpolator drives a value with harmonica's damped spring. The
// spring coefficients depend on the time step, so they are recomputed when
// dt changes.
type SpringInterpolator struct {
	config   SpringInterpolatorConfig
	spring   harmonica.Spring
	springDt float64
	position float64
	velocity float64
	target   float64
}

// Reset implements Interpolator. Velocity is kept.
func (s *SpringInterpolator) Reset(current, target float64) {
	s.position = current
	s.target = target
}

// Run implements Interpolator.
func (s *SpringInterpolator) Run(dt float64) float64 {
	if dt <= 0 {
		return s.position
	}
	if dt != s.springDt {
		s.spring = harmonica.NewSpring(dt, s.config.AngularFrequency, s.config.DampingRatio)
		s.springDt = dt
	}
	s.position, s.velocity = s.spring.Update(s.position, s.velocity, s.target)
	return s.position
}

// Velocity returns the spring's current velocity.
func (s *SpringInterpolator) Velocity() float64 {
	return s.velocity
}

// --- tween ---

// TweenInterpolatorConfig configures an eased tween toward the target.
type TweenInterpolatorConfig struct {
	// Duration is the time, in seconds, a full transition would take.
	Duration float32
	// Ease is the easing curve. Nil uses ease.OutQuad.
	Ease ease.TweenFunc
}

// NewInterpolator implements InterpolatorConfig.
func (c TweenInterpolatorConfig) NewInterpolator() Interpolator {
	fn := c.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	return &TweenInterpolator{duration: c.Duration, ease: fn}
}

// TweenInterpolator restarts a gween tween on every Reset and advances it
// on Run. Retargeting every frame yields an exponential-style approach.
type TweenInterpolator struct {
	duration float32
	ease     ease.TweenFunc
	tween    *gween.Tween
	current  float64
	done     bool
}

// Reset implements Interpolator.
func (t *TweenInterpolator) Reset(current, target float64) {
	t.current = current
	t.tween = gween.New(float32(current), float32(target), t.duration, t.ease)
	t.done = t.duration <= 0
	if t.done {
		t.current = target
	}
}

// Run implements Interpolator.
func (t *TweenInterpolator) Run(dt float64) float64 {
	if t.tween == nil || t.done {
		return t.current
	}
	val, finished := t.tween.Update(float32(dt))
	t.current = float64(val)
	t.done = finished
	return t.current
}

// --- instant ---

// InstantInterpolatorConfig snaps to the target on the first Run.
type InstantInterpolatorConfig struct{}

// NewInterpolator implements InterpolatorConfig.
func (InstantInterpolatorConfig) NewInterpolator() Interpolator {
	return &instantInterpolator{}
}

type instantInterpolator struct {
	target float64
}

func (i *instantInterpolator) Reset(_, target float64) { i.target = target }

func (i *instantInterpolator) Run(float64) float64 { return i.target }
