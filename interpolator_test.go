package gimbal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestSpringInterpolatorConverges(t *testing.T) {
	s := SpringInterpolatorConfig{AngularFrequency: 6, DampingRatio: 1}.NewInterpolator()
	s.Reset(10, 0)
	var v float64
	for i := 0; i < 600; i++ {
		v = s.Run(1.0 / 60)
	}
	assert.InDelta(t, 0, v, 1e-3)
}

func TestSpringInterpolatorKeepsVelocityAcrossReset(t *testing.T) {
	s := SpringInterpolatorConfig{AngularFrequency: 6, DampingRatio: 1}.NewInterpolator().(*SpringInterpolator)
	s.Reset(10, 0)
	s.Run(1.0 / 60)
	v := s.Velocity()
	assert.Less(t, v, 0.0)

	s.Reset(5, 0)
	assert.Equal(t, v, s.Velocity())
}

func TestSpringInterpolatorZeroDt(t *testing.T) {
	s := SpringInterpolatorConfig{AngularFrequency: 6, DampingRatio: 1}.NewInterpolator()
	s.Reset(3, 0)
	assert.Equal(t, 3.0, s.Run(0))
}

func TestTweenInterpolator(t *testing.T) {
	tw := TweenInterpolatorConfig{Duration: 1, Ease: ease.Linear}.NewInterpolator()
	tw.Reset(0, 10)
	assert.InDelta(t, 5, tw.Run(0.5), 1e-4)
	assert.InDelta(t, 10, tw.Run(0.6), 1e-4)
	assert.InDelta(t, 10, tw.Run(1), 1e-4, "stays at the target once done")
}

func TestTweenInterpolatorZeroDuration(t *testing.T) {
	tw := TweenInterpolatorConfig{}.NewInterpolator()
	tw.Reset(1, 7)
	assert.Equal(t, 7.0, tw.Run(0.1))
}

func TestInstantInterpolator(t *testing.T) {
	in := InstantInterpolatorConfig{}.NewInterpolator()
	in.Reset(1, 4)
	assert.Equal(t, 4.0, in.Run(0.016))
}
