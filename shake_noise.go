package gimbal

import (
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"
)

// NoiseConfig configures one shaken channel.
type NoiseConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int     `yaml:"octaves"`
}

func (c NoiseConfig) enabled() bool {
	return c.Amplitude != 0
}

// shake channels, in the order they are stored.
const (
	shakeLocationX = iota
	shakeLocationY
	shakeLocationZ
	shakePitch
	shakeYaw
	shakeRoll
	shakeFieldOfView
	shakeChannelCount
)

// applyShakeChannels perturbs result by the channel values times scale.
// Location moves in the camera's own frame; rotation and field of view are
// additive.
func applyShakeChannels(values *[shakeChannelCount]float64, scale float64, result *EvaluationResult) {
	offset := Vec3{values[shakeLocationX], values[shakeLocationY], values[shakeLocationZ]}.Mul(scale)
	result.Pose = result.Pose.TranslateLocal(offset)
	result.Pose.Rotation = result.Pose.Rotation.Add(Rotator{
		Pitch: values[shakePitch],
		Yaw:   values[shakeYaw],
		Roll:  values[shakeRoll],
	}.Scale(scale))
	result.FieldOfView += values[shakeFieldOfView] * scale
}

// shakeTimeLeft returns the remaining time of a shake with the given
// duration; non-positive durations are unbounded.
func shakeTimeLeft(duration, current float64) float64 {
	if duration <= 0 {
		return -1
	}
	return max(0, duration-current)
}

// NoiseShakeEvaluator is a leaf shake driven by one MultiOctaveNoise per
// channel.
type NoiseShakeEvaluator struct {
	Location    [3]NoiseConfig // X, Y, Z in the camera frame
	Rotation    [3]NoiseConfig // pitch, yaw, roll in degrees
	FieldOfView NoiseConfig
	// Duration in seconds. Zero or negative shakes forever.
	Duration float64
	// Rand seeds the noise. Nil uses the global source.
	Rand *rand.Rand

	noises      [shakeChannelCount]*MultiOctaveNoise
	values      [shakeChannelCount]float64
	currentTime float64
}

func (n *NoiseShakeEvaluator) configs() [shakeChannelCount]NoiseConfig {
	return [shakeChannelCount]NoiseConfig{
		n.Location[0], n.Location[1], n.Location[2],
		n.Rotation[0], n.Rotation[1], n.Rotation[2],
		n.FieldOfView,
	}
}

// Build implements Evaluator.
func (n *NoiseShakeEvaluator) Build(*BuildContext) {
	for i, cfg := range n.configs() {
		n.noises[i] = nil
		if !cfg.enabled() {
			continue
		}
		noise := NewMultiOctaveNoise(cfg.Amplitude, cfg.Frequency, n.Rand)
		noise.SetNumOctaves(cfg.Octaves)
		n.noises[i] = noise
	}
}

// Initialize implements Evaluator.
func (n *NoiseShakeEvaluator) Initialize(*InitializeParams, *EvaluationResult) {
	n.currentTime = 0
	n.values = [shakeChannelCount]float64{}
}

// Children implements Evaluator.
func (n *NoiseShakeEvaluator) Children() []Evaluator { return nil }

// Noise returns the generator of channel i (0-2 location, 3-5 rotation,
// 6 field of view), or nil if that channel is disabled.
func (n *NoiseShakeEvaluator) Noise(i int) *MultiOctaveNoise {
	return n.noises[i]
}

// Run implements Evaluator.
func (n *NoiseShakeEvaluator) Run(params *EvaluationParams, _ *EvaluationResult) {
	n.currentTime += params.DeltaTime
	for i, noise := range n.noises {
		if noise != nil {
			n.values[i] = noise.GenerateValue(params.DeltaTime)
		}
	}
}

// ShakeResult implements ShakeEvaluator.
func (n *NoiseShakeEvaluator) ShakeResult(params *ShakeParams, result *ShakeResult) {
	result.ShakeTimeLeft = shakeTimeLeft(n.Duration, n.currentTime)
	if result.ShakeTimeLeft == 0 {
		return
	}
	applyShakeChannels(&n.values, params.ShakeScale, result.Result)
}

// RestartShake implements ShakeEvaluator.
func (n *NoiseShakeEvaluator) RestartShake(*RestartParams) {
	n.currentTime = 0
}

// SaveState implements StateSerializer.
func (n *NoiseShakeEvaluator) SaveState(rec *StateRecord) {
	rec.Put("current_time", n.currentTime)
}

// LoadState implements StateSerializer.
func (n *NoiseShakeEvaluator) LoadState(rec *StateRecord) error {
	v, err := rec.Take("current_time")
	if err != nil {
		return err
	}
	n.currentTime = v
	return nil
}

// SimplexShakeEvaluator is a leaf shake sampling OpenSimplex noise along
// time. Unlike NoiseShakeEvaluator it is fully determined by Seed.
type SimplexShakeEvaluator struct {
	Seed              int64
	Frequency         float64
	LocationAmplitude Vec3
	RotationAmplitude Rotator
	FieldOfView       float64
	// Duration in seconds. Zero or negative shakes forever.
	Duration float64

	noise       opensimplex.Noise
	currentTime float64
	values      [shakeChannelCount]float64
}

// Build implements Evaluator.
func (s *SimplexShakeEvaluator) Build(*BuildContext) {
	s.noise = opensimplex.New(s.Seed)
}

// Initialize implements Evaluator.
func (s *SimplexShakeEvaluator) Initialize(*InitializeParams, *EvaluationResult) {
	s.currentTime = 0
}

// Children implements Evaluator.
func (s *SimplexShakeEvaluator) Children() []Evaluator { return nil }

// Run implements Evaluator.
func (s *SimplexShakeEvaluator) Run(params *EvaluationParams, _ *EvaluationResult) {
	s.currentTime += params.DeltaTime
	amplitudes := [shakeChannelCount]float64{
		s.LocationAmplitude[0], s.LocationAmplitude[1], s.LocationAmplitude[2],
		s.RotationAmplitude.Pitch, s.RotationAmplitude.Yaw, s.RotationAmplitude.Roll,
		s.FieldOfView,
	}
	t := s.currentTime * s.Frequency
	for i, a := range amplitudes {
		if a == 0 {
			s.values[i] = 0
			continue
		}
		// Each channel reads its own row of the 2D noise field.
		s.values[i] = a * s.noise.Eval2(t, float64(i)*17.3)
	}
}

// ShakeResult implements ShakeEvaluator.
func (s *SimplexShakeEvaluator) ShakeResult(params *ShakeParams, result *ShakeResult) {
	result.ShakeTimeLeft = shakeTimeLeft(s.Duration, s.currentTime)
	if result.ShakeTimeLeft == 0 {
		return
	}
	applyShakeChannels(&s.values, params.ShakeScale, result.Result)
}

// RestartShake implements ShakeEvaluator.
func (s *SimplexShakeEvaluator) RestartShake(*RestartParams) {
	s.currentTime = 0
}
