package gimbal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRecordTake(t *testing.T) {
	var rec StateRecord
	rec.Put("a", 1.5)
	rec.PutBool("b", true)

	a, err := rec.Take("a")
	require.NoError(t, err)
	assert.Equal(t, 1.5, a)

	b, err := rec.TakeBool("b")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = rec.Take("c")
	assert.True(t, errors.Is(err, ErrStateMismatch))

	rec.Rewind()
	_, err = rec.Take("b")
	assert.ErrorIs(t, err, ErrStateMismatch)
}

func TestTreeStateRoundTrip(t *testing.T) {
	newTree := func() (*CompositeShakeEvaluator, *EnvelopeShakeEvaluator, *NoiseShakeEvaluator) {
		noise := &NoiseShakeEvaluator{Duration: 5}
		env := NewEnvelopeShake(&recordingShake{}, 0.2, 0.2, 2)
		return NewCompositeShake(env, noise), env, noise
	}

	root, env, noise := newTree()
	runShake(root, 0.4)

	data, err := EncodeTreeState(SaveTreeState(root))
	require.NoError(t, err)

	st, err := DecodeTreeState(data)
	require.NoError(t, err)
	require.Len(t, st.Nodes, 2)
	assert.Contains(t, st.Nodes, "0/0")
	assert.Contains(t, st.Nodes, "0/1")

	fresh, freshEnv, freshNoise := newTree()
	require.NoError(t, LoadTreeState(fresh, st))
	assert.Equal(t, env.CurrentTime(), freshEnv.CurrentTime())
	assertNear(t, "noise time left", runShake(freshNoise, 0).ShakeTimeLeft, 5-0.4)
	assertNear(t, "original time left", runShake(noise, 0).ShakeTimeLeft, 5-0.4)
}

func TestLoadTreeStateMismatch(t *testing.T) {
	st := &TreeState{Nodes: map[string]*StateRecord{
		"0": {Fields: []StateField{{Name: "bogus", Value: 1}}},
	}}
	err := LoadTreeState(&NoiseShakeEvaluator{}, st)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStateMismatch)
	assert.Contains(t, err.Error(), "NoiseShake")

	assert.NoError(t, LoadTreeState(&NoiseShakeEvaluator{}, nil))
}

func TestDecodeTreeStateInvalid(t *testing.T) {
	_, err := DecodeTreeState([]byte("nodes: [unterminated"))
	assert.Error(t, err)
}
