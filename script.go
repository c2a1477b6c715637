package gimbal

import (
	"encoding/json"
	"fmt"
	"os"

	ebimath "github.com/edwinsyarief/ebi-math"
)

// scriptStep represents a single action in a frame script.
type scriptStep struct {
	Action   string   `json:"action"`
	Frames   int      `json:"frames,omitempty"`
	Variable string   `json:"variable,omitempty"`
	X        float64  `json:"x,omitempty"`
	Y        float64  `json:"y,omitempty"`
	Z        float64  `json:"z,omitempty"`
	Yaw      *float64 `json:"yaw,omitempty"`
	Pitch    *float64 `json:"pitch,omitempty"`
	Value    *float64 `json:"value,omitempty"`
	Delta    bool     `json:"delta,omitempty"`
}

// frameScript is the top-level JSON structure for a frame script.
type frameScript struct {
	DeltaTime float64      `json:"dt,omitempty"`
	Steps     []scriptStep `json:"steps"`
}

// FrameScript sequences inputs, operations, and frames against a rig for
// reproducible runs. Actions other than "run" take effect immediately;
// "run" ends the current frame and holds for its frame count.
type FrameScript struct {
	deltaTime float64
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"run":           true,
	"cut":           true,
	"yaw_pitch":     true,
	"single_value":  true,
	"set_vec3":      true,
	"set_axis":      true,
	"restart_shake": true,
}

// ParseFrameScript parses a JSON frame script.
func ParseFrameScript(jsonData []byte) (*FrameScript, error) {
	var script frameScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse frame script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse frame script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse frame script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "set_vec3" || st.Action == "set_axis" {
			if st.Variable == "" {
				return nil, fmt.Errorf("parse frame script: step %d: %s needs a variable", i, st.Action)
			}
		}
	}
	return &FrameScript{deltaTime: script.DeltaTime, steps: script.Steps}, nil
}

// LoadFrameScript reads and parses a JSON frame script file.
func LoadFrameScript(path string) (*FrameScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load frame script: %w", err)
	}
	return ParseFrameScript(data)
}

// DeltaTime returns the script's frame time, or zero if it does not set one.
func (s *FrameScript) DeltaTime() float64 {
	return s.deltaTime
}

// Done reports whether all steps in the script have been executed.
func (s *FrameScript) Done() bool {
	return s.done
}

// Step executes the script's actions for one frame and then updates rig by
// dt. It returns the frame's result.
func (s *FrameScript) Step(rig *Rig, dt float64) *EvaluationResult {
	s.advance(rig)
	return rig.Update(dt)
}

// advance applies actions up to and including the next "run".
func (s *FrameScript) advance(rig *Rig) {
	if s.done {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.checkDone()
		return
	}
	for s.cursor < len(s.steps) {
		st := s.steps[s.cursor]
		s.cursor++
		if st.Action == "run" {
			if st.Frames > 1 {
				s.waitCount = st.Frames - 1 // this frame counts as one
			}
			break
		}
		s.apply(rig, st)
	}
	s.checkDone()
}

func (s *FrameScript) checkDone() {
	if s.cursor >= len(s.steps) && s.waitCount == 0 {
		s.done = true
	}
}

func scriptValue(v *float64, delta bool) ConsumableValue[float64] {
	switch {
	case v == nil:
		return ConsumableValue[float64]{}
	case delta:
		return DeltaValue(*v)
	default:
		return AbsoluteValue(*v)
	}
}

func (s *FrameScript) apply(rig *Rig, st scriptStep) {
	switch st.Action {
	case "cut":
		rig.RequestCameraCut()
	case "yaw_pitch":
		rig.ExecuteOperation(&YawPitchOperation{
			Yaw:   scriptValue(st.Yaw, st.Delta),
			Pitch: scriptValue(st.Pitch, st.Delta),
		})
	case "single_value":
		rig.ExecuteOperation(&SingleValueOperation{
			Target: variableRef(st.Variable),
			Value:  scriptValue(st.Value, st.Delta),
		})
	case "set_vec3":
		rig.Variables().Set(NewVariableID(st.Variable), Vec3{st.X, st.Y, st.Z})
	case "set_axis":
		rig.Variables().Set(NewVariableID(st.Variable), ebimath.V(st.X, st.Y))
	case "restart_shake":
		rig.RestartShake()
	}
}
