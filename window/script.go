package window

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a frame script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
	Seed   int64  `json:"seed,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// FrameScript sequences seed changes, waits and screenshots across frames,
// for rendering a series of trees unattended. Actions:
//
//	{"action": "wait", "frames": 3}
//	{"action": "seed", "seed": 42}
//	{"action": "screenshot", "label": "seed-42"}
//	{"action": "quit"}
type FrameScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadFrameScript parses a JSON frame script.
func LoadFrameScript(jsonData []byte) (*FrameScript, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse frame script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse frame script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "wait", "seed", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse frame script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &FrameScript{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (fs *FrameScript) Done() bool {
	return fs.done
}

// step runs at most one action per frame. Called from Scene.Update.
func (fs *FrameScript) step(s *Scene) {
	if fs.done {
		return
	}
	if fs.waitCount > 0 {
		fs.waitCount--
		return
	}
	if fs.cursor >= len(fs.steps) {
		fs.done = true
		return
	}

	st := fs.steps[fs.cursor]
	fs.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "seed":
		s.SetSeed(st.Seed)
	case "wait":
		if st.Frames > 0 {
			fs.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		s.QuitAfterDraw()
	}

	if fs.cursor >= len(fs.steps) && fs.waitCount == 0 {
		fs.done = true
	}
}
