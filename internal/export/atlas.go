package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// AtlasRect is a frame's rectangle within the sheet.
type AtlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// AtlasEntry describes one placed frame.
type AtlasEntry struct {
	Filename int       `json:"filename"`
	Frame    AtlasRect `json:"frame"`
}

// Atlas accumulates frame placements for the sidecar JSON document.
type Atlas struct {
	Frames []AtlasEntry `json:"frames"`
}

// Add appends the placement of frame i.
func (a *Atlas) Add(i, x, y, w, h int) {
	a.Frames = append(a.Frames, AtlasEntry{
		Filename: i,
		Frame:    AtlasRect{X: x, Y: y, W: w, H: h},
	})
}

// WriteFile writes the atlas as {"frames": [...]} JSON.
func (a *Atlas) WriteFile(path string) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding atlas: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing atlas: %w", err)
	}
	return nil
}
