package capture

import (
	"encoding/json"
	"os"
)

// FrameMeta records what the session looked like when a frame was captured.
type FrameMeta struct {
	Index        int    `json:"index"`
	Mode         string `json:"mode"`
	Stereo       bool   `json:"stereo"`
	Panoptic     bool   `json:"panoptic"`
	InteraxialMm int    `json:"interaxial_mm"`
	SurfaceIndex int    `json:"surface_index"`
	Image        string `json:"image"`
}

// WriteManifest writes manifest.json describing every captured frame.
func WriteManifest(path string, metas []FrameMeta) error {
	data, err := json.MarshalIndent(metas, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
