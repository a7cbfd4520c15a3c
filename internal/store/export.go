package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/orbitscene/internal/scene"
)

type ExportData struct {
	Run    RunMetadata        `json:"run"`
	Frames []scene.FrameStats `json:"frames"`
}

// WriteJSON writes one run, metadata and frames, as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, frames []scene.FrameStats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: meta, Frames: frames})
}

func ExportJSON(path string, meta RunMetadata, frames []scene.FrameStats) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, frames)
}

// Export writes runID from the store to path, or to stdout when path is
// empty or "-".
func (s *Store) Export(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		return WriteJSON(os.Stdout, *meta, frames)
	}
	return ExportJSON(path, *meta, frames)
}
