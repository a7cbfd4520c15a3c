// Package store persists frame telemetry from headless runs: one directory
// per run holding metadata.json and frames.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/orbitscene/internal/scene"
)

var ErrRunNotFound = errors.New("store: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Timestamp    time.Time          `json:"timestamp"`
	Seed         int64              `json:"seed"`
	FPS          int                `json:"fps"`
	Frames       int                `json:"frames"`
	Failures     int                `json:"failures"`
	RotationMode string             `json:"rotation_mode"`
	Scene        scene.Config       `json:"scene"`
	Summary      map[string]float64 `json:"summary"`
}

// Summarize reduces per-frame stats to the values shown in run listings.
// FPS figures only count frames after the first stats window closed.
func Summarize(frames []scene.FrameStats) map[string]float64 {
	out := map[string]float64{"frames": float64(len(frames))}
	if len(frames) == 0 {
		return out
	}
	minFPS, maxFPS, sum, n := math.Inf(1), math.Inf(-1), 0.0, 0
	for _, f := range frames {
		if f.FPS == 0 {
			continue
		}
		v := float64(f.FPS)
		minFPS = math.Min(minFPS, v)
		maxFPS = math.Max(maxFPS, v)
		sum += v
		n++
	}
	if n > 0 {
		out["fps_min"] = minFPS
		out["fps_max"] = maxFPS
		out["fps_mean"] = sum / float64(n)
	}
	last := frames[len(frames)-1]
	out["objects"] = float64(last.Objects)
	out["triangles"] = float64(last.Triangles)
	return out
}

// Save writes meta and frames under a fresh run id and returns it. Summary
// is filled from frames when empty.
func (s *Store) Save(meta RunMetadata, frames []scene.FrameStats) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Summary == nil {
		meta.Summary = Summarize(frames)
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// runs that share name, second and seed get a numeric suffix
	base := fmt.Sprintf("%s_%d_%d", meta.Name, meta.Timestamp.Unix(), meta.Seed)
	meta.ID = base
	for n := 2; ; n++ {
		err := os.Mkdir(filepath.Join(s.baseDir, meta.ID), 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		meta.ID = fmt.Sprintf("%s-%d", base, n)
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "fps", "objects", "triangles"}); err != nil {
		return "", err
	}
	for i, f := range frames {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(f.FPS),
			strconv.Itoa(f.Objects),
			strconv.Itoa(f.Triangles),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, newest first. Unreadable entries are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]scene.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []scene.FrameStats{}, nil
	}

	frames := make([]scene.FrameStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		var vals [3]int
		ok := true
		for j := range vals {
			v, err := strconv.Atoi(record[j+1])
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		frames = append(frames, scene.FrameStats{FPS: vals[0], Objects: vals[1], Triangles: vals[2]})
	}
	return frames, nil
}

// FPSSeries returns one value per frame, for plotting.
func FPSSeries(frames []scene.FrameStats) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f.FPS)
	}
	return out
}
