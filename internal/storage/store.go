package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/particlefield/internal/engine"
)

// Store keeps recorded runs on disk, one directory per run holding
// metadata.json and frames.csv.
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
	ID          string             `json:"id"`
	Mode        string             `json:"mode"`
	Color       string             `json:"color"`
	Density     int                `json:"density"`
	Speed       float64            `json:"speed"`
	Interactive bool               `json:"interactive"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Target      string             `json:"target"`
	Frames      int                `json:"frames"`
	Particles   int                `json:"particles"`
	Metrics     map[string]float64 `json:"metrics"`
}

var frameHeader = []string{"frame", "now_ms", "dt_ms", "work_ms", "particles"}

func ms(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 6, 64)
}

func fromMs(s string) (time.Duration, error) {
	v, err := strconv.ParseFloat(s, 64)
	return time.Duration(v * float64(time.Millisecond)), err
}

// Save writes a run and returns its ID. A zero timestamp is stamped with
// the current time.
func (s *Store) Save(meta RunMetadata, frames []engine.FrameStats) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Mode, meta.Timestamp.UnixNano())
	meta.Frames = len(frames)
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{strconv.Itoa(f.Frame), ms(f.Now), ms(f.Dt), ms(f.Work), strconv.Itoa(f.Particles)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return meta.ID, w.Error()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the per-frame records of a run. Malformed rows are
// skipped.
func (s *Store) LoadFrames(runID string) ([]engine.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
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
		return []engine.FrameStats{}, nil
	}

	frames := make([]engine.FrameStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(frameHeader) {
			continue
		}
		f, err := parseFrame(record)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(record []string) (engine.FrameStats, error) {
	var f engine.FrameStats
	var err error
	if f.Frame, err = strconv.Atoi(record[0]); err != nil {
		return f, err
	}
	if f.Now, err = fromMs(record[1]); err != nil {
		return f, err
	}
	if f.Dt, err = fromMs(record[2]); err != nil {
		return f, err
	}
	if f.Work, err = fromMs(record[3]); err != nil {
		return f, err
	}
	f.Particles, err = strconv.Atoi(record[4])
	return f, err
}

// Recorder is a frame observer that keeps every frame it sees.
type Recorder struct {
	frames []engine.FrameStats
}

func (r *Recorder) OnFrame(s engine.FrameStats) { r.frames = append(r.frames, s) }

func (r *Recorder) Frames() []engine.FrameStats { return r.frames }
