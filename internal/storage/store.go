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

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	fieldFile    = "field.csv"
)

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Particles  int                `json:"particles"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	MaxSpeed   float64            `json:"max_speed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Backend    string             `json:"backend"`
	Steps      int                `json:"steps"`
	TotalWraps int                `json:"total_wraps"`
	Metrics    map[string]float64 `json:"metrics"`
}

// SampleInterval is the time between consecutive recorded samples.
func (m *RunMetadata) SampleInterval(samples []sim.Sample) float64 {
	if len(samples) < 2 {
		return m.Dt
	}
	return samples[1].Time - samples[0].Time
}

// Save writes a run directory holding the metadata, the sampled series and
// the final field. meta.ID and meta.Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, result *sim.Result, field particle.Field) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("run_%d_%d", meta.Timestamp.Unix(), meta.Seed)
	}
	meta.Metrics = result.Metrics
	meta.Steps = result.StepsTaken
	meta.TotalWraps = result.TotalWraps

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}
	if err := writeField(filepath.Join(runDir, fieldFile), field); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "cx", "cy", "speed", "wraps"}); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			formatFloat(smp.Time),
			formatFloat(float64(smp.Centroid.X)),
			formatFloat(float64(smp.Centroid.Y)),
			formatFloat(smp.MeanSpeed),
			strconv.Itoa(smp.Wraps),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeField(path string, field particle.Field) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"px", "py", "vx", "vy", "r", "g", "b"}); err != nil {
		return err
	}
	packed := particle.Pack(field, nil)
	row := make([]string, particle.FloatsPerParticle)
	for i := 0; i < len(packed); i += particle.FloatsPerParticle {
		for j := range row {
			row[j] = strconv.FormatFloat(float64(packed[i+j]), 'g', -1, 32)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first.
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for _, record := range records {
		if len(record) < 5 {
			continue
		}
		vals, ok := parseFloats(record[:4])
		if !ok {
			continue
		}
		wraps, err := strconv.Atoi(record[4])
		if err != nil {
			continue
		}
		samples = append(samples, sim.Sample{
			Time:      vals[0],
			Centroid:  particle.Vec2{X: float32(vals[1]), Y: float32(vals[2])},
			MeanSpeed: vals[3],
			Wraps:     wraps,
		})
	}
	return samples, nil
}

func (s *Store) LoadField(runID string) (particle.Field, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, fieldFile))
	if err != nil {
		return nil, err
	}

	packed := make([]float32, 0, len(records)*particle.FloatsPerParticle)
	for _, record := range records {
		if len(record) < particle.FloatsPerParticle {
			continue
		}
		vals, ok := parseFloats(record[:particle.FloatsPerParticle])
		if !ok {
			continue
		}
		for _, v := range vals {
			packed = append(packed, float32(v))
		}
	}
	return particle.Unpack(packed), nil
}

// readCSV returns the data rows without the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
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
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
