package storage

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Times   []float64   `json:"times"`
	Cx      []float64   `json:"cx"`
	Cy      []float64   `json:"cy"`
	Speed   []float64   `json:"speed"`
	Wraps   []int       `json:"wraps"`
	Samples int         `json:"samples"`
}

// ExportJSON writes a run's metadata and series as one JSON document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{Run: *meta, Samples: len(samples)}
	for _, smp := range samples {
		data.Times = append(data.Times, smp.Time)
		data.Cx = append(data.Cx, float64(smp.Centroid.X))
		data.Cy = append(data.Cy, float64(smp.Centroid.Y))
		data.Speed = append(data.Speed, smp.MeanSpeed)
		data.Wraps = append(data.Wraps, smp.Wraps)
	}

	return writeJSON(path, data)
}

// ExportCSV copies a run's sample series to path.
func (s *Store) ExportCSV(runID, path string) error {
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return writeSamples(path, samples)
}
