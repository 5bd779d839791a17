package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
)

// DroneSummary is the per-drone slice of a run summary.
type DroneSummary struct {
	ID              int     `json:"id"`
	Strategy        string  `json:"strategy"`
	FlightTime      float64 `json:"flight_time"`
	EnergyConsumed  float64 `json:"energy_consumed"`
	EnergyRemaining float64 `json:"energy_remaining"`
	PathScore       float64 `json:"path_score"`
	Captures        int     `json:"captures"`
	Detections      int     `json:"detections"`
}

// RunSummary describes one finished traversal.
type RunSummary struct {
	Area      string         `json:"area"`
	Timestamp time.Time      `json:"timestamp"`
	Drones    []DroneSummary `json:"drones"`
	Precision float64        `json:"precision"`
	Recall    float64        `json:"recall"`
	F1        float64        `json:"f1"`
}

// Summarize collects a run summary from a team after traversal. Team
// detection scores use the pooled capture history, so they are the same
// no matter which member reports them.
func Summarize(t *drone.Team) RunSummary {
	s := RunSummary{Timestamp: time.Now()}
	for _, d := range t.Drones() {
		detections := 0
		for _, c := range d.CaptureHistory() {
			detections += len(c.Detectables)
		}
		s.Drones = append(s.Drones, DroneSummary{
			ID:              d.ID(),
			Strategy:        fmt.Sprint(d.Strategy()),
			FlightTime:      d.Time(),
			EnergyConsumed:  d.EnergyBudget() - d.EnergyRemaining(),
			EnergyRemaining: d.EnergyRemaining(),
			PathScore:       d.PathScore(),
			Captures:        len(d.CaptureHistory()),
			Detections:      detections,
		})
	}
	if t.Size() > 0 {
		lead := t.Drone(0)
		s.Area = lead.Area().Name()
		s.Precision = lead.Precision()
		s.Recall = lead.Recall()
		s.F1 = lead.F1()
	}
	return s
}

// WriteSummary writes a run summary as indented JSON.
func WriteSummary(path string, s RunSummary) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
