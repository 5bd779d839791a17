package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
)

// WriteTraceCSV writes every drone's flown trace to a CSV file, one row
// per recorded position. Trace points are recorded once per tick, so
// the time column is reconstructed from the tick length.
func WriteTraceCSV(path string, drones []*drone.Drone, dt float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"drone", "time", "x", "y", "z"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, d := range drones {
		for i, p := range d.Trace() {
			row := []string{
				strconv.Itoa(d.ID()),
				strconv.FormatFloat(float64(i)*dt, 'f', 6, 64),
				strconv.FormatFloat(p.X(), 'f', 6, 64),
				strconv.FormatFloat(p.Y(), 'f', 6, 64),
				strconv.FormatFloat(p.Z(), 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}
