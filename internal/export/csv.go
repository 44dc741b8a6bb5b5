package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/projsim/internal/physics"
)

var csvHeader = []string{"time", "x", "y", "vx", "vy"}

func WriteCSV(out io.Writer, traj *physics.Trajectory) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for i := 0; i < traj.Len(); i++ {
		p, v := traj.Positions[i], traj.Velocities[i]
		row := []string{
			strconv.FormatFloat(traj.Times[i], 'f', 6, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(v.X, 'f', 6, 64),
			strconv.FormatFloat(v.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
