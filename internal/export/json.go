package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/projsim/internal/metrics"
)

type Document struct {
	Name    string         `json:"name,omitempty"`
	Method  string         `json:"method"`
	Drag    bool           `json:"drag"`
	Gravity float64        `json:"gravity"`
	Dt      float64        `json:"dt"`
	Steps   int            `json:"steps"`
	Capped  bool           `json:"capped"`
	Metrics metrics.Flight `json:"metrics"`
	Times   []float64      `json:"times"`
	Points  [][2]float64   `json:"points"`
}

func NewDocument(r Run) Document {
	doc := Document{
		Name:    r.Name,
		Method:  r.Method,
		Drag:    r.Drag,
		Gravity: r.Gravity,
		Dt:      r.Dt,
		Metrics: r.Flight,
	}
	if r.Trajectory == nil {
		return doc
	}

	doc.Steps = r.Trajectory.Len()
	doc.Capped = r.Trajectory.Capped
	doc.Times = r.Trajectory.Times
	doc.Points = make([][2]float64, len(r.Trajectory.Positions))
	for i, p := range r.Trajectory.Positions {
		doc.Points[i] = [2]float64{p.X, p.Y}
	}
	return doc
}

func WriteJSON(w io.Writer, r Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(r))
}
