package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/projsim/internal/config"
	"github.com/san-kum/projsim/internal/metrics"
	"github.com/san-kum/projsim/internal/physics"
	"github.com/san-kum/projsim/internal/projectile"
	"github.com/san-kum/projsim/internal/vec"
)

const (
	canvasWidth  = 72
	canvasHeight = 20
	minSpeed     = 1.0
	maxSpeed     = 300.0
	sparkPoints  = 30
)

// Params is the launch state owned by the view.
type Params struct {
	Speed, Angle float64
	Mass, Radius float64
	Height       float64
	Gravity, Dt  float64
	Drag         bool
	Method       physics.Method
	Ghost        bool
	AirDensity   float64
	DragCoeff    float64
	MaxSteps     int
}

// ParamsFromConfig copies the launch and engine sections of cfg.
func ParamsFromConfig(cfg *config.Config) (Params, error) {
	m, err := physics.ParseMethod(cfg.Engine.Method)
	if err != nil {
		return Params{}, err
	}
	return Params{
		Speed:      cfg.Launch.Speed,
		Angle:      cfg.Launch.Angle,
		Mass:       cfg.Launch.Mass,
		Radius:     cfg.Launch.Radius,
		Height:     cfg.Launch.Height,
		Gravity:    cfg.Engine.Gravity,
		Dt:         cfg.Engine.Dt,
		Drag:       cfg.Engine.Drag,
		Method:     m,
		Ghost:      true,
		AirDensity: cfg.Engine.AirDensity,
		DragCoeff:  cfg.Engine.DragCoefficient,
		MaxSteps:   cfg.Engine.MaxSteps,
	}, nil
}

func (p Params) options(drag bool) []physics.Option {
	opts := []physics.Option{
		physics.WithGravity(p.Gravity),
		physics.WithDrag(drag),
		physics.WithMethod(p.Method),
		physics.WithAtmosphere(p.AirDensity, p.DragCoeff),
	}
	if p.MaxSteps > 0 {
		opts = append(opts, physics.WithMaxSteps(p.MaxSteps))
	}
	return opts
}

// Model is the bubbletea model for the aiming view.
type Model struct {
	params  Params
	initial Params
	traj    *physics.Trajectory
	ghost   *physics.Trajectory
	flight  metrics.Flight
	err     error
	canvas  *Canvas
	logger  *zap.Logger
}

// NewModel simulates p once and returns the view. A nil logger discards
// engine logs.
func NewModel(p Params, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := Model{
		params:  p,
		initial: p,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		logger:  logger,
	}
	m.resimulate()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Update applies one key press and re-simulates if a parameter changed.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	p := m.params
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		p.Angle = max(p.Angle-1, -89)
	case "right", "l":
		p.Angle = min(p.Angle+1, 89)
	case "up", "k":
		p.Speed = min(p.Speed+1, maxSpeed)
	case "down", "j":
		p.Speed = max(p.Speed-1, minSpeed)
	case "d":
		p.Drag = !p.Drag
	case "m":
		if p.Method == physics.RK4 {
			p.Method = physics.Euler
		} else {
			p.Method = physics.RK4
		}
	case "g":
		p.Ghost = !p.Ghost
	case "r":
		p = m.initial
	default:
		return m, nil
	}

	if p != m.params {
		m.params = p
		m.resimulate()
	}
	return m, nil
}

// resimulate replaces the cached trajectories and metrics with a fresh run.
func (m *Model) resimulate() {
	m.traj, m.ghost, m.flight, m.err = nil, nil, metrics.Flight{}, nil

	p := m.params
	proj, err := projectile.Launch(p.Mass, p.Radius, p.Speed, p.Angle, p.Height)
	if err != nil {
		m.err = err
		return
	}

	withLogger := func(opts []physics.Option) []physics.Option {
		return append(opts, physics.WithLogger(m.logger))
	}
	runs := []physics.Run{{Name: "main", Projectile: proj, Dt: p.Dt, Options: withLogger(p.options(p.Drag))}}
	if p.Ghost && p.Drag {
		runs = append(runs, physics.Run{Name: "ghost", Projectile: proj, Dt: p.Dt, Options: withLogger(p.options(false))})
	}

	out, err := physics.Compare(context.Background(), runs...)
	if err != nil {
		m.err = err
		return
	}
	m.traj, m.flight = out[0].Trajectory, out[0].Flight
	if len(out) > 1 {
		m.ghost = out[1].Trajectory
	}
}

func (m Model) View() string {
	view := m.drawCanvas()

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("PROJECTILE") + "\n")
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("speed", fmt.Sprintf("%.1f m/s", m.params.Speed))
	row("angle", fmt.Sprintf("%.0f°", m.params.Angle))
	row("mass", fmt.Sprintf("%.3g kg", m.params.Mass))
	row("radius", fmt.Sprintf("%.3g m", m.params.Radius))
	row("method", m.params.Method.String())
	stats.WriteString(labelStyle.Render("drag") + toggle(m.params.Drag) + "\n")
	stats.WriteString(labelStyle.Render("ghost") + toggle(m.params.Ghost) + "\n\n")

	if m.err != nil {
		stats.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	} else {
		row("range", fmt.Sprintf("%.2f m", m.flight.Range))
		row("max height", fmt.Sprintf("%.2f m", m.flight.MaxHeight))
		row("flight time", fmt.Sprintf("%.2f s", m.flight.TimeOfFlight))
		row("apex time", fmt.Sprintf("%.2f s", m.flight.TimeToMaxHeight))
		if m.traj.Capped {
			stats.WriteString(errorStyle.Render("step budget reached") + "\n")
		}
		stats.WriteString(graphStyle.Render(heightGraph(m.traj)))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(view), statsStyle.Render(stats.String()))
	help := helpStyle.Render("←/→ angle  ↑/↓ speed  d drag  m method  g ghost  r reset  q quit")
	return body + "\n" + help + "\n"
}

func (m Model) drawCanvas() string {
	m.canvas.Clear()
	if m.traj == nil {
		return m.canvas.String()
	}
	var ghost []vec.Vec2
	if m.ghost != nil {
		ghost = m.ghost.Positions
	}
	v := FitViewport(m.traj.Positions, ghost)
	m.canvas.DrawGround(v)
	m.canvas.DrawPath(ghost, v, 6)
	m.canvas.DrawPath(m.traj.Positions, v, 1)
	return m.canvas.String()
}

// heightGraph plots height against sample index, downsampled to a fixed width.
func heightGraph(tr *physics.Trajectory) string {
	h := tr.Heights()
	if len(h) < 2 {
		return ""
	}
	step := max(len(h)/sparkPoints, 1)
	pts := make([]float64, 0, sparkPoints+1)
	for i := 0; i < len(h); i += step {
		pts = append(pts, h[i])
	}
	return asciigraph.Plot(pts, asciigraph.Height(6), asciigraph.Precision(1), asciigraph.Caption("height (m)"))
}

// Params returns the current launch parameters.
func (m Model) Params() Params { return m.params }

// Flight returns the metrics of the cached trajectory.
func (m Model) Flight() metrics.Flight { return m.flight }

// Trajectory returns the cached trajectory, or nil after a failed run.
func (m Model) Trajectory() *physics.Trajectory { return m.traj }

// Ghost returns the cached drag-free trajectory, if one is shown.
func (m Model) Ghost() *physics.Trajectory { return m.ghost }

func (m Model) Err() error { return m.err }

// Run starts the interactive program and blocks until the user quits.
func Run(p Params, logger *zap.Logger) error {
	_, err := tea.NewProgram(NewModel(p, logger), tea.WithAltScreen()).Run()
	return err
}
