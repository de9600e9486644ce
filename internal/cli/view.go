package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/engine"
	"github.com/matzehuels/forcefield/pkg/force"
	"github.com/matzehuels/forcefield/pkg/view"
)

// frameInterval is the viewer's frame period (~30fps).
const frameInterval = 33 * time.Millisecond

// statusLines is the number of rows reserved below the canvas.
const statusLines = 2

// newViewCmd creates the view command: an interactive terminal viewer with
// mouse pan/zoom/drag driving the full engine loop.
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file|store:name]",
		Short: "View a graph interactively in the terminal",
		Long: `View opens an interactive force-directed layout in the terminal.

Mouse: wheel zooms about the cursor, dragging the background pans,
dragging a node pins it under the cursor while the layout adapts.
Releasing with shift held keeps the node pinned.

Keys: f fit, 0 reset view, space pause/resume forces, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, args[0])
		},
	}
}

func runView(cmd *cobra.Command, input string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	raw, err := loadRawGraph(ctx, cfg, input)
	if err != nil {
		return err
	}

	canvas := NewCanvas()
	eng, err := engine.New(canvas, cfg, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.SetData(ctx, raw); err != nil {
		return err
	}
	for _, w := range eng.Warnings() {
		logger.Warn("input dropped", "detail", w.Message)
	}

	m := &viewModel{eng: eng, canvas: canvas}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// viewModel is the bubbletea model for the interactive viewer. All engine
// mutation happens in Update, so the solver, scene, and dispatcher stay on
// one goroutine.
type viewModel struct {
	eng    *engine.Engine
	canvas *Canvas

	width  int
	height int

	mouseDown bool
	panning   bool
	lastMouse struct{ x, y int }

	status string
}

func (m *viewModel) Init() tea.Cmd {
	return frameTick()
}

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.eng.Tick()
		return m, frameTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height - statusLines
		m.eng.SetViewport(float64(m.width), float64(m.height))
		m.eng.FitToView()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *viewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "f":
		m.eng.FitToView()
	case "0":
		m.eng.ResetView()
	case "+", "=":
		m.eng.ZoomIn()
	case "-":
		m.eng.ZoomOut()
	case " ":
		if m.eng.ToggleForces() {
			m.status = "forces resumed"
		} else {
			m.status = "forces paused"
		}
	}
	return m, nil
}

func (m *viewModel) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)
	d := m.eng.Dispatcher()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.eng.View().ApplyDelta(engine.DefaultZoomStep, view.Point{X: x, Y: y})
		return
	case tea.MouseButtonWheelDown:
		m.eng.View().ApplyDelta(1/engine.DefaultZoomStep, view.Point{X: x, Y: y})
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.mouseDown = true
		m.lastMouse.x, m.lastMouse.y = msg.X, msg.Y
		d.PointerDown(x, y)
		m.panning = d.Dragging() == nil

	case tea.MouseActionMotion:
		if m.mouseDown && m.panning {
			m.eng.View().Pan(float64(msg.X-m.lastMouse.x), float64(msg.Y-m.lastMouse.y))
			m.lastMouse.x, m.lastMouse.y = msg.X, msg.Y
			return
		}
		d.PointerMove(x, y)

	case tea.MouseActionRelease:
		if !m.mouseDown {
			return
		}
		m.mouseDown = false
		if m.panning {
			m.panning = false
			return
		}
		// Shift-release keeps the node fixed where it was dropped.
		if msg.Shift {
			if n := d.Dragging(); n != nil {
				defer m.eng.Simulation().Pin(n.ID, n.X, n.Y)
			}
		}
		d.PointerUp(x, y)
	}
}

func (m *viewModel) View() string {
	var hovered string
	if n := m.eng.Dispatcher().Hovered(); n != nil {
		hovered = n.ID
	}

	var b strings.Builder
	b.WriteString(m.canvas.Render(m.eng.View(), m.width, m.height, hovered))
	b.WriteByte('\n')
	b.WriteString(m.statusBar(hovered))
	return b.String()
}

func (m *viewModel) statusBar(hovered string) string {
	g := m.eng.Graph()
	state := m.eng.Simulation().State()

	parts := []string{
		fmt.Sprintf("%d nodes · %d links", g.NodeCount(), g.LinkCount()),
		fmt.Sprintf("zoom %.2f", m.eng.GetCurrentZoom()),
		stateLabel(state),
	}
	if hovered != "" {
		if n, ok := g.Node(hovered); ok {
			parts = append(parts, StyleHighlight.Render(n.DisplayLabel()))
		}
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}

	line := StyleDim.Render(strings.Join(parts, "  │  "))
	help := StyleDim.Render("f fit · 0 reset · space forces · q quit")
	return line + "\n" + help
}

func stateLabel(s force.State) string {
	switch s {
	case force.Running:
		return StyleSuccess.Render("running")
	case force.Converged:
		return "settled"
	default:
		return "paused"
	}
}
