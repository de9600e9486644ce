package cli

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/scene"
	"github.com/matzehuels/forcefield/pkg/view"
)

// Node glyphs by shape.
const (
	glyphCircle  = '●'
	glyphSquare  = '■'
	glyphDiamond = '◆'
	glyphLink    = '·'
)

// Canvas is a terminal scene backend: a rune grid the viewer rasterizes
// into every frame. Entries share the arena's node references, so position
// pushes only need to mark the grid dirty.
type Canvas struct {
	mu    sync.Mutex
	nodes map[string]*scene.Entry
	links map[string]*scene.Entry
	dirty bool
}

// NewCanvas creates an empty canvas.
func NewCanvas() *Canvas {
	return &Canvas{
		nodes: make(map[string]*scene.Entry),
		links: make(map[string]*scene.Entry),
	}
}

func (c *Canvas) CreateNode(e *scene.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes[e.Key] = e
	c.dirty = true
	return nil
}

func (c *Canvas) UpdateNode(e *scene.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes[e.Key] = e
	c.dirty = true
}

func (c *Canvas) MoveNode(*scene.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

func (c *Canvas) RemoveNode(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.nodes, key)
	c.dirty = true
}

func (c *Canvas) CreateLink(e *scene.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links[e.Key] = e
	c.dirty = true
	return nil
}

func (c *Canvas) UpdateLink(e *scene.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links[e.Key] = e
	c.dirty = true
}

func (c *Canvas) MoveLink(*scene.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

func (c *Canvas) RemoveLink(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.links, key)
	c.dirty = true
}

var _ scene.Backend = (*Canvas)(nil)

// Dirty reports and clears the redraw flag.
func (c *Canvas) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.dirty
	c.dirty = false
	return d
}

// cell is one rendered grid position.
type cell struct {
	r     rune
	color string
	bold  bool
}

// Render rasterizes the live entries into a w×h rune grid using the view
// transform to map logical positions to cells. The hovered node draws bold.
func (c *Canvas) Render(vm *view.Manager, w, h int, hovered string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w <= 0 || h <= 0 {
		return ""
	}
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}

	// Links first so nodes draw over them.
	for _, e := range c.links {
		if e.Source == nil || e.Target == nil || !e.Source.Placed() || !e.Target.Placed() {
			continue
		}
		p1 := vm.ToScreen(view.Point{X: e.Source.X, Y: e.Source.Y})
		p2 := vm.ToScreen(view.Point{X: e.Target.X, Y: e.Target.Y})
		color := e.Link.Color
		if color == "" {
			color = graph.DefaultLinkColor
		}
		drawLine(grid, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), color)
	}

	for _, e := range c.nodes {
		n := e.Node
		if !n.Placed() {
			continue
		}
		p := vm.ToScreen(view.Point{X: n.X, Y: n.Y})
		x, y := int(p.X), int(p.Y)
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		color := n.Color
		if color == "" {
			color = graph.DefaultNodeColor
		}
		grid[y][x] = cell{r: glyphFor(n.Shape), color: color, bold: n.ID == hovered}
	}

	return flatten(grid, w, h)
}

func glyphFor(shape string) rune {
	switch shape {
	case graph.ShapeSquare:
		return glyphSquare
	case graph.ShapeDiamond:
		return glyphDiamond
	default:
		return glyphCircle
	}
}

// drawLine rasterizes a segment with Bresenham's algorithm, skipping cells
// outside the grid and cells already holding a node glyph.
func drawLine(grid [][]cell, x1, y1, x2, y2 int, color string) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x].r == ' ' {
			grid[y][x] = cell{r: glyphLink, color: color}
		}
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func flatten(grid [][]cell, w, h int) string {
	var b strings.Builder
	b.Grow(w*h + h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cl := grid[y][x]
			if cl.r == ' ' {
				b.WriteRune(' ')
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(cl.color))
			if cl.bold {
				style = style.Bold(true)
			}
			b.WriteString(style.Render(string(cl.r)))
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
