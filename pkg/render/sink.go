package render

import (
	"sync"

	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/scene"
)

// Sink is a headless scene backend for static export. It tracks which
// entries are live; positions are read straight from the shared arena at
// render time, so moves have nothing to copy.
type Sink struct {
	mu    sync.Mutex
	nodes map[string]*scene.Entry
	links map[string]*scene.Entry
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{
		nodes: make(map[string]*scene.Entry),
		links: make(map[string]*scene.Entry),
	}
}

func (s *Sink) CreateNode(e *scene.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[e.Key] = e
	return nil
}

func (s *Sink) UpdateNode(e *scene.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[e.Key] = e
}

func (s *Sink) MoveNode(*scene.Entry) {}

func (s *Sink) RemoveNode(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, key)
}

func (s *Sink) CreateLink(e *scene.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[e.Key] = e
	return nil
}

func (s *Sink) UpdateLink(e *scene.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[e.Key] = e
}

func (s *Sink) MoveLink(*scene.Entry) {}

func (s *Sink) RemoveLink(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, key)
}

// Counts returns the number of live node and link entries.
func (s *Sink) Counts() (nodes, links int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes), len(s.links)
}

// SVG renders the live entries' graph at current positions.
func (s *Sink) SVG(g *graph.Graph, opts ...SVGOption) []byte {
	return RenderSVG(g, opts...)
}

var _ scene.Backend = (*Sink)(nil)
