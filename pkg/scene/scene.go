package scene

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
)

// Kind tags the variant of a scene entry.
type Kind int

const (
	// KindNode is the rendered counterpart of a graph node.
	KindNode Kind = iota
	// KindLink is the rendered counterpart of a graph link.
	KindLink
)

// Entry is the rendered counterpart of a node or link, keyed by the same
// stable identifier. Exactly one of Node or Link is set, matching Kind.
// For links, the Source and Target node references are resolved once at
// reconcile time so position pushes never need a lookup.
//
// Entries are created and destroyed only when graph membership changes;
// solver motion is pushed into existing entries, never rebuilt.
type Entry struct {
	Key  string
	Kind Kind

	Node *graph.Node
	Link *graph.Link

	// Resolved link endpoints (nil for node entries).
	Source *graph.Node
	Target *graph.Node
}

// Backend receives lifecycle and position events for scene entries.
// Create calls may fail (a drawing surface can reject an element); all
// other operations are infallible by contract.
//
// Backends must tolerate Remove for keys they have already released:
// teardown is re-entrant.
type Backend interface {
	CreateNode(e *Entry) error
	UpdateNode(e *Entry)
	MoveNode(e *Entry)
	RemoveNode(key string)

	CreateLink(e *Entry) error
	UpdateLink(e *Entry)
	MoveLink(e *Entry)
	RemoveLink(key string)
}

// Synchronizer reconciles a graph against the set of currently rendered
// entries by stable key, and pushes solver positions into surviving entries
// every tick.
//
// The central invariant: Reconcile performs the create/update/remove join
// and runs only when graph membership changes; PushPositions mutates
// position attributes only and runs every tick. A solver ticking at frame
// rate therefore never forces scene teardown or rebuild.
//
// The zero value is not usable - use NewSynchronizer.
type Synchronizer struct {
	backend Backend
	logger  *log.Logger

	nodes map[string]*Entry
	links map[string]*Entry

	err error
}

// NewSynchronizer creates a synchronizer over the given backend.
// A nil logger falls back to the package default.
func NewSynchronizer(backend Backend, logger *log.Logger) *Synchronizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Synchronizer{
		backend: backend,
		logger:  logger,
		nodes:   make(map[string]*Entry),
		links:   make(map[string]*Entry),
	}
}

// Err returns the sticky rendering error state, set when a backend create
// fails. Reconcile clears it when a subsequent pass succeeds.
func (s *Synchronizer) Err() error { return s.err }

// NodeEntry returns the live entry for a node key.
func (s *Synchronizer) NodeEntry(key string) (*Entry, bool) {
	e, ok := s.nodes[key]
	return e, ok
}

// LinkEntry returns the live entry for a link key.
func (s *Synchronizer) LinkEntry(key string) (*Entry, bool) {
	e, ok := s.links[key]
	return e, ok
}

// EntryCount returns the number of live node and link entries.
func (s *Synchronizer) EntryCount() (nodes, links int) {
	return len(s.nodes), len(s.links)
}

// Reconcile joins the graph against the rendered entries by key:
// entries whose key is absent from the graph are removed, new keys get
// freshly created entries, and surviving keys keep their entry with style
// attributes refreshed.
//
// A backend create failure stops the pass, is logged, and surfaces through
// Err as a recoverable error state; already-applied operations remain.
func (s *Synchronizer) Reconcile(g *graph.Graph) error {
	// Remove pass: links first so no link ever outlives its endpoints.
	wantLinks := make(map[string]*graph.Link, g.LinkCount())
	for _, l := range g.Links() {
		wantLinks[l.Key()] = l
	}
	for key := range s.links {
		if _, ok := wantLinks[key]; !ok {
			s.backend.RemoveLink(key)
			delete(s.links, key)
		}
	}

	wantNodes := make(map[string]*graph.Node, g.NodeCount())
	for _, n := range g.Nodes() {
		wantNodes[n.ID] = n
	}
	for key := range s.nodes {
		if _, ok := wantNodes[key]; !ok {
			s.backend.RemoveNode(key)
			delete(s.nodes, key)
		}
	}

	// Create/update pass: nodes first so links resolve against live entries.
	for _, n := range g.Nodes() {
		if e, ok := s.nodes[n.ID]; ok {
			e.Node = n // new arena, same key
			s.backend.UpdateNode(e)
			continue
		}
		e := &Entry{Key: n.ID, Kind: KindNode, Node: n}
		if err := s.backend.CreateNode(e); err != nil {
			return s.fail("node", n.ID, err)
		}
		s.nodes[n.ID] = e
	}

	for _, l := range g.Links() {
		src, _ := g.Node(l.Source)
		dst, _ := g.Node(l.Target)
		if e, ok := s.links[l.Key()]; ok {
			e.Link = l
			e.Source = src
			e.Target = dst
			s.backend.UpdateLink(e)
			continue
		}
		e := &Entry{Key: l.Key(), Kind: KindLink, Link: l, Source: src, Target: dst}
		if err := s.backend.CreateLink(e); err != nil {
			return s.fail("link", l.Key(), err)
		}
		s.links[l.Key()] = e
	}

	s.err = nil
	return nil
}

// PushPositions propagates solver positions into already-resolved entries.
// It never re-runs the membership join; that is reserved for Reconcile.
func (s *Synchronizer) PushPositions() {
	if s.err != nil {
		return
	}
	for _, e := range s.nodes {
		s.backend.MoveNode(e)
	}
	for _, e := range s.links {
		s.backend.MoveLink(e)
	}
}

// Release removes every entry from the backend. It is idempotent and
// re-entrant: repeated calls are no-ops.
func (s *Synchronizer) Release() {
	for key := range s.links {
		s.backend.RemoveLink(key)
		delete(s.links, key)
	}
	for key := range s.nodes {
		s.backend.RemoveNode(key)
		delete(s.nodes, key)
	}
	s.err = nil
}

func (s *Synchronizer) fail(kind, key string, err error) error {
	wrapped := errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s entry %q", kind, key)
	s.logger.Error("scene create failed", "kind", kind, "key", key, "err", err)
	s.err = wrapped
	return wrapped
}
