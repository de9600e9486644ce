package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Bounds for style fields. Values outside these ranges are clamped, never
// rejected.
const (
	MinNodeSize = 1.0
	MaxNodeSize = 200.0
	MinLinkWidth = 0.1
	MaxLinkWidth = 50.0
)

// DefaultNodeColor replaces malformed node color values.
const DefaultNodeColor = "#6ea8fe"

// DefaultLinkColor replaces malformed link color values.
const DefaultLinkColor = "#39424e"

// RawGraph is the unvalidated input shape. Identifiers are typed as `any`
// because JSON sources routinely mix numeric and string IDs for the same
// logical node; Normalize coerces every surviving ID to one canonical
// string form so identity comparisons are never ambiguous.
type RawGraph struct {
	Nodes []RawNode `json:"nodes"`
	Links []RawLink `json:"links"`
}

// RawNode is an unvalidated node.
type RawNode struct {
	ID    any      `json:"id"`
	Label string   `json:"label,omitempty"`
	Group string   `json:"group,omitempty"`
	Size  float64  `json:"size,omitempty"`
	Shape string   `json:"shape,omitempty"`
	Color string   `json:"color,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

// RawLink is an unvalidated link. Endpoints may be IDs of any coercible type;
// they are resolved against surviving nodes, never held as object references.
type RawLink struct {
	Source any     `json:"source"`
	Target any     `json:"target"`
	Weight float64 `json:"weight,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Style  string  `json:"style,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Warning codes emitted by Normalize.
const (
	WarnNodeNoID      = "node_missing_id"
	WarnNodeDuplicate = "node_duplicate_id"
	WarnLinkDangling  = "link_dangling"
)

// Warning describes an element dropped or repaired during validation.
// Warnings never halt initialization.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string { return w.Code + ": " + w.Message }

func warnf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Normalize validates raw input into a well-formed graph.
//
// Failure model: it returns an error only when the node collection itself is
// absent. Everything else degrades locally - nodes without a usable ID and
// links whose endpoints do not resolve to a surviving node are dropped and
// reported as warnings. Duplicate canonical IDs keep the first occurrence
// and drop the rest.
//
// Style hygiene: sizes and widths are clamped into sane bounds and malformed
// color values are replaced with defaults rather than propagated.
//
// Surviving nodes come out unplaced (NaN coordinates) unless the input
// carried explicit coordinates; the solver seeds unplaced nodes on start.
func Normalize(raw RawGraph) (*Graph, []Warning, error) {
	if raw.Nodes == nil {
		return nil, nil, ErrMissingNodes
	}

	g := New()
	var warnings []Warning

	for i, rn := range raw.Nodes {
		id, ok := CanonicalID(rn.ID)
		if !ok {
			warnings = append(warnings, warnf(WarnNodeNoID, "node %d has no usable identifier", i))
			continue
		}
		n := &Node{
			ID:    id,
			Label: rn.Label,
			Group: rn.Group,
			Size:  clampNonZero(rn.Size, MinNodeSize, MaxNodeSize),
			Shape: normalizeShape(rn.Shape),
			Color: normalizeColor(rn.Color, DefaultNodeColor),
			X:     math.NaN(),
			Y:     math.NaN(),
		}
		if rn.X != nil && rn.Y != nil {
			n.X = *rn.X
			n.Y = *rn.Y
		}
		if err := g.AddNode(n); err != nil {
			warnings = append(warnings, warnf(WarnNodeDuplicate, "node %q: duplicate identifier dropped", id))
		}
	}

	for i, rl := range raw.Links {
		src, okS := CanonicalID(rl.Source)
		dst, okT := CanonicalID(rl.Target)
		if !okS || !okT {
			warnings = append(warnings, warnf(WarnLinkDangling, "link %d has an unresolvable endpoint", i))
			continue
		}
		l := &Link{
			Source: src,
			Target: dst,
			Weight: rl.Weight,
			Width:  clampNonZero(rl.Width, MinLinkWidth, MaxLinkWidth),
			Style:  rl.Style,
			Color:  normalizeColor(rl.Color, DefaultLinkColor),
		}
		if err := g.AddLink(l); err != nil {
			warnings = append(warnings, warnf(WarnLinkDangling, "link %s->%s: %v", src, dst, err))
		}
	}

	return g, warnings, nil
}

// CanonicalID coerces an identifier of any JSON-decodable type to its
// canonical string form. The number 1, the string "1", and json.Number("1")
// all canonicalize to "1" so they are treated as the same node. Returns
// false for nil, empty, or non-coercible values.
func CanonicalID(v any) (string, bool) {
	switch id := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(id)
		return s, s != ""
	case json.Number:
		return canonicalNumber(id.String())
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	case bool:
		return strconv.FormatBool(id), true
	default:
		return "", false
	}
}

// canonicalNumber strips an insignificant fraction so "1.0" and "1" agree.
func canonicalNumber(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return s, true
}

// clampNonZero clamps v into [lo, hi], preserving zero as "unset".
func clampNonZero(v, lo, hi float64) float64 {
	if v == 0 {
		return 0
	}
	return min(max(v, lo), hi)
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// namedColors is the small set of CSS color keywords accepted as-is.
var namedColors = map[string]bool{
	"black": true, "white": true, "red": true, "green": true, "blue": true,
	"yellow": true, "orange": true, "purple": true, "gray": true, "grey": true,
	"cyan": true, "magenta": true, "pink": true, "brown": true, "none": true,
}

// normalizeColor returns the color if well-formed, the fallback if malformed.
// An empty color stays empty so backends can apply their own defaults.
func normalizeColor(c, fallback string) string {
	if c == "" {
		return ""
	}
	if hexColorRe.MatchString(c) || namedColors[strings.ToLower(c)] {
		return c
	}
	return fallback
}

func normalizeShape(s string) string {
	switch s {
	case ShapeCircle, ShapeSquare, ShapeDiamond:
		return s
	default:
		return ""
	}
}
