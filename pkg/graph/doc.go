// Package graph defines the data model shared by the layout solver and the
// rendering layers: an identifier-indexed arena of nodes plus the links
// connecting them, a validator that turns untrusted input into a well-formed
// graph, and JSON serialization for storage and tooling.
//
// # Arena
//
// A Graph owns the single authoritative store of node state. The solver, the
// scene synchronizer, and the interaction dispatcher all hold references into
// this store rather than copies. There are no solver-private position
// duplicates, so layout and rendering cannot drift apart.
//
// # Validation
//
// Normalize accepts a RawGraph (identifiers of any JSON type) and produces a
// Graph whose every link resolves to surviving nodes, together with warnings
// for each dropped element. It fails hard only when the node collection is
// absent entirely.
package graph
