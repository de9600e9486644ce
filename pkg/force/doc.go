// Package force implements the iterative layout solver.
//
// The simulation combines four forces per tick - pairwise charge repulsion
// (approximated with a Barnes-Hut quadtree), link springs toward a rest
// length, a weak centering pull, and collision resolution - then integrates
// velocities with damping. A scalar kinetic budget (alpha) decays every
// tick; the solver is converged once it falls below a threshold and can be
// reheated to resume motion without discarding positions.
//
// # Lifecycle
//
//	Idle ──Start──▶ Running ──alpha < min──▶ Converged
//	                  ▲                          │
//	                  └────────Reheat────────────┘
//
// Stop returns to Idle from any state, idempotently, and deregisters all
// tick callbacks before returning.
//
// # Ownership
//
// The solver owns the kinetic fields of the nodes in its graph arena. Pin
// fields are written by the interaction layer; a pinned node's position is
// never touched by integration.
package force
