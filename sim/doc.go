// Package sim implements the Bay Assessment Model (BAM) hydrodynamic and
// salinity simulation kernel: a lumped-parameter, fixed-timestep model of a
// shallow, multi-basin estuary.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - basin.go, shoal.go: the state held for each basin and each inter-basin
//     shoal, including the per-depth-stratum solver state.
//   - clock.go: the simulation clock (calendar time, Unix time, timestep).
//   - driver.go: the Init/Running/Paused/Halted/Finished state machine and
//     the per-step ordering contract (BCs → salinity → tide → rain → ET →
//     runoff → shoal solver → mass transport → depth update).
//   - shoalsolver.go: the iterative Manning velocity solver.
//   - masstransport.go: volume and salt mass transfer across shoals.
//   - depth.go: basin stage update from volume change.
//
// # Architecture
//
// Geometry and forcing data are built once, before the loop, by
// sim/geometry and held read-only in a *Context for the life of the run
// (see spec §5: "forcing stores are immutable after load"). Per-step state
// lives on Basin and Shoal values referenced by small integer IDs
// (BasinID, ShoalID) rather than pointers crossing the basin↔shoal
// relationship, so neither type owns a cycle through the other.
//
// sim/forcing supplies the read-only interpolators and lookup tables
// (rain, ET, tide, seasonal MSL, boundary conditions, gauge salinity)
// that the Driver applies each tick.
package sim
