package geometry

import (
	"fmt"

	"github.com/floridabay/bam/sim"
	"github.com/floridabay/bam/sim/forcing"
)

// validateBasins runs the fail-fast geometry checks from spec §7:
// duplicate basin numbers/names, and a boundary basin marked as
// non-boundary or vice versa.
func validateBasins(basins []BasinSpec) error {
	numbers := make(map[int32]bool, len(basins))
	names := make(map[string]bool, len(basins))
	for _, b := range basins {
		if numbers[b.Number] {
			return &sim.ValidationError{Field: "basin_num", Msg: fmt.Sprintf("duplicate basin number %d", b.Number)}
		}
		numbers[b.Number] = true
		if names[b.Name] {
			return &sim.ValidationError{Field: "basin_name", Msg: fmt.Sprintf("duplicate basin name %q", b.Name)}
		}
		names[b.Name] = true

		inTidalRange := b.Number >= tidalBoundaryStart && b.Number <= tidalBoundaryEnd
		inRunoffRange := b.Number >= runoffBoundaryStart && b.Number <= runoffBoundaryEnd
		if (inTidalRange || inRunoffRange) && !b.IsBoundary {
			return &sim.ValidationError{Field: "boundary_basin", Msg: fmt.Sprintf("basin %d falls in the boundary-basin number range but is not marked boundary", b.Number)}
		}
		if b.IsBoundary && !inTidalRange && !inRunoffRange {
			return &sim.ValidationError{Field: "boundary_basin", Msg: fmt.Sprintf("basin %d is marked boundary but falls outside the boundary-basin number ranges", b.Number)}
		}
		if b.HasTide && !inTidalRange {
			return &sim.ValidationError{Field: "boundary_basin", Msg: fmt.Sprintf("basin %d has a tide function but is outside the tidal boundary range", b.Number)}
		}
		if b.RunoffStationID != "" && !inRunoffRange {
			return &sim.ValidationError{Field: "boundary_basin", Msg: fmt.Sprintf("basin %d has a runoff station but is outside the runoff boundary range", b.Number)}
		}
	}
	return nil
}

// validateBC checks that every basin referenced by a boundary-condition
// table is present in the geometry (spec §7: "basin cited in a BC table
// not present in geometry").
func validateBC(basins []BasinSpec, fs ForcingSpec) error {
	known := make(map[int32]bool, len(basins))
	for _, b := range basins {
		known[b.Number] = true
	}
	check := func(kind string, keys map[int32]struct{}) error {
		for n := range keys {
			if !known[n] {
				return &sim.ValidationError{Field: kind, Msg: fmt.Sprintf("%s references unknown basin %d", kind, n)}
			}
		}
		return nil
	}
	fixed := make(map[int32]struct{}, len(fs.FixedBC))
	for n, bc := range fs.FixedBC {
		if bc.Kind != forcing.BCFlow && bc.Kind != forcing.BCStage {
			return &sim.ValidationError{Field: "fixed_bc_kind", Msg: fmt.Sprintf("basin %d has unknown BC kind %v", n, bc.Kind)}
		}
		fixed[n] = struct{}{}
	}
	if err := check("fixed_bc", fixed); err != nil {
		return err
	}
	dynFlow := make(map[int32]struct{}, len(fs.DynamicFlowBC))
	for n := range fs.DynamicFlowBC {
		dynFlow[n] = struct{}{}
	}
	if err := check("dynamic_flow_bc", dynFlow); err != nil {
		return err
	}
	dynHead := make(map[int32]struct{}, len(fs.DynamicHeadBC))
	for n := range fs.DynamicHeadBC {
		dynHead[n] = struct{}{}
	}
	return check("dynamic_head_bc", dynHead)
}
