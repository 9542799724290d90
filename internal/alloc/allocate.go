// Package alloc implements the deterministic physical-termination
// allocator: a pure function from a validated project to a complete
// physical patch-cabling plan. Allocate takes no locks, touches no
// disk, and calls no clock — given the same project it always returns
// the same result, in the same order, down to the generated IDs.
package alloc

import (
	"sort"

	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/natural"
)

// Allocate runs the full allocation pipeline over a validated project:
// MPO end-to-end, then LC breakout (MMF, then SMF), then UTP, then emits
// panels from the slots each rack ended up consuming. Callers must run
// Validate first; Allocate does not re-check schema invariants.
//
// Ordering inside one call is total and deterministic: media category
// order is fixed, rack pairs within a category are processed in natural
// order, and ports within a module are processed in ascending order. The
// returned result's lists are additionally sorted per the external
// ordering contract before being returned.
func Allocate(project domain.Project) domain.AllocationResult {
	demands, pairs := normalizeDemands(project.Demands)

	s := newState(project.Racks)

	allocateMPOEndToEnd(s, pairs, demands)
	allocateLCBreakout(s, domain.FiberMMF, domain.EndpointMMFLCDuplex, pairs, demands)
	allocateLCBreakout(s, domain.FiberSMF, domain.EndpointSMFLCDuplex, pairs, demands)
	allocateUTP(s, project.Racks, pairs, demands)

	panels := buildPanels(project.Racks, s.modules)

	result := domain.AllocationResult{
		Panels:   panels,
		Modules:  s.modules,
		Cables:   s.cables,
		Sessions: s.sessions,
	}
	sortResult(&result)
	return result
}

// buildPanels emits one Panel per U actually consumed by a rack, 1..max_u
// with no gaps — the slot reserver never skips a U, so the max panel_u per
// rack is exactly how many panels that rack needs.
func buildPanels(racks []domain.Rack, modules []domain.Module) []domain.Panel {
	maxU := make(map[string]int, len(racks))
	for _, m := range modules {
		if m.PanelU > maxU[m.RackID] {
			maxU[m.RackID] = m.PanelU
		}
	}

	var panels []domain.Panel
	for _, r := range racks {
		for u := 1; u <= maxU[r.ID]; u++ {
			panels = append(panels, domain.Panel{RackID: r.ID, U: u, SlotsPerU: domain.SlotsPerU})
		}
	}
	return panels
}

// sortResult imposes the external ordering contract: panels and modules by
// (rack natural order, u, slot); cables by cable_id; sessions by
// session_id.
func sortResult(result *domain.AllocationResult) {
	sort.SliceStable(result.Panels, func(i, j int) bool {
		a, b := result.Panels[i], result.Panels[j]
		if a.RackID != b.RackID {
			return natural.Less(a.RackID, b.RackID)
		}
		return a.U < b.U
	})

	sort.SliceStable(result.Modules, func(i, j int) bool {
		a, b := result.Modules[i], result.Modules[j]
		if a.RackID != b.RackID {
			return natural.Less(a.RackID, b.RackID)
		}
		if a.PanelU != b.PanelU {
			return a.PanelU < b.PanelU
		}
		return a.Slot < b.Slot
	})

	sort.SliceStable(result.Cables, func(i, j int) bool {
		return result.Cables[i].CableID < result.Cables[j].CableID
	})

	sort.SliceStable(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].SessionID < result.Sessions[j].SessionID
	})
}
