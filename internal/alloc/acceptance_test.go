package alloc

import (
	"sort"
	"testing"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

func modulesOfRack(result domain.AllocationResult, rack string, moduleType domain.ModuleType) []domain.Module {
	var out []domain.Module
	for _, m := range result.Modules {
		if m.RackID == rack && m.ModuleType == moduleType {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PanelU != out[j].PanelU {
			return out[i].PanelU < out[j].PanelU
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}

func srcPortsAt(result domain.AllocationResult, media domain.EndpointType, u, slot int) []int {
	var ports []int
	for _, s := range result.Sessions {
		if s.Media == media && s.Src.U == u && s.Src.Slot == slot {
			ports = append(ports, s.Src.Port)
		}
	}
	sort.Ints(ports)
	return ports
}

func portsAt(result domain.AllocationResult, media domain.EndpointType, dstRack string, u, slot int) []int {
	var ports []int
	for _, s := range result.Sessions {
		if s.Media == media && s.Dst.Rack == dstRack && s.Src.U == u && s.Src.Slot == slot {
			ports = append(ports, s.Src.Port)
		}
	}
	sort.Ints(ports)
	return ports
}

func intsEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestLCBreakoutScaling mirrors the count=13 LC duplex scenario: one module
// takes the first 12 ports, a second module opens for the 13th.
func TestLCBreakoutScaling(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}},
		Demands: []domain.Demand{
			{ID: "D001", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMMFLCDuplex, Count: 13},
		},
	}
	result := Allocate(project)

	r01 := modulesOfRack(result, "R01", domain.ModuleLCBreakout)
	r02 := modulesOfRack(result, "R02", domain.ModuleLCBreakout)
	if len(r01) != 2 || len(r02) != 2 {
		t.Fatalf("expected 2 LC modules per rack, got R01=%d R02=%d", len(r01), len(r02))
	}

	var lcSessions int
	for _, s := range result.Sessions {
		if s.Media == domain.EndpointMMFLCDuplex {
			lcSessions++
		}
	}
	if lcSessions != 13 {
		t.Errorf("expected 13 lc sessions, got %d", lcSessions)
	}

	intsEqual(t, srcPortsAt(result, domain.EndpointMMFLCDuplex, r01[0].PanelU, r01[0].Slot), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	intsEqual(t, srcPortsAt(result, domain.EndpointMMFLCDuplex, r01[1].PanelU, r01[1].Slot), []int{1})

	var mmfTrunks int
	for _, c := range result.Cables {
		if c.CableType == domain.CableMPO12Trunk && c.FiberKind == domain.FiberMMF {
			mmfTrunks++
		}
	}
	if mmfTrunks != 4 {
		t.Errorf("expected 4 mmf trunks, got %d", mmfTrunks)
	}
}

// TestMPOEndToEndSlotCapacity mirrors the count=14 MPO scenario: 12 ports
// fill the first module, 2 spill into a second.
func TestMPOEndToEndSlotCapacity(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}},
		Demands: []domain.Demand{
			{ID: "D002", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMPO12, Count: 14},
		},
	}
	result := Allocate(project)

	r01 := modulesOfRack(result, "R01", domain.ModuleMPOPassThrough)
	r02 := modulesOfRack(result, "R02", domain.ModuleMPOPassThrough)
	if len(r01) != 2 || len(r02) != 2 {
		t.Fatalf("expected 2 MPO modules per rack, got R01=%d R02=%d", len(r01), len(r02))
	}

	var mpoSessions []domain.Session
	for _, s := range result.Sessions {
		if s.Media == domain.EndpointMPO12 {
			mpoSessions = append(mpoSessions, s)
		}
	}
	if len(mpoSessions) != 14 {
		t.Fatalf("expected 14 mpo sessions, got %d", len(mpoSessions))
	}

	intsEqual(t, srcPortsAt(result, domain.EndpointMPO12, r01[0].PanelU, r01[0].Slot), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	intsEqual(t, srcPortsAt(result, domain.EndpointMPO12, r01[1].PanelU, r01[1].Slot), []int{1, 2})

	var trunks int
	for _, c := range result.Cables {
		if c.CableType == domain.CableMPO12Trunk {
			trunks++
		}
	}
	if trunks != 14 {
		t.Errorf("expected 14 trunks, got %d", trunks)
	}
	for _, s := range mpoSessions {
		if s.Src.Port != s.Dst.Port {
			t.Errorf("mpo session %s: src_port %d != dst_port %d", s.SessionID, s.Src.Port, s.Dst.Port)
		}
	}
}

// TestUTPGroupingTailSharing mirrors the 7+2 UTP scenario: R01 needs 7 ports
// to R02 and 2 to R03; the first module fills fully with R02, the second
// module shares its tail between R02 (port 1) and R03 (ports 2-3).
func TestUTPGroupingTailSharing(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}, {ID: "R03"}},
		Demands: []domain.Demand{
			{ID: "D003", Src: "R01", Dst: "R02", EndpointType: domain.EndpointUTPRJ45, Count: 7},
			{ID: "D004", Src: "R01", Dst: "R03", EndpointType: domain.EndpointUTPRJ45, Count: 2},
		},
	}
	result := Allocate(project)

	r01 := modulesOfRack(result, "R01", domain.ModuleUTP)
	if len(r01) != 2 {
		t.Fatalf("expected 2 UTP modules on R01, got %d", len(r01))
	}

	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R02", r01[0].PanelU, r01[0].Slot), []int{1, 2, 3, 4, 5, 6})
	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R02", r01[1].PanelU, r01[1].Slot), []int{1})
	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R03", r01[1].PanelU, r01[1].Slot), []int{2, 3})
}

// TestUTPTailModuleExactFill covers the boundary where a tail fill lands
// exactly on 6 used ports and the open module must close.
func TestUTPTailModuleExactFill(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}, {ID: "R03"}},
		Demands: []domain.Demand{
			{ID: "D007", Src: "R01", Dst: "R02", EndpointType: domain.EndpointUTPRJ45, Count: 4},
			{ID: "D008", Src: "R01", Dst: "R03", EndpointType: domain.EndpointUTPRJ45, Count: 2},
		},
	}
	result := Allocate(project)

	r01 := modulesOfRack(result, "R01", domain.ModuleUTP)
	if len(r01) != 1 {
		t.Fatalf("expected a single shared UTP module on R01, got %d", len(r01))
	}

	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R02", r01[0].PanelU, r01[0].Slot), []int{1, 2, 3, 4})
	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R03", r01[0].PanelU, r01[0].Slot), []int{5, 6})
}

// TestMixedInUBehavior mirrors a 36-port MPO demand (exactly 3 modules)
// followed by a single LC duplex demand: the LC module opens in the same
// U, the fourth slot, right after the three MPO modules fill slots 1-3.
func TestMixedInUBehavior(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}},
		Demands: []domain.Demand{
			{ID: "D005", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMPO12, Count: 36},
			{ID: "D006", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMMFLCDuplex, Count: 1},
		},
	}
	result := Allocate(project)

	var r01 []domain.Module
	for _, m := range result.Modules {
		if m.RackID == "R01" {
			r01 = append(r01, m)
		}
	}
	sort.Slice(r01, func(i, j int) bool {
		if r01[i].PanelU != r01[j].PanelU {
			return r01[i].PanelU < r01[j].PanelU
		}
		return r01[i].Slot < r01[j].Slot
	})
	if len(r01) < 4 {
		t.Fatalf("expected at least 4 modules on R01, got %d", len(r01))
	}

	wantTypes := []domain.ModuleType{
		domain.ModuleMPOPassThrough, domain.ModuleMPOPassThrough, domain.ModuleMPOPassThrough, domain.ModuleLCBreakout,
	}
	for i, want := range wantTypes {
		if r01[i].ModuleType != want {
			t.Errorf("module %d: got %s, want %s", i, r01[i].ModuleType, want)
		}
	}
	wantSlots := [][2]int{{1, 1}, {1, 2}, {1, 3}, {1, 4}}
	for i, want := range wantSlots {
		if r01[i].PanelU != want[0] || r01[i].Slot != want[1] {
			t.Errorf("module %d: got (u=%d,slot=%d), want (u=%d,slot=%d)", i, r01[i].PanelU, r01[i].Slot, want[0], want[1])
		}
	}
}

// TestNaturalOrderAcrossPairs checks that R2 is processed before R10, not
// lexicographically after it.
func TestNaturalOrderAcrossPairs(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R1"}, {ID: "R2"}, {ID: "R10"}},
		Demands: []domain.Demand{
			{ID: "D01", Src: "R10", Dst: "R1", EndpointType: domain.EndpointUTPRJ45, Count: 1},
			{ID: "D02", Src: "R2", Dst: "R1", EndpointType: domain.EndpointUTPRJ45, Count: 1},
		},
	}
	result := Allocate(project)

	r1 := modulesOfRack(result, "R1", domain.ModuleUTP)
	if len(r1) != 1 {
		t.Fatalf("expected a single shared module on R1, got %d", len(r1))
	}
	// R2 sorts before R10 in natural order, so it is serviced first and
	// gets port 1; R10 gets port 2.
	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R2", r1[0].PanelU, r1[0].Slot), []int{1})
	intsEqual(t, portsAt(result, domain.EndpointUTPRJ45, "R10", r1[0].PanelU, r1[0].Slot), []int{2})
}

// TestAllocateIsDeterministic runs the same project twice and requires the
// same session and cable IDs, in the same order, both times.
func TestAllocateIsDeterministic(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}, {ID: "R03"}},
		Demands: []domain.Demand{
			{ID: "D001", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMPO12, Count: 5},
			{ID: "D002", Src: "R01", Dst: "R03", EndpointType: domain.EndpointUTPRJ45, Count: 3},
			{ID: "D003", Src: "R02", Dst: "R03", EndpointType: domain.EndpointSMFLCDuplex, Count: 2},
		},
	}
	first := Allocate(project)
	second := Allocate(project)

	if len(first.Sessions) != len(second.Sessions) {
		t.Fatalf("session count differs across runs: %d vs %d", len(first.Sessions), len(second.Sessions))
	}
	for i := range first.Sessions {
		if first.Sessions[i].SessionID != second.Sessions[i].SessionID {
			t.Errorf("session %d id differs across runs: %s vs %s", i, first.Sessions[i].SessionID, second.Sessions[i].SessionID)
		}
	}
	for i := range first.Cables {
		if first.Cables[i].CableID != second.Cables[i].CableID {
			t.Errorf("cable %d id differs across runs: %s vs %s", i, first.Cables[i].CableID, second.Cables[i].CableID)
		}
	}
}

// TestSessionCountMatchesDemand checks the total session count equals the
// sum of demand counts, one session per requested port.
func TestSessionCountMatchesDemand(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}},
		Demands: []domain.Demand{
			{ID: "D001", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMPO12, Count: 9},
			{ID: "D002", Src: "R01", Dst: "R02", EndpointType: domain.EndpointUTPRJ45, Count: 5},
		},
	}
	result := Allocate(project)
	if len(result.Sessions) != 14 {
		t.Errorf("expected 14 sessions, got %d", len(result.Sessions))
	}
}

// TestEveryCableHasAtLeastOneSession ensures no orphan cables are emitted
// when a module pair's both back-side MPO trunks are actually exercised.
func TestEveryCableHasAtLeastOneSession(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R01"}, {ID: "R02"}},
		Demands: []domain.Demand{
			{ID: "D001", Src: "R01", Dst: "R02", EndpointType: domain.EndpointMMFLCDuplex, Count: 12},
		},
	}
	result := Allocate(project)
	referenced := make(map[string]bool, len(result.Sessions))
	for _, s := range result.Sessions {
		referenced[s.CableID] = true
	}
	for _, c := range result.Cables {
		if !referenced[c.CableID] {
			t.Errorf("cable %s has no referencing session", c.CableID)
		}
	}
}

// TestResultOrdering checks part of the external ordering contract: cables
// and sessions by id, and panels by u within each rack.
func TestResultOrdering(t *testing.T) {
	project := domain.Project{
		Racks: []domain.Rack{{ID: "R10"}, {ID: "R2"}},
		Demands: []domain.Demand{
			{ID: "D001", Src: "R10", Dst: "R2", EndpointType: domain.EndpointMPO12, Count: 2},
		},
	}
	result := Allocate(project)

	if !sort.SliceIsSorted(result.Cables, func(i, j int) bool { return result.Cables[i].CableID < result.Cables[j].CableID }) {
		t.Error("cables not sorted by cable_id")
	}
	if !sort.SliceIsSorted(result.Sessions, func(i, j int) bool { return result.Sessions[i].SessionID < result.Sessions[j].SessionID }) {
		t.Error("sessions not sorted by session_id")
	}
	for i := 1; i < len(result.Panels); i++ {
		prev, cur := result.Panels[i-1], result.Panels[i]
		if prev.RackID == cur.RackID && prev.U > cur.U {
			t.Errorf("panels not sorted by u within rack: %+v then %+v", prev, cur)
		}
	}
}
