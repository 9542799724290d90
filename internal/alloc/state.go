package alloc

import (
	"fmt"

	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/idhash"
)

// state accumulates the modules, cables, and sessions emitted by one
// allocation run, plus the per-rack slot reserver they all share. It is
// created fresh for every call to Allocate and never escapes it.
type state struct {
	reserver *slotReserver
	modules  []domain.Module
	cables   []domain.Cable
	sessions []domain.Session
}

func newState(racks []domain.Rack) *state {
	return &state{reserver: newSlotReserver(racks)}
}

// addCable hashes canonical into a cable_id, appends the Cable, and returns
// the new cable_id for use by the sessions that will reference it.
func (s *state) addCable(canonical string, cableType domain.CableType, fiberKind domain.FiberKind, polarity domain.PolarityType, srcRack, dstRack string) string {
	id := idhash.ID(canonical)
	s.cables = append(s.cables, domain.Cable{
		CableID:      id,
		CableType:    cableType,
		FiberKind:    fiberKind,
		PolarityType: polarity,
		SrcRack:      srcRack,
		DstRack:      dstRack,
	})
	return id
}

// sessionSpec carries everything needed to emit one Session; fiber indices
// are nil for media that carry no fiber mapping (MPO12 end-to-end, UTP).
type sessionSpec struct {
	media       domain.EndpointType
	cableID     string
	adapterType domain.ModuleType
	src         domain.Endpoint
	dst         domain.Endpoint
	fiberA      *int
	fiberB      *int
}

// addSession synthesizes label_a/label_b and a deterministic session_id,
// then appends the Session.
func (s *state) addSession(spec sessionSpec) {
	spec.src.Face = domain.Face
	spec.dst.Face = domain.Face
	labelA := fmt.Sprintf("%sU%dS%dP%d", spec.src.Rack, spec.src.U, spec.src.Slot, spec.src.Port)
	labelB := fmt.Sprintf("%sU%dS%dP%d", spec.dst.Rack, spec.dst.U, spec.dst.Slot, spec.dst.Port)

	fiberPair := ""
	if spec.fiberA != nil {
		fiberPair = fmt.Sprintf("%d-%d", *spec.fiberA, *spec.fiberB)
	}
	canonical := idhash.Canonical(
		string(spec.media),
		spec.src.Rack, itoa(spec.src.U), itoa(spec.src.Slot), itoa(spec.src.Port),
		spec.dst.Rack, itoa(spec.dst.U), itoa(spec.dst.Slot), itoa(spec.dst.Port),
		spec.cableID,
		fiberPair,
	)
	id := idhash.ID(canonical)

	s.sessions = append(s.sessions, domain.Session{
		SessionID:   id,
		Media:       spec.media,
		CableID:     spec.cableID,
		AdapterType: spec.adapterType,
		LabelA:      labelA,
		LabelB:      labelB,
		Src:         spec.src,
		Dst:         spec.dst,
		FiberA:      spec.fiberA,
		FiberB:      spec.fiberB,
	})
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

func intPtr(n int) *int {
	return &n
}
