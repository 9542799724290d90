package alloc

import (
	"fmt"
	"math"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// fiberStrands maps an LC-duplex front port (1..12, already reduced to
// 1..6 within its MPO half) to the pair of fiber strands it uses on the
// back-side MPO-12 connector.
func fiberStrands(q int) (a, b int) {
	return 2*q - 1, 2 * q
}

// allocateLCBreakout runs once per fiber kind (call it twice: mmf, then
// smf). Each module pair consumes exactly two MPO-12 trunks — one per
// back-side MPO connector — both created when the pair is placed, even if
// only ports on the first connector end up in use.
func allocateLCBreakout(s *state, fiberKind domain.FiberKind, media domain.EndpointType, pairs []rackPair, demands map[rackPair]map[domain.EndpointType]int) {
	for _, pair := range pairs {
		count := demands[pair][media]
		if count <= 0 {
			continue
		}
		srcRack, dstRack := pair.lo, pair.hi
		modulesNeeded := int(math.Ceil(float64(count) / 12))
		remaining := count

		for moduleIndex := 1; moduleIndex <= modulesNeeded; moduleIndex++ {
			srcU, srcSlot := s.reserver.reserve(srcRack)
			dstU, dstSlot := s.reserver.reserve(dstRack)

			s.modules = append(s.modules,
				domain.Module{
					RackID: srcRack, PanelU: srcU, Slot: srcSlot,
					ModuleType: domain.ModuleLCBreakout, FiberKind: fiberKind, PolarityVariant: domain.PolarityAF,
					PeerRackID: dstRack, Dedicated: true,
				},
				domain.Module{
					RackID: dstRack, PanelU: dstU, Slot: dstSlot,
					ModuleType: domain.ModuleLCBreakout, FiberKind: fiberKind, PolarityVariant: domain.PolarityAF,
					PeerRackID: srcRack, Dedicated: true,
				},
			)

			cableIDs := map[int]string{}
			for _, mpoPort := range [2]int{1, 2} {
				cableIDs[mpoPort] = s.addCable(
					fmt.Sprintf("lc_trunk|%s|%s|%s|module%d|mpo%d", fiberKind, srcRack, dstRack, moduleIndex, mpoPort),
					domain.CableMPO12Trunk, fiberKind, domain.PolarityTypeA, srcRack, dstRack,
				)
			}

			portsThisModule := remaining
			if portsThisModule > 12 {
				portsThisModule = 12
			}
			for port := 1; port <= portsThisModule; port++ {
				mpoPort := 2
				q := port - 6
				if port <= 6 {
					mpoPort = 1
					q = port
				}
				fiberA, fiberB := fiberStrands(q)

				s.addSession(sessionSpec{
					media:       media,
					cableID:     cableIDs[mpoPort],
					adapterType: domain.ModuleLCBreakout,
					src:         domain.Endpoint{Rack: srcRack, U: srcU, Slot: srcSlot, Port: port},
					dst:         domain.Endpoint{Rack: dstRack, U: dstU, Slot: dstSlot, Port: port},
					fiberA:      intPtr(fiberA),
					fiberB:      intPtr(fiberB),
				})
			}
			remaining -= portsThisModule
		}
	}
}
