package alloc

import (
	"fmt"
	"math"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// allocateMPOEndToEnd is the first and highest-priority slot category: one
// dedicated mpo12_pass_through_12port module per side per 12 requested
// ports, pair-indexed across racks, wired 1:1 port-for-port (polarity B
// trunks).
func allocateMPOEndToEnd(s *state, pairs []rackPair, demands map[rackPair]map[domain.EndpointType]int) {
	for _, pair := range pairs {
		count := demands[pair][domain.EndpointMPO12]
		if count <= 0 {
			continue
		}
		srcRack, dstRack := pair.lo, pair.hi
		slotsNeeded := int(math.Ceil(float64(count) / 12))
		remaining := count

		for slotIndex := 1; slotIndex <= slotsNeeded; slotIndex++ {
			srcU, srcSlot := s.reserver.reserve(srcRack)
			dstU, dstSlot := s.reserver.reserve(dstRack)

			s.modules = append(s.modules,
				domain.Module{
					RackID: srcRack, PanelU: srcU, Slot: srcSlot,
					ModuleType: domain.ModuleMPOPassThrough, PolarityVariant: domain.PolarityA,
					PeerRackID: dstRack, Dedicated: true,
				},
				domain.Module{
					RackID: dstRack, PanelU: dstU, Slot: dstSlot,
					ModuleType: domain.ModuleMPOPassThrough, PolarityVariant: domain.PolarityA,
					PeerRackID: srcRack, Dedicated: true,
				},
			)

			portsThisSlot := remaining
			if portsThisSlot > 12 {
				portsThisSlot = 12
			}
			for port := 1; port <= portsThisSlot; port++ {
				cableID := s.addCable(
					fmt.Sprintf("mpo12|%s|%s|slot%d|port%d", srcRack, dstRack, slotIndex, port),
					domain.CableMPO12Trunk, "", domain.PolarityTypeB, srcRack, dstRack,
				)
				s.addSession(sessionSpec{
					media:       domain.EndpointMPO12,
					cableID:     cableID,
					adapterType: domain.ModuleMPOPassThrough,
					src:         domain.Endpoint{Rack: srcRack, U: srcU, Slot: srcSlot, Port: port},
					dst:         domain.Endpoint{Rack: dstRack, U: dstU, Slot: dstSlot, Port: port},
				})
			}
			remaining -= portsThisSlot
		}
	}
}
