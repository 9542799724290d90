package alloc

import (
	"fmt"

	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/natural"
)

// portSlot is one (u, slot, port) triple a peer has been assigned within a
// UTP module.
type portSlot struct {
	u, slot, port int
}

// openUTPModule tracks the module currently being filled so the next peer
// in natural order can top it off before a new module is opened.
type openUTPModule struct {
	u, slot, used int
}

// allocateUTP is the packing heart of the allocator: per rack, it walks
// peers in natural order, consumes full 6-port modules first, and shares
// the tail of a partially-filled module with the next peer rather than
// wasting it. Port numbering within a shared module is always contiguous
// per peer and always allocated 1..6 in the order peers are serviced.
func allocateUTP(s *state, racks []domain.Rack, pairs []rackPair, demands map[rackPair]map[domain.EndpointType]int) {
	peerCounts := make(map[string]map[string]int, len(racks))
	for _, r := range racks {
		peerCounts[r.ID] = make(map[string]int)
	}
	for _, pair := range pairs {
		count := demands[pair][domain.EndpointUTPRJ45]
		if count <= 0 {
			continue
		}
		peerCounts[pair.lo][pair.hi] += count
		peerCounts[pair.hi][pair.lo] += count
	}

	type portMapKey struct{ rack, peer string }
	portMap := make(map[portMapKey][]portSlot)

	for _, r := range racks {
		rackID := r.ID
		peers := make([]string, 0, len(peerCounts[rackID]))
		for peer := range peerCounts[rackID] {
			peers = append(peers, peer)
		}
		natural.Sort(peers)

		var open *openUTPModule
		for _, peer := range peers {
			remaining := peerCounts[rackID][peer]
			key := portMapKey{rackID, peer}

			if open != nil && open.used < 6 && remaining > 0 {
				available := 6 - open.used
				fill := remaining
				if fill > available {
					fill = available
				}
				for i := 0; i < fill; i++ {
					open.used++
					portMap[key] = append(portMap[key], portSlot{open.u, open.slot, open.used})
				}
				remaining -= fill
				if open.used == 6 {
					open = nil
				}
			}

			for remaining >= 6 {
				u, slot := s.reserver.reserve(rackID)
				s.modules = append(s.modules, domain.Module{
					RackID: rackID, PanelU: u, Slot: slot,
					ModuleType: domain.ModuleUTP, Dedicated: false,
				})
				for port := 1; port <= 6; port++ {
					portMap[key] = append(portMap[key], portSlot{u, slot, port})
				}
				remaining -= 6
			}

			if remaining > 0 {
				if open == nil {
					u, slot := s.reserver.reserve(rackID)
					s.modules = append(s.modules, domain.Module{
						RackID: rackID, PanelU: u, Slot: slot,
						ModuleType: domain.ModuleUTP, Dedicated: false,
					})
					open = &openUTPModule{u: u, slot: slot}
				}
				for i := 0; i < remaining; i++ {
					open.used++
					portMap[key] = append(portMap[key], portSlot{open.u, open.slot, open.used})
				}
			}
		}
	}

	for _, pair := range pairs {
		count := demands[pair][domain.EndpointUTPRJ45]
		if count <= 0 {
			continue
		}
		srcRack, dstRack := pair.lo, pair.hi
		srcPorts := portMap[portMapKey{srcRack, dstRack}]
		dstPorts := portMap[portMapKey{dstRack, srcRack}]

		for idx := 0; idx < count; idx++ {
			sp, dp := srcPorts[idx], dstPorts[idx]
			cableID := s.addCable(
				fmt.Sprintf("utp|%s|%s|port%d", srcRack, dstRack, idx+1),
				domain.CableUTP, "", "", srcRack, dstRack,
			)
			s.addSession(sessionSpec{
				media:       domain.EndpointUTPRJ45,
				cableID:     cableID,
				adapterType: domain.ModuleUTP,
				src:         domain.Endpoint{Rack: srcRack, U: sp.u, Slot: sp.slot, Port: sp.port},
				dst:         domain.Endpoint{Rack: dstRack, U: dp.u, Slot: dp.slot, Port: dp.port},
			})
		}
	}
}
