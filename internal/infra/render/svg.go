package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/icecake0141/patchwork-beta/internal/domain"
	"github.com/icecake0141/patchwork-beta/internal/natural"
)

var mediaColors = map[domain.EndpointType]string{
	domain.EndpointMMFLCDuplex: "#4a90d9",
	domain.EndpointSMFLCDuplex: "#9b59b6",
	domain.EndpointMPO12:       "#7b68ee",
	domain.EndpointUTPRJ45:     "#5cb85c",
}

var moduleFill = map[domain.ModuleType]string{
	domain.ModuleLCBreakout:     "#d0e8ff",
	domain.ModuleMPOPassThrough: "#e0d8ff",
	domain.ModuleUTP:            "#d8f0d8",
}

var mediaAbbrev = map[domain.EndpointType]string{
	domain.EndpointMMFLCDuplex: "MMF-LC",
	domain.EndpointSMFLCDuplex: "SMF-LC",
	domain.EndpointMPO12:       "MPO12",
	domain.EndpointUTPRJ45:     "UTP",
}

func moduleAbbrev(moduleType domain.ModuleType, fiberKind domain.FiberKind) string {
	switch moduleType {
	case domain.ModuleLCBreakout:
		return "LC-" + strings.ToUpper(string(fiberKind))
	case domain.ModuleMPOPassThrough:
		return "MPO-PT"
	case domain.ModuleUTP:
		return "UTP"
	default:
		return string(moduleType)
	}
}

// SVG renders the three diagram families the operator views consume: one
// topology overview, one panel-occupancy diagram per rack, and one
// connection-detail diagram per connected rack pair.
func SVG(result domain.AllocationResult) (topology string, rackPanels map[string]string, pairDetail map[string]string, err error) {
	topology = renderTopology(result)

	rackSet := map[string]bool{}
	for _, p := range result.Panels {
		rackSet[p.RackID] = true
	}
	racks := make([]string, 0, len(rackSet))
	for r := range rackSet {
		racks = append(racks, r)
	}
	natural.Sort(racks)

	rackPanels = make(map[string]string, len(racks))
	for _, rackID := range racks {
		rackPanels[rackID] = renderRackPanels(rackID, result)
	}

	type pairKey struct{ a, b string }
	pairSet := map[pairKey]bool{}
	for _, s := range result.Sessions {
		pairSet[pairKey{s.Src.Rack, s.Dst.Rack}] = true
	}
	pairs := make([]pairKey, 0, len(pairSet))
	for p := range pairSet {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return natural.Less(pairs[i].a, pairs[j].a)
		}
		return natural.Less(pairs[i].b, pairs[j].b)
	})

	pairDetail = make(map[string]string, len(pairs))
	for _, p := range pairs {
		key := fmt.Sprintf("%s_%s", p.a, p.b)
		pairDetail[key] = renderPairDetail(p.a, p.b, result)
	}
	return topology, rackPanels, pairDetail, nil
}

func renderSVGRoot(kind string, attrs map[string]string, lines []string) string {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	for k, v := range attrs {
		fmt.Fprintf(&b, ` %s="%s"`, html.EscapeString(k), html.EscapeString(v))
	}
	b.WriteString(">")
	fmt.Fprintf(&b, "<title>%s</title>", html.EscapeString(kind))
	for _, line := range lines {
		fmt.Fprintf(&b, "<text>%s</text>", html.EscapeString(line))
	}
	b.WriteString("</svg>")
	return b.String()
}

const slotsPerURendered = domain.SlotsPerU

func renderTopology(result domain.AllocationResult) string {
	rackSet := map[string]bool{}
	for _, p := range result.Panels {
		rackSet[p.RackID] = true
	}
	racks := make([]string, 0, len(rackSet))
	for r := range rackSet {
		racks = append(racks, r)
	}
	natural.Sort(racks)

	if len(racks) == 0 {
		return renderSVGRoot("topology", map[string]string{"data-kind": "topology"}, []string{"Topology (empty)"})
	}

	type pairKey struct{ a, b string }
	summary := map[pairKey]map[domain.EndpointType]int{}
	for _, s := range result.Sessions {
		a, b := natural.Pair(s.Src.Rack, s.Dst.Rack)
		key := pairKey{a, b}
		if summary[key] == nil {
			summary[key] = map[domain.EndpointType]int{}
		}
		summary[key][s.Media]++
	}

	const rackW, rackH = 90, 36
	const hGap, vGap = 50, 80
	const margin = 30
	const titleH = 40
	cols := len(racks)
	if cols > 6 {
		cols = 6
	}
	totalRows := (len(racks) + cols - 1) / cols
	svgW := margin*2 + cols*rackW + max(cols-1, 0)*hGap
	svgH := titleH + margin*2 + totalRows*rackH + max(totalRows-1, 0)*vGap + 20

	type point struct{ x, y int }
	pos := make(map[string]point, len(racks))
	for i, rackID := range racks {
		col := i % cols
		row := i / cols
		pos[rackID] = point{
			x: margin + col*(rackW+hGap),
			y: titleH + margin + row*(rackH+vGap),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" data-kind="topology" width="%d" height="%d" style="font-family:monospace;font-size:12px;background:#fff;">`, svgW, svgH)
	b.WriteString("<title>Topology</title>")
	fmt.Fprintf(&b, `<text x="%d" y="26" text-anchor="middle" style="font-size:15px;font-weight:bold;">Topology</text>`, svgW/2)

	pairKeys := make([]pairKey, 0, len(summary))
	for k := range summary {
		pairKeys = append(pairKeys, k)
	}
	sort.Slice(pairKeys, func(i, j int) bool {
		if pairKeys[i].a != pairKeys[j].a {
			return natural.Less(pairKeys[i].a, pairKeys[j].a)
		}
		return natural.Less(pairKeys[i].b, pairKeys[j].b)
	})

	for _, key := range pairKeys {
		pa, pb := pos[key.a], pos[key.b]
		x1, y1 := pa.x+rackW/2, pa.y+rackH/2
		x2, y2 := pb.x+rackW/2, pb.y+rackH/2

		medias := make([]domain.EndpointType, 0, len(summary[key]))
		for m := range summary[key] {
			medias = append(medias, m)
		}
		sort.Slice(medias, func(i, j int) bool { return medias[i] < medias[j] })
		parts := make([]string, 0, len(medias))
		for _, m := range medias {
			parts = append(parts, fmt.Sprintf("%s×%d", mediaAbbrev[m], summary[key][m]))
		}
		label := strings.Join(parts, " | ")

		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#aaa" stroke-width="2"/>`, x1, y1, x2, y2)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" style="font-size:10px;fill:#444;">%s</text>`, (x1+x2)/2, (y1+y2)/2-6, html.EscapeString(label))
	}

	for _, rackID := range racks {
		p := pos[rackID]
		safeID := html.EscapeString(rackID)
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#f5f5f5" stroke="#333" stroke-width="1.5"/>`, p.x, p.y, rackW, rackH)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" style="font-size:12px;">%s</text>`, p.x+rackW/2, p.y+rackH/2+4, safeID)
	}

	b.WriteString("</svg>")
	return b.String()
}

func renderRackPanels(rackID string, result domain.AllocationResult) string {
	var rackModules []domain.Module
	for _, m := range result.Modules {
		if m.RackID == rackID {
			rackModules = append(rackModules, m)
		}
	}
	sort.Slice(rackModules, func(i, j int) bool {
		if rackModules[i].PanelU != rackModules[j].PanelU {
			return rackModules[i].PanelU < rackModules[j].PanelU
		}
		return rackModules[i].Slot < rackModules[j].Slot
	})

	maxU := 0
	for _, m := range rackModules {
		if m.PanelU > maxU {
			maxU = m.PanelU
		}
	}
	if maxU == 0 {
		return renderSVGRoot("rack-panels", map[string]string{"data-kind": "rack-panels", "data-rack": rackID}, []string{fmt.Sprintf("Rack %s (empty)", rackID)})
	}

	type cellKey struct{ u, slot int }
	modMap := make(map[cellKey]domain.Module, len(rackModules))
	for _, m := range rackModules {
		modMap[cellKey{m.PanelU, m.Slot}] = m
	}

	const slotW, slotH = 130, 34
	const labelW = 38
	const margin = 20
	const titleH = 44
	const legendH = 28
	svgW := margin*2 + labelW + slotsPerURendered*slotW
	svgH := titleH + maxU*slotH + margin*2 + legendH
	safeRack := html.EscapeString(rackID)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" data-kind="rack-panels" data-rack="%s" width="%d" height="%d" style="font-family:monospace;font-size:11px;background:#fff;">`, safeRack, svgW, svgH)
	fmt.Fprintf(&b, "<title>Rack %s</title>", safeRack)
	fmt.Fprintf(&b, `<text x="%d" y="26" text-anchor="middle" style="font-size:14px;font-weight:bold;">Rack %s — Panel Layout</text>`, svgW/2, safeRack)

	for slot := 1; slot <= slotsPerURendered; slot++ {
		hx := margin + labelW + (slot-1)*slotW + slotW/2
		fmt.Fprintf(&b, `<text x="%d" y="42" text-anchor="middle" style="font-size:10px;fill:#666;">Slot %d</text>`, hx, slot)
	}

	for u := 1; u <= maxU; u++ {
		ry := titleH + (u-1)*slotH + margin
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" style="font-size:10px;fill:#666;">U%d</text>`, margin+labelW/2, ry+slotH/2+4, u)
		for slot := 1; slot <= slotsPerURendered; slot++ {
			sx := margin + labelW + (slot-1)*slotW
			module, ok := modMap[cellKey{u, slot}]
			if !ok {
				continue
			}
			fill := moduleFill[module.ModuleType]
			if fill == "" {
				fill = "#f5f5f5"
			}
			abbrev := moduleAbbrev(module.ModuleType, module.FiberKind)
			peer := module.PeerRackID
			if peer == "" {
				peer = "shared"
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#888" stroke-width="1"/>`, sx, ry, slotW, slotH, fill)
			fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" style="font-size:11px;font-weight:bold;">%s</text>`, sx+slotW/2, ry+slotH/2-4, html.EscapeString(abbrev))
			fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" style="font-size:9px;fill:#555;">%s</text>`, sx+slotW/2, ry+slotH/2+10, html.EscapeString(peer))
		}
	}

	b.WriteString("</svg>")
	return b.String()
}

func renderPairDetail(rackA, rackB string, result domain.AllocationResult) string {
	var sessions []domain.Session
	for _, s := range result.Sessions {
		if s.Src.Rack == rackA && s.Dst.Rack == rackB {
			sessions = append(sessions, s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if a.Src.U != b.Src.U {
			return a.Src.U < b.Src.U
		}
		if a.Src.Slot != b.Src.Slot {
			return a.Src.Slot < b.Src.Slot
		}
		return a.Src.Port < b.Src.Port
	})

	safeKey := html.EscapeString(fmt.Sprintf("%s_%s", rackA, rackB))
	if len(sessions) == 0 {
		return renderSVGRoot("pair-detail", map[string]string{"data-kind": "pair-detail", "data-pair": fmt.Sprintf("%s_%s", rackA, rackB)}, []string{fmt.Sprintf("Pair %s-%s (no sessions)", rackA, rackB)})
	}

	const rowH = 18
	const titleH = 48
	const portColW = 150
	const midW = 100
	const margin = 20
	svgW := margin*2 + portColW + midW + portColW
	svgH := titleH + len(sessions)*rowH + margin*2
	safeA, safeB := html.EscapeString(rackA), html.EscapeString(rackB)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" data-kind="pair-detail" data-pair="%s" width="%d" height="%d" style="font-family:monospace;font-size:11px;background:#fff;">`, safeKey, svgW, svgH)
	fmt.Fprintf(&b, "<title>Pair %s-%s</title>", safeA, safeB)
	fmt.Fprintf(&b, `<text x="%d" y="22" text-anchor="middle" style="font-size:14px;font-weight:bold;">Pair Detail: %s &#8596; %s</text>`, svgW/2, safeA, safeB)
	fmt.Fprintf(&b, `<text x="%d" y="40" text-anchor="middle" style="font-size:11px;font-weight:bold;">%s</text>`, margin+portColW/2, safeA)
	fmt.Fprintf(&b, `<text x="%d" y="40" text-anchor="middle" style="font-size:11px;font-weight:bold;">%s</text>`, margin+portColW+midW+portColW/2, safeB)

	xSrcRight := margin + portColW
	xDstLeft := margin + portColW + midW
	for i, s := range sessions {
		cy := titleH + i*rowH + margin + rowH/2
		color := mediaColors[s.Media]
		if color == "" {
			color = "#999"
		}
		srcLabel := fmt.Sprintf("U%dS%dP%d", s.Src.U, s.Src.Slot, s.Src.Port)
		dstLabel := fmt.Sprintf("U%dS%dP%d", s.Dst.U, s.Dst.Slot, s.Dst.Port)
		fiberInfo := ""
		if s.FiberA != nil && s.FiberB != nil {
			fiberInfo = fmt.Sprintf(" f%d/%d", *s.FiberA, *s.FiberB)
		}
		midLabel := html.EscapeString(mediaAbbrev[s.Media] + fiberInfo)

		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="end" style="font-size:10px;">%s</text>`, xSrcRight-4, cy+4, html.EscapeString(srcLabel))
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1.5"/>`, xSrcRight, cy, xDstLeft, cy, color)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" style="font-size:9px;">%s</text>`, xSrcRight+midW/2, cy-2, midLabel)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="start" style="font-size:10px;">%s</text>`, xDstLeft+4, cy+4, html.EscapeString(dstLabel))
	}

	b.WriteString("</svg>")
	return b.String()
}
