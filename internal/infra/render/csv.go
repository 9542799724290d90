// Package render turns an allocation result into the artifact formats
// operators actually consume: a CSV session table, a JSON document, and a
// family of SVG diagrams.
package render

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

var csvHeader = []string{
	"project_id", "revision_id", "session_id", "media", "cable_id", "adapter_type",
	"label_a", "label_b",
	"src_rack", "src_face", "src_u", "src_slot", "src_port",
	"dst_rack", "dst_face", "dst_u", "dst_slot", "dst_port",
	"fiber_a", "fiber_b", "notes",
}

// CSV renders the 21-column session table, sorted by session_id. Sessions
// are assumed already sorted by the allocator's own ordering contract;
// CSV does not re-sort, it trusts its input.
func CSV(sessions []domain.Session, projectID, revisionID string) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, s := range sessions {
		record := []string{
			projectID,
			revisionID,
			s.SessionID,
			string(s.Media),
			s.CableID,
			string(s.AdapterType),
			s.LabelA,
			s.LabelB,
			s.Src.Rack, s.Src.Face, strconv.Itoa(s.Src.U), strconv.Itoa(s.Src.Slot), strconv.Itoa(s.Src.Port),
			s.Dst.Rack, s.Dst.Face, strconv.Itoa(s.Dst.U), strconv.Itoa(s.Dst.Slot), strconv.Itoa(s.Dst.Port),
			fiberCell(s.FiberA),
			fiberCell(s.FiberB),
			s.Notes,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fiberCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
