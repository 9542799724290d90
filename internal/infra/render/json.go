package render

import (
	"encoding/json"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// document is the wire shape of the full JSON rendering: the result plus a
// metrics summary and an always-empty warnings array, matching the
// original export contract.
type document struct {
	ProjectID  string           `json:"project_id"`
	RevisionID string           `json:"revision_id,omitempty"`
	InputHash  string           `json:"input_hash,omitempty"`
	Metrics    documentMetrics  `json:"metrics"`
	Panels     []domain.Panel   `json:"panels"`
	Modules    []domain.Module  `json:"modules"`
	Cables     []domain.Cable   `json:"cables"`
	Sessions   []domain.Session `json:"sessions"`
	Warnings   []string         `json:"warnings"`
}

type documentMetrics struct {
	TotalSessions   int            `json:"total_sessions"`
	SessionsByMedia map[string]int `json:"sessions_by_media"`
	TotalCables     int            `json:"total_cables"`
	CablesByType    map[string]int `json:"cables_by_type"`
	TotalModules    int            `json:"total_modules"`
	ModulesByType   map[string]int `json:"modules_by_type"`
	TotalPanels     int            `json:"total_panels"`
}

// JSON renders the full result as a self-describing document: the raw
// entity lists plus derived counts, for a consumer that does not want to
// recompute them.
func JSON(result domain.AllocationResult, projectID, revisionID, inputHash string) ([]byte, error) {
	sessionsByMedia := map[string]int{}
	for _, s := range result.Sessions {
		sessionsByMedia[string(s.Media)]++
	}
	cablesByType := map[string]int{}
	for _, c := range result.Cables {
		cablesByType[string(c.CableType)]++
	}
	modulesByType := map[string]int{}
	for _, m := range result.Modules {
		modulesByType[string(m.ModuleType)]++
	}

	doc := document{
		ProjectID:  projectID,
		RevisionID: revisionID,
		InputHash:  inputHash,
		Metrics: documentMetrics{
			TotalSessions:   len(result.Sessions),
			SessionsByMedia: sessionsByMedia,
			TotalCables:     len(result.Cables),
			CablesByType:    cablesByType,
			TotalModules:    len(result.Modules),
			ModulesByType:   modulesByType,
			TotalPanels:     len(result.Panels),
		},
		Panels:   result.Panels,
		Modules:  result.Modules,
		Cables:   result.Cables,
		Sessions: result.Sessions,
		Warnings: []string{},
	}
	return json.MarshalIndent(doc, "", "  ")
}
