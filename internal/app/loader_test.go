package app

import (
	"strings"
	"testing"
)

func TestLoadProjectDecodesValidDocument(t *testing.T) {
	body := `{"id":"proj-1","racks":[{"id":"R01"},{"id":"R02"}],"demands":[
		{"id":"D001","src":"R01","dst":"R02","endpoint_type":"mpo12","count":2}
	]}`
	project, err := LoadProject(strings.NewReader(body))
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if project.ID != "proj-1" || len(project.Racks) != 2 || len(project.Demands) != 1 {
		t.Errorf("unexpected project: %+v", project)
	}
}

func TestLoadProjectRejectsEmptyRacks(t *testing.T) {
	_, err := LoadProject(strings.NewReader(`{"id":"proj-1","racks":[],"demands":[]}`))
	if err == nil {
		t.Fatal("expected error for project with no racks")
	}
}

func TestLoadProjectRejectsMalformedJSON(t *testing.T) {
	_, err := LoadProject(strings.NewReader(`not json`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
