package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patchwork.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRevision() domain.Revision {
	fiberA, fiberB := 1, 2
	return domain.Revision{
		RevisionID: "11111111-1111-1111-1111-111111111111",
		ProjectID:  "proj-1",
		InputHash:  "deadbeef",
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Result: domain.AllocationResult{
			Panels:  []domain.Panel{{RackID: "R01", U: 1, SlotsPerU: 4}},
			Modules: []domain.Module{{RackID: "R01", PanelU: 1, Slot: 1, ModuleType: domain.ModuleMPOPassThrough, Dedicated: true}},
			Cables:  []domain.Cable{{CableID: "cafe", CableType: domain.CableMPO12Trunk, SrcRack: "R01", DstRack: "R02"}},
			Sessions: []domain.Session{{
				SessionID: "session-1", Media: domain.EndpointMMFLCDuplex, CableID: "cafe",
				AdapterType: domain.ModuleLCBreakout, LabelA: "R01U1S1P1", LabelB: "R02U1S1P1",
				Src: domain.Endpoint{Rack: "R01", Face: domain.Face, U: 1, Slot: 1, Port: 1},
				Dst: domain.Endpoint{Rack: "R02", Face: domain.Face, U: 1, Slot: 1, Port: 1},
				FiberA: &fiberA, FiberB: &fiberB,
			}},
		},
	}
}

func TestSaveAndGetRevisionRoundTrips(t *testing.T) {
	db := openTestDB(t)
	want := sampleRevision()

	if err := db.SaveRevision(want); err != nil {
		t.Fatalf("SaveRevision: %v", err)
	}

	got, err := db.GetRevision(want.RevisionID)
	if err != nil {
		t.Fatalf("GetRevision: %v", err)
	}
	if got.RevisionID != want.RevisionID || got.ProjectID != want.ProjectID || got.InputHash != want.InputHash {
		t.Errorf("revision metadata mismatch: got %+v", got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at mismatch: got %v, want %v", got.CreatedAt, want.CreatedAt)
	}
	if len(got.Result.Sessions) != 1 || got.Result.Sessions[0].SessionID != "session-1" {
		t.Fatalf("sessions did not round trip: %+v", got.Result.Sessions)
	}
	if got.Result.Sessions[0].FiberA == nil || *got.Result.Sessions[0].FiberA != 1 {
		t.Errorf("fiber_a did not round trip: %+v", got.Result.Sessions[0].FiberA)
	}
}

func TestGetRevisionNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetRevision("missing"); err != domain.ErrRevisionNotFound {
		t.Errorf("expected ErrRevisionNotFound, got %v", err)
	}
}

func TestFindByInputHash(t *testing.T) {
	db := openTestDB(t)
	want := sampleRevision()
	if err := db.SaveRevision(want); err != nil {
		t.Fatalf("SaveRevision: %v", err)
	}

	id, ok, err := db.FindByInputHash(want.ProjectID, want.InputHash)
	if err != nil {
		t.Fatalf("FindByInputHash: %v", err)
	}
	if !ok || id != want.RevisionID {
		t.Errorf("FindByInputHash = (%s, %v), want (%s, true)", id, ok, want.RevisionID)
	}

	if _, ok, err := db.FindByInputHash(want.ProjectID, "nope"); err != nil || ok {
		t.Errorf("expected no match for unknown hash, got ok=%v err=%v", ok, err)
	}
}

func TestListRevisions(t *testing.T) {
	db := openTestDB(t)
	rev := sampleRevision()
	if err := db.SaveRevision(rev); err != nil {
		t.Fatalf("SaveRevision: %v", err)
	}

	revisions, err := db.ListRevisions()
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revisions) != 1 || revisions[0].RevisionID != rev.RevisionID {
		t.Errorf("ListRevisions = %+v, want one entry for %s", revisions, rev.RevisionID)
	}
}
