package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/icecake0141/patchwork-beta/internal/domain"
)

// SaveRevision persists a revision and its flattened result rows in one
// transaction.
func (db *DB) SaveRevision(rev domain.Revision) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO revisions (revision_id, project_id, input_hash, created_at) VALUES (?, ?, ?, ?)`,
		rev.RevisionID, rev.ProjectID, rev.InputHash, rev.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert revision: %w", err)
	}

	for _, p := range rev.Result.Panels {
		if _, err := tx.Exec(
			`INSERT INTO panels (revision_id, rack_id, u, slots_per_u) VALUES (?, ?, ?, ?)`,
			rev.RevisionID, p.RackID, p.U, p.SlotsPerU,
		); err != nil {
			return fmt.Errorf("sqlite: insert panel: %w", err)
		}
	}

	for _, m := range rev.Result.Modules {
		if _, err := tx.Exec(
			`INSERT INTO modules (revision_id, rack_id, panel_u, slot, module_type, fiber_kind, polarity_variant, peer_rack_id, dedicated)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rev.RevisionID, m.RackID, m.PanelU, m.Slot, string(m.ModuleType), string(m.FiberKind), string(m.PolarityVariant), m.PeerRackID, m.Dedicated,
		); err != nil {
			return fmt.Errorf("sqlite: insert module: %w", err)
		}
	}

	for _, c := range rev.Result.Cables {
		if _, err := tx.Exec(
			`INSERT INTO cables (revision_id, cable_id, cable_type, fiber_kind, polarity_type, src_rack, dst_rack)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rev.RevisionID, c.CableID, string(c.CableType), string(c.FiberKind), string(c.PolarityType), c.SrcRack, c.DstRack,
		); err != nil {
			return fmt.Errorf("sqlite: insert cable: %w", err)
		}
	}

	for _, s := range rev.Result.Sessions {
		if _, err := tx.Exec(
			`INSERT INTO sessions (revision_id, session_id, media, cable_id, adapter_type, label_a, label_b,
			 src_rack, src_u, src_slot, src_port, dst_rack, dst_u, dst_slot, dst_port, fiber_a, fiber_b, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rev.RevisionID, s.SessionID, string(s.Media), s.CableID, string(s.AdapterType), s.LabelA, s.LabelB,
			s.Src.Rack, s.Src.U, s.Src.Slot, s.Src.Port, s.Dst.Rack, s.Dst.U, s.Dst.Slot, s.Dst.Port,
			nullableInt(s.FiberA), nullableInt(s.FiberB), s.Notes,
		); err != nil {
			return fmt.Errorf("sqlite: insert session: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// GetRevision reassembles one revision and its result from the flattened
// tables. Returns domain.ErrRevisionNotFound if no such revision exists.
func (db *DB) GetRevision(revisionID string) (domain.Revision, error) {
	var rev domain.Revision
	var createdAt string

	row := db.conn.QueryRow(
		`SELECT revision_id, project_id, input_hash, created_at FROM revisions WHERE revision_id = ?`,
		revisionID,
	)
	if err := row.Scan(&rev.RevisionID, &rev.ProjectID, &rev.InputHash, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Revision{}, domain.ErrRevisionNotFound
		}
		return domain.Revision{}, fmt.Errorf("sqlite: get revision: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Revision{}, fmt.Errorf("sqlite: parse created_at: %w", err)
	}
	rev.CreatedAt = parsed

	panels, err := db.loadPanels(revisionID)
	if err != nil {
		return domain.Revision{}, err
	}
	modules, err := db.loadModules(revisionID)
	if err != nil {
		return domain.Revision{}, err
	}
	cables, err := db.loadCables(revisionID)
	if err != nil {
		return domain.Revision{}, err
	}
	sessions, err := db.loadSessions(revisionID)
	if err != nil {
		return domain.Revision{}, err
	}
	rev.Result = domain.AllocationResult{Panels: panels, Modules: modules, Cables: cables, Sessions: sessions}
	return rev, nil
}

// FindByInputHash returns the most recent revision for a project whose
// input hash matches, if one has already been saved. ok is false if none
// exists.
func (db *DB) FindByInputHash(projectID, inputHash string) (revisionID string, ok bool, err error) {
	row := db.conn.QueryRow(
		`SELECT revision_id FROM revisions WHERE project_id = ? AND input_hash = ? ORDER BY created_at DESC LIMIT 1`,
		projectID, inputHash,
	)
	if err := row.Scan(&revisionID); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlite: find by input hash: %w", err)
	}
	return revisionID, true, nil
}

// ListRevisions returns every stored revision's summary, newest first.
func (db *DB) ListRevisions() ([]domain.Revision, error) {
	rows, err := db.conn.Query(`SELECT revision_id, project_id, input_hash, created_at FROM revisions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list revisions: %w", err)
	}
	defer rows.Close()

	var out []domain.Revision
	for rows.Next() {
		var rev domain.Revision
		var createdAt string
		if err := rows.Scan(&rev.RevisionID, &rev.ProjectID, &rev.InputHash, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan revision: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse created_at: %w", err)
		}
		rev.CreatedAt = parsed
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (db *DB) loadPanels(revisionID string) ([]domain.Panel, error) {
	rows, err := db.conn.Query(`SELECT rack_id, u, slots_per_u FROM panels WHERE revision_id = ?`, revisionID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load panels: %w", err)
	}
	defer rows.Close()

	var out []domain.Panel
	for rows.Next() {
		var p domain.Panel
		if err := rows.Scan(&p.RackID, &p.U, &p.SlotsPerU); err != nil {
			return nil, fmt.Errorf("sqlite: scan panel: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (db *DB) loadModules(revisionID string) ([]domain.Module, error) {
	rows, err := db.conn.Query(
		`SELECT rack_id, panel_u, slot, module_type, fiber_kind, polarity_variant, peer_rack_id, dedicated
		 FROM modules WHERE revision_id = ?`, revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load modules: %w", err)
	}
	defer rows.Close()

	var out []domain.Module
	for rows.Next() {
		var m domain.Module
		var moduleType, fiberKind, polarityVariant string
		if err := rows.Scan(&m.RackID, &m.PanelU, &m.Slot, &moduleType, &fiberKind, &polarityVariant, &m.PeerRackID, &m.Dedicated); err != nil {
			return nil, fmt.Errorf("sqlite: scan module: %w", err)
		}
		m.ModuleType = domain.ModuleType(moduleType)
		m.FiberKind = domain.FiberKind(fiberKind)
		m.PolarityVariant = domain.PolarityVariant(polarityVariant)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (db *DB) loadCables(revisionID string) ([]domain.Cable, error) {
	rows, err := db.conn.Query(
		`SELECT cable_id, cable_type, fiber_kind, polarity_type, src_rack, dst_rack FROM cables WHERE revision_id = ?`,
		revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load cables: %w", err)
	}
	defer rows.Close()

	var out []domain.Cable
	for rows.Next() {
		var c domain.Cable
		var cableType, fiberKind, polarityType string
		if err := rows.Scan(&c.CableID, &cableType, &fiberKind, &polarityType, &c.SrcRack, &c.DstRack); err != nil {
			return nil, fmt.Errorf("sqlite: scan cable: %w", err)
		}
		c.CableType = domain.CableType(cableType)
		c.FiberKind = domain.FiberKind(fiberKind)
		c.PolarityType = domain.PolarityType(polarityType)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (db *DB) loadSessions(revisionID string) ([]domain.Session, error) {
	rows, err := db.conn.Query(
		`SELECT session_id, media, cable_id, adapter_type, label_a, label_b,
		 src_rack, src_u, src_slot, src_port, dst_rack, dst_u, dst_slot, dst_port, fiber_a, fiber_b, notes
		 FROM sessions WHERE revision_id = ?`, revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.Session
	for rows.Next() {
		var s domain.Session
		var media, adapterType string
		var fiberA, fiberB sql.NullInt64
		if err := rows.Scan(
			&s.SessionID, &media, &s.CableID, &adapterType, &s.LabelA, &s.LabelB,
			&s.Src.Rack, &s.Src.U, &s.Src.Slot, &s.Src.Port,
			&s.Dst.Rack, &s.Dst.U, &s.Dst.Slot, &s.Dst.Port,
			&fiberA, &fiberB, &s.Notes,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scan session: %w", err)
		}
		s.Media = domain.EndpointType(media)
		s.AdapterType = domain.ModuleType(adapterType)
		s.Src.Face = domain.Face
		s.Dst.Face = domain.Face
		if fiberA.Valid {
			v := int(fiberA.Int64)
			s.FiberA = &v
		}
		if fiberB.Valid {
			v := int(fiberB.Int64)
			s.FiberB = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
