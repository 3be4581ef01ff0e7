package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

// SetSectionLeader records the student leading a section, one leader per
// section, overwriting any previous leader.
func SetSectionLeader(ctx context.Context, db *sql.DB, section string, studentID int64) error {
	if !model.ValidSection(section) {
		return fmt.Errorf("setting leader: %w: %q", ErrInvalidSection, section)
	}
	if err := requireStudent(ctx, db, studentID); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx,
		`INSERT INTO section_leaders (section, leader_id) VALUES (?, ?)
		 ON CONFLICT(section) DO UPDATE SET leader_id = excluded.leader_id`,
		section, studentID,
	)
	if err != nil {
		return fmt.Errorf("setting leader for %s: %w", section, err)
	}
	return nil
}

// ListSectionLeaders returns the current leader of each section that has
// one, with the leader's name joined in.
func ListSectionLeaders(ctx context.Context, db *sql.DB) ([]model.SectionLeader, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.section, l.leader_id, s.first_name || ' ' || s.last_name
		 FROM section_leaders l
		 JOIN students s ON s.id = l.leader_id
		 ORDER BY l.section`)
	if err != nil {
		return nil, fmt.Errorf("listing section leaders: %w", err)
	}
	defer rows.Close()

	var leaders []model.SectionLeader
	for rows.Next() {
		var l model.SectionLeader
		if err := rows.Scan(&l.Section, &l.LeaderID, &l.LeaderName); err != nil {
			return nil, fmt.Errorf("scanning section leader: %w", err)
		}
		leaders = append(leaders, l)
	}
	return leaders, rows.Err()
}
