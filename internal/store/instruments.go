package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

// ListInstrumentTypes returns the seeded type lookup, ordered by section
// and name.
func ListInstrumentTypes(ctx context.Context, db *sql.DB) ([]model.InstrumentType, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, section FROM instrument_types ORDER BY section, name`)
	if err != nil {
		return nil, fmt.Errorf("listing instrument types: %w", err)
	}
	defer rows.Close()

	var types []model.InstrumentType
	for rows.Next() {
		var t model.InstrumentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Section); err != nil {
			return nil, fmt.Errorf("scanning instrument type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// AddInstrument stocks a new instrument into the pool, available for
// checkout. Instruments are the only catalog with a stocking operation;
// uniforms and shakos come into existence at first checkout.
func AddInstrument(ctx context.Context, db *sql.DB, typeID int64, serial, notes string) (*model.Instrument, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM instrument_types WHERE id = ?`, typeID).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("instrument type %d: %w", typeID, ErrUnknownType)
	}
	if err != nil {
		return nil, fmt.Errorf("checking instrument type %d: %w", typeID, err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO instruments (type_id, serial, condition_notes) VALUES (?, ?, ?)`,
		typeID, nullable(serial), nullable(notes),
	)
	if uniqueViolation(err, "instruments.serial") {
		return nil, fmt.Errorf("adding instrument with serial %q: %w", serial, ErrDuplicateSerial)
	}
	if err != nil {
		return nil, fmt.Errorf("adding instrument: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting instrument id: %w", err)
	}
	return GetInstrument(ctx, db, id)
}

// GetInstrument returns an instrument by ID with its type joined in, or nil
// if absent.
func GetInstrument(ctx context.Context, db *sql.DB, id int64) (*model.Instrument, error) {
	ins := &model.Instrument{}
	var holder sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT i.id, i.type_id, COALESCE(i.serial, ''), COALESCE(i.condition_notes, ''),
		        i.checked_out_to, COALESCE(i.checked_out_date, ''),
		        t.name, t.section
		 FROM instruments i
		 JOIN instrument_types t ON t.id = i.type_id
		 WHERE i.id = ?`, id,
	).Scan(&ins.ID, &ins.TypeID, &ins.Serial, &ins.ConditionNotes,
		&holder, &ins.CheckedOutDate, &ins.TypeName, &ins.Section)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting instrument %d: %w", id, err)
	}
	if holder.Valid {
		ins.CheckedOutTo = &holder.Int64
	}
	return ins, nil
}

// CheckoutInstrument assigns an available instrument to a student. The
// student must exist and must not already hold an instrument.
func CheckoutInstrument(ctx context.Context, db *sql.DB, instrumentID, studentID int64) error {
	if err := requireStudent(ctx, db, studentID); err != nil {
		return err
	}
	return checkoutExisting(ctx, db, instrumentCatalog, instrumentID, studentID)
}

// ReturnInstrument puts a checked-out instrument back in the pool.
func ReturnInstrument(ctx context.Context, db *sql.DB, instrumentID int64) error {
	return returnItem(ctx, db, instrumentCatalog, instrumentID)
}

const instrumentListQuery = `
SELECT i.id, i.type_id, COALESCE(i.serial, ''), COALESCE(i.condition_notes, ''),
       i.checked_out_to, COALESCE(i.checked_out_date, ''),
       t.name, t.section,
       COALESCE(s.first_name || ' ' || s.last_name, '')
FROM instruments i
JOIN instrument_types t ON t.id = i.type_id
LEFT JOIN students s ON s.id = i.checked_out_to`

func scanInstruments(rows *sql.Rows) ([]model.Instrument, error) {
	var instruments []model.Instrument
	for rows.Next() {
		var ins model.Instrument
		var holder sql.NullInt64
		err := rows.Scan(&ins.ID, &ins.TypeID, &ins.Serial, &ins.ConditionNotes,
			&holder, &ins.CheckedOutDate, &ins.TypeName, &ins.Section, &ins.HolderName)
		if err != nil {
			return nil, fmt.Errorf("scanning instrument: %w", err)
		}
		if holder.Valid {
			ins.CheckedOutTo = &holder.Int64
		}
		instruments = append(instruments, ins)
	}
	return instruments, rows.Err()
}

// ListAvailableInstruments returns instruments with no holder, optionally
// filtered to one section of the type lookup (empty string = all sections).
func ListAvailableInstruments(ctx context.Context, db *sql.DB, section string) ([]model.Instrument, error) {
	query := instrumentListQuery + ` WHERE i.checked_out_to IS NULL`
	var args []any

	if section != "" {
		query += ` AND t.section = ?`
		args = append(args, section)
	}
	query += ` ORDER BY t.section, t.name, i.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing available instruments: %w", err)
	}
	defer rows.Close()

	return scanInstruments(rows)
}

// ListCheckedOutInstruments returns instruments currently held by a student.
func ListCheckedOutInstruments(ctx context.Context, db *sql.DB) ([]model.Instrument, error) {
	rows, err := db.QueryContext(ctx, instrumentListQuery+`
		WHERE i.checked_out_to IS NOT NULL ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("listing checked-out instruments: %w", err)
	}
	defer rows.Close()

	return scanInstruments(rows)
}

// ListInstrumentAssignments returns every instrument, checked-out rows
// first, then grouped by section and type.
func ListInstrumentAssignments(ctx context.Context, db *sql.DB) ([]model.Instrument, error) {
	rows, err := db.QueryContext(ctx, instrumentListQuery+`
		ORDER BY (i.checked_out_to IS NULL), t.section, t.name, i.id`)
	if err != nil {
		return nil, fmt.Errorf("listing instrument assignments: %w", err)
	}
	defer rows.Close()

	return scanInstruments(rows)
}
