package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/tablestream/internal/record"
)

// Append inserts one encoded row and returns the sequence SQLite assigned.
// AUTOINCREMENT makes the assignment atomic with the insert: the engine
// serializes writers, so concurrent appends never share a sequence.
func (s *Store) Append(ctx context.Context, enc record.Encoded) (uint64, error) {
	result, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %q (payload, metadata)
		VALUES (?, ?)
	`, s.table),
		enc.Payload,
		enc.Meta,
	)
	if err != nil {
		return 0, s.mapError("append", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return 0, s.mapError("append", err)
	}
	if seq < 0 {
		return 0, s.mapError("append", fmt.Errorf("engine assigned negative sequence %d", seq))
	}

	return uint64(seq), nil
}

// ScanFrom returns every row with sequence strictly greater than after,
// ordered by sequence ascending. The result is a snapshot as of call time.
func (s *Store) ScanFrom(ctx context.Context, after uint64) ([]record.Raw, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT seq, payload, metadata FROM %q
		WHERE seq > ?
		ORDER BY seq ASC
	`, s.table), int64(after))
	if err != nil {
		return nil, s.mapError("scan", err)
	}
	defer rows.Close()

	var raws []record.Raw
	for rows.Next() {
		var (
			seq     int64
			payload sql.NullString
			meta    sql.NullString
		)
		if err := rows.Scan(&seq, &payload, &meta); err != nil {
			return nil, s.mapError("scan", err)
		}

		raw := record.Raw{Seq: seq}
		if payload.Valid {
			raw.Payload = &payload.String
		}
		if meta.Valid {
			raw.Meta = &meta.String
		}
		raws = append(raws, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, s.mapError("scan", err)
	}

	// Return empty slice instead of nil
	if raws == nil {
		raws = []record.Raw{}
	}

	return raws, nil
}

// MaxSequence returns the highest sequence present, ok=false when the table
// is empty.
func (s *Store) MaxSequence(ctx context.Context) (uint64, bool, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT MAX(seq) FROM %q", s.table,
	)).Scan(&max)
	if err != nil {
		return 0, false, s.mapError("max sequence", err)
	}
	if !max.Valid || max.Int64 < 0 {
		return 0, false, nil
	}
	return uint64(max.Int64), true, nil
}
