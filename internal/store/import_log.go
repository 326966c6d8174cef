package store

import "fmt"

// CreateImportLog opens a run record, returning its id.
func (s *Store) CreateImportLog(filename string, marketID int64, year, month int) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (filename, market_id, data_year, data_month, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, filename, marketID, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// FinishImportLog closes a run record with its final counts.
func (s *Store) FinishImportLog(id, truncated int64, imported, skipped int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE import_logs SET
			truncated = ?,
			imported_rows = ?,
			skipped_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, truncated, imported, skipped, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	return nil
}
