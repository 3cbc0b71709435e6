// ABOUTME: SQLite implementation of the note CRUD operations.
// ABOUTME: Notes are listed newest first (id descending); updates of a missing id return ErrNotFound.

package store

import (
	"context"
	"database/sql"
	"errors"
)

// CreateNote inserts a note and returns the id assigned by SQLite.
func (s *SQLiteStore) CreateNote(ctx context.Context, title, description string) (int64, error) {
	title, description, err := ValidateNote(title, description)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (title, desc) VALUES (?, ?)
	`, title, description)
	if err != nil {
		return 0, storageErr("inserting note", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("reading note id", err)
	}

	s.logger.Debug("created note", "id", id)
	return id, nil
}

// GetNote retrieves a note by id.
// Returns ErrNotFound if the note doesn't exist.
func (s *SQLiteStore) GetNote(ctx context.Context, id int64) (*Note, error) {
	var n Note
	var desc sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, desc FROM notes WHERE id = ?
	`, id).Scan(&n.ID, &n.Title, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("getting note", err)
	}

	n.Description = desc.String
	return &n, nil
}

// UpdateNote overwrites the title and description of an existing note.
// Returns ErrNotFound if no row has that id; a missing note is never created.
func (s *SQLiteStore) UpdateNote(ctx context.Context, id int64, title, description string) error {
	title, description, err := ValidateNote(title, description)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, desc = ? WHERE id = ?
	`, title, description, id)
	if err != nil {
		return storageErr("updating note", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return storageErr("updating note", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated note", "id", id)
	return nil
}

// DeleteNote removes a note. Deleting an id that does not exist is not an error.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting note", err)
	}

	if rows, _ := res.RowsAffected(); rows > 0 {
		s.logger.Debug("deleted note", "id", id)
	}
	return nil
}

// ListNotes returns every note, newest (highest id) first.
func (s *SQLiteStore) ListNotes(ctx context.Context) ([]Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, desc FROM notes ORDER BY id DESC
	`)
	if err != nil {
		return nil, storageErr("listing notes", err)
	}
	defer func() { _ = rows.Close() }()

	notes := []Note{}
	for rows.Next() {
		var n Note
		var desc sql.NullString
		if err := rows.Scan(&n.ID, &n.Title, &desc); err != nil {
			return nil, storageErr("scanning note", err)
		}
		n.Description = desc.String
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("listing notes", err)
	}
	return notes, nil
}

// CountNotes returns the number of stored notes.
func (s *SQLiteStore) CountNotes(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count); err != nil {
		return 0, storageErr("counting notes", err)
	}
	return count, nil
}
