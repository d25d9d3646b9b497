package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/SistemasVox/clima-udi/internal/types"
	"github.com/SistemasVox/clima-udi/internal/zones"
)

// FileStore reads and writes the state document on local disk. Saves are
// staged through a temporary file and renamed into place so a crash mid
// write never leaves a truncated document behind. The replaced document
// is copied to a sibling backup first and, when an Archiver is attached,
// compressed into the rotating archive.
type FileStore struct {
	path    string
	clock   types.Clock
	logger  *slog.Logger
	archive *Archiver
}

// NewFileStore builds a store over path. archive may be nil to disable
// history rotation.
func NewFileStore(path string, clock types.Clock, logger *slog.Logger, archive *Archiver) *FileStore {
	return &FileStore{path: path, clock: clock, logger: logger, archive: archive}
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// BackupPath returns the sibling file holding the pre-save copy of the
// previous document.
func (s *FileStore) BackupPath() string { return s.path + ".backup" }

// Load reads the persisted document. A missing file, a corrupt file or an
// unsupported schema version all yield a fresh bootstrap document rather
// than an error. Only an I/O failure on an existing file is surfaced as
// an error.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.InfoContext(ctx, "No state file, bootstrapping", "path", s.path)
			return NewDocument(s.clock.Now()), nil
		}
		return nil, &types.AppError{
			Code:    types.ErrCodeInternalUnexpected,
			Message: fmt.Sprintf("reading state file %s: %v", s.path, err),
			Err:     err,
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.WarnContext(ctx, "State file corrupt, bootstrapping",
			"path", s.path,
			"error", err.Error(),
		)
		return NewDocument(s.clock.Now()), nil
	}
	if doc.Version != SchemaVersion {
		s.logger.WarnContext(ctx, "State schema version unsupported, bootstrapping",
			"path", s.path,
			"found", doc.Version,
			"want", SchemaVersion,
		)
		return NewDocument(s.clock.Now()), nil
	}
	if doc.Criticals == nil {
		doc.Criticals = make(map[zones.CriticalKind]CriticalState)
	}
	return &doc, nil
}

// Save stamps the document and writes it to disk. The previous document,
// when present, is copied to the backup path and handed to the archiver
// before the new one replaces it.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	doc.Timestamp = s.clock.Now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &types.AppError{
			Code:    types.ErrCodeStatePersist,
			Message: fmt.Sprintf("encoding state document: %v", err),
			Err:     err,
		}
	}

	if prev, readErr := os.ReadFile(s.path); readErr == nil {
		if writeErr := os.WriteFile(s.BackupPath(), prev, 0o644); writeErr != nil {
			return &types.AppError{
				Code:    types.ErrCodeStatePersist,
				Message: fmt.Sprintf("writing state backup %s: %v", s.BackupPath(), writeErr),
				Err:     writeErr,
			}
		}
		if s.archive != nil {
			if name, archErr := s.archive.Store(prev); archErr != nil {
				s.logger.WarnContext(ctx, "State archive failed",
					"dir", s.archive.Dir(),
					"error", archErr.Error(),
				)
			} else {
				s.logger.InfoContext(ctx, "State archived", "file", name)
			}
		}
	} else if !errors.Is(readErr, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "Previous state unreadable, skipping backup",
			"path", s.path,
			"error", readErr.Error(),
		)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &types.AppError{
			Code:    types.ErrCodeStatePersist,
			Message: fmt.Sprintf("writing state file %s: %v", tmp, err),
			Err:     err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return &types.AppError{
			Code:    types.ErrCodeStatePersist,
			Message: fmt.Sprintf("replacing state file %s: %v", s.path, err),
			Err:     err,
		}
	}
	return nil
}
