package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/SistemasVox/clima-udi/internal/types"
)

const (
	archivePrefix = "states-"
	archiveSuffix = ".json.zst"
	archiveStamp  = "20060102T150405Z"
)

// Archiver keeps a zstd-compressed history of replaced state documents,
// pruned to a fixed number of entries. Archive failures are reported to
// the caller but are never fatal to a cycle.
type Archiver struct {
	dir     string
	keep    int
	clock   types.Clock
	encoder *zstd.Encoder
}

// NewArchiver builds an archiver rooted at dir retaining the newest keep
// entries.
func NewArchiver(dir string, keep int, clock types.Clock) (*Archiver, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &Archiver{dir: dir, keep: keep, clock: clock, encoder: enc}, nil
}

// Dir returns the archive directory.
func (a *Archiver) Dir() string { return a.dir }

// Store compresses one replaced document into the archive and prunes
// entries beyond the retention depth. It returns the archive file name.
func (a *Archiver) Store(data []byte) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive dir %s: %w", a.dir, err)
	}

	name := archivePrefix + a.clock.Now().Format(archiveStamp) + archiveSuffix
	compressed := a.encoder.EncodeAll(data, nil)
	if err := os.WriteFile(filepath.Join(a.dir, name), compressed, 0o644); err != nil {
		return "", fmt.Errorf("writing archive %s: %w", name, err)
	}

	if err := a.prune(); err != nil {
		return name, err
	}
	return name, nil
}

// prune deletes the oldest archive entries beyond the retention depth.
// The timestamped names sort chronologically, so a name sort suffices.
func (a *Archiver) prune() error {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return fmt.Errorf("listing archive dir %s: %w", a.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasPrefix(n, archivePrefix) && strings.HasSuffix(n, archiveSuffix) {
			names = append(names, n)
		}
	}
	if len(names) <= a.keep {
		return nil
	}

	sort.Strings(names)
	for _, n := range names[:len(names)-a.keep] {
		if err := os.Remove(filepath.Join(a.dir, n)); err != nil {
			return fmt.Errorf("pruning archive %s: %w", n, err)
		}
	}
	return nil
}
