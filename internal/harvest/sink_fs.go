package harvest

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// FileSystemSink writes response bodies into the output tree and answers
// grace-period freshness checks against files from earlier runs.
type FileSystemSink struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewFileSystemSink returns a sink rooted at root, creating it if needed.
func NewFileSystemSink(fs afero.Fs, root string, logger *zap.Logger) (*FileSystemSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := fs.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create output root %s: %w", root, err)
	}
	return &FileSystemSink{fs: fs, logger: logger}, nil
}

// Fresh reports whether path exists and was modified after cutoff. A stat
// failure (including not-exists) means not fresh: the host is eligible.
func (s *FileSystemSink) Fresh(path string, cutoff time.Time) bool {
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.ModTime().After(cutoff)
}

// Save writes body to path, creating parent directories as needed. Bucket
// directories are shared by many workers, so MkdirAll must treat an
// already-existing directory (including one created by a sibling worker
// mid-call) as success; afero and os both guarantee that.
func (s *FileSystemSink) Save(path string, body []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating dir for %s: %w", path, err)
	}
	if err := afero.WriteFile(s.fs, path, body, 0o640); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
