package harvest

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"
)

// maxHostLineBytes bounds a single host-list line; anything longer is a
// scanner error, not a hostname.
const maxHostLineBytes = 1 << 20

// FileHostSource streams raw lines from a newline-delimited host list.
// It is lazy and forward-only; restarting means reopening.
type FileHostSource struct {
	file    afero.File
	scanner *bufio.Scanner
}

// OpenHostSource opens the host list at path. An unreadable list is a
// startup error and aborts the run before any worker is dispatched.
func OpenHostSource(fs afero.Fs, path string) (*FileHostSource, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open host list %s: %w", path, err)
	}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxHostLineBytes)
	return &FileHostSource{file: f, scanner: scanner}, nil
}

// Next returns the next raw line, unvalidated. It returns false once the
// list is exhausted or a read error occurred; check Err for the latter.
func (s *FileHostSource) Next() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// Err reports a scanner failure, if any.
func (s *FileHostSource) Err() error {
	return s.scanner.Err()
}

// Close releases the underlying file.
func (s *FileHostSource) Close() error {
	return s.file.Close()
}
