// Package corpus manages the local flat file of known-breached identifiers.
// The file holds one identifier per line, is appended for writes and is fully
// re-read on every lookup.
package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// ErrMissing is returned when the corpus file does not exist.
var ErrMissing = errors.New("corpus not found")

// Stats describes the corpus file.
type Stats struct {
	TotalEntries  int       `json:"total_entries"`
	UniqueEntries int       `json:"unique_entries"`
	FileSize      int64     `json:"file_size"`
	LastModified  time.Time `json:"last_modified"`
}

// File is a line-delimited corpus on disk.
//
// Appends are serialized in process by a write lock and across processes by
// an advisory lock on "<path>.lock". Readers only take the in-process read
// lock, so a reader racing an external writer may see a slightly stale file.
type File struct {
	path          string
	caseSensitive bool

	mu   sync.RWMutex
	lock *flock.Flock
}

// Path returns the corpus location.
func (f *File) Path() string { return f.path }

// Exists reports whether the corpus file is present.
func (f *File) Exists() bool {
	_, err := os.Stat(f.path)

	return err == nil
}

func (f *File) equal(a, b string) bool {
	if f.caseSensitive {
		return a == b
	}

	return strings.EqualFold(a, b)
}

func (f *File) scan(fn func(line string)) error {
	fd, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissing, f.path)
		}

		return fmt.Errorf("could not open corpus: %w", err)
	}
	defer func() {
		_ = fd.Close()
	}()

	sc := bufio.NewScanner(fd)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fn(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("could not read corpus: %w", err)
	}

	return nil
}

// Count returns how many lines equal the identifier.
func (f *File) Count(identifier string) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.count(strings.TrimSpace(identifier))
}

func (f *File) count(identifier string) (int, error) {
	n := 0
	err := f.scan(func(line string) {
		if f.equal(line, identifier) {
			n++
		}
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// Contains reports whether at least one line equals the identifier.
func (f *File) Contains(identifier string) (bool, error) {
	n, err := f.Count(identifier)

	return n > 0, err
}

// Append adds the identifier as a new line, creating the file when needed.
func (f *File) Append(identifier string) error {
	identifier, err := validIdentifier(identifier)
	if err != nil {
		return err
	}

	return f.locked(func() error {
		return f.append(identifier)
	})
}

// AppendIfAbsent appends the identifier unless the corpus already holds it.
// It reports whether a line was written. The lookup and the write happen
// under the same locks.
func (f *File) AppendIfAbsent(identifier string) (bool, error) {
	identifier, err := validIdentifier(identifier)
	if err != nil {
		return false, err
	}

	added := false
	err = f.locked(func() error {
		n, err := f.count(identifier)
		if err != nil && !errors.Is(err, ErrMissing) {
			return err
		}
		if n > 0 {
			return nil
		}
		if err := f.append(identifier); err != nil {
			return err
		}
		added = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return added, nil
}

func validIdentifier(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.ContainsAny(identifier, "\r\n") {
		return "", fmt.Errorf("invalid identifier %q", identifier)
	}

	return identifier, nil
}

// locked runs fn holding the in-process write lock and the file lock.
func (f *File) locked(fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("could not lock corpus: %w", err)
	}
	defer func() {
		_ = f.lock.Unlock()
	}()

	return fn()
}

func (f *File) append(identifier string) error {
	fd, err := os.OpenFile(f.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644) //nolint: gosec
	if err != nil {
		return fmt.Errorf("could not open corpus for append: %w", err)
	}
	defer func() {
		_ = fd.Close()
	}()

	line := identifier + "\n"
	if needsNewline, err := missingTrailingNewline(fd); err != nil {
		return err
	} else if needsNewline {
		line = "\n" + line
	}
	if _, err := fd.WriteString(line); err != nil {
		return fmt.Errorf("could not append to corpus: %w", err)
	}

	return nil
}

func missingTrailingNewline(fd *os.File) (bool, error) {
	st, err := fd.Stat()
	if err != nil {
		return false, fmt.Errorf("could not stat corpus: %w", err)
	}
	if st.Size() == 0 {
		return false, nil
	}

	last := make([]byte, 1)
	if _, err := fd.ReadAt(last, st.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("could not read corpus tail: %w", err)
	}

	return last[0] != '\n', nil
}

// Stats reads the whole corpus and reports entry counts and file metadata.
// Uniqueness follows the configured case sensitivity.
func (f *File) Stats() (Stats, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	st, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, fmt.Errorf("%w: %s", ErrMissing, f.path)
		}

		return Stats{}, fmt.Errorf("could not stat corpus: %w", err)
	}

	out := Stats{FileSize: st.Size(), LastModified: st.ModTime().UTC()}
	seen := make(map[string]struct{})
	err = f.scan(func(line string) {
		out.TotalEntries++
		if !f.caseSensitive {
			line = strings.ToLower(line)
		}
		seen[line] = struct{}{}
	})
	if err != nil {
		return Stats{}, err
	}
	out.UniqueEntries = len(seen)

	return out, nil
}

// Open returns a handle on the corpus at path. The file does not need to exist.
func Open(path string, caseSensitive bool) *File {
	return &File{
		path:          path,
		caseSensitive: caseSensitive,
		lock:          flock.New(path + ".lock"),
	}
}
