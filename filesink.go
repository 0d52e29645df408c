package rotlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// FileSink writes formatted lines to the active log file and rotates it by size.
// All methods except the read-only accessors must be called from a single goroutine.
type FileSink struct {
	dir      string
	name     string
	maxSize  int64
	maxFiles int

	file *os.File

	currentPath atomic.Value // stores string
	currentSize atomic.Int64
	rotations   atomic.Uint64
	deletions   atomic.Uint64

	now    func() time.Time
	rename func(oldpath, newpath string) error
	report func(format string, args ...any)
}

// NewFileSink creates a sink for dir. No file is opened until the first write.
// maxSize <= 0 disables rotation, maxFiles <= 0 disables cleanup.
func NewFileSink(dir, name string, maxSize int64, maxFiles int) *FileSink {
	s := &FileSink{
		dir:      dir,
		name:     name,
		maxSize:  maxSize,
		maxFiles: maxFiles,
		now:      time.Now,
		rename:   os.Rename,
		report:   func(string, ...any) {},
	}
	s.currentPath.Store("")
	return s
}

// Path returns the active file path, empty before the first open.
func (s *FileSink) Path() string {
	return s.currentPath.Load().(string)
}

// Size returns the bytes written to the active file since the last rotation.
func (s *FileSink) Size() int64 {
	return s.currentSize.Load()
}

// Rotations returns the number of successful rotations.
func (s *FileSink) Rotations() uint64 {
	return s.rotations.Load()
}

// Deletions returns the number of files removed by retention after rotations.
func (s *FileSink) Deletions() uint64 {
	return s.deletions.Load()
}

// Emit implements Sink: rotates if the line would cross the size threshold, then writes it.
func (s *FileSink) Emit(_ *Event, line []byte) error {
	if s.NeedsRotation(len(line)) {
		if err := s.Rotate(); err != nil {
			return err
		}
	}
	_, err := s.Write(line)
	return err
}

// NeedsRotation reports whether writing n more bytes would exceed the size threshold.
// An empty file never needs rotation, so a single oversized line lands in a file of its own.
func (s *FileSink) NeedsRotation(n int) bool {
	size := s.currentSize.Load()
	return s.maxSize > 0 && size > 0 && size+int64(n) > s.maxSize
}

// Write appends p to the active file, opening it first if necessary.
func (s *FileSink) Write(p []byte) (int, error) {
	if s.file == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}
	n, err := s.file.Write(p)
	s.currentSize.Add(int64(n))
	if err != nil {
		return n, fmtErrorf("failed to write to log file '%s': %w", s.file.Name(), err)
	}
	return n, nil
}

// Rotate closes the active file, archives it under a timestamped name, applies
// retention to the archives and reopens a fresh file under the original name.
// If the archive rename fails the old file is left in place and writing
// continues in a newly named file.
func (s *FileSink) Rotate() error {
	s.closeFile()

	current := s.Path()
	if current == "" {
		return s.open()
	}

	if _, err := os.Stat(current); err == nil {
		archivePath := s.archivePath(current, s.now())
		if err := s.rename(current, archivePath); err != nil {
			s.report("failed to rename log file from '%s' to '%s': %v\n", current, archivePath, err)
			s.currentPath.Store(s.uniquePath(strings.TrimSuffix(s.generatePath(s.now()), logExtension)))
		}
	}
	s.currentSize.Store(0)
	s.rotations.Add(1)

	deleted, err := CleanupLogs(s.dir, s.maxFiles)
	s.deletions.Add(uint64(deleted))
	if err != nil {
		s.report("retention after rotation: %v\n", err)
	}

	return s.open()
}

// Sync commits the active file to stable storage.
func (s *FileSink) Sync() error {
	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", s.file.Name(), err)
	}
	return nil
}

// Close syncs and closes the active file. The path is kept for a later reopen.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	var err error
	if errSync := s.file.Sync(); errSync != nil {
		err = fmtErrorf("failed to sync log file '%s' during close: %w", s.file.Name(), errSync)
	}
	if errClose := s.file.Close(); errClose != nil {
		err = combineErrors(err, fmtErrorf("failed to close log file '%s': %w", s.file.Name(), errClose))
	}
	s.file = nil
	return err
}

// closeFile closes the handle, reporting but ignoring failures
func (s *FileSink) closeFile() {
	if err := s.Close(); err != nil {
		s.report("%v\n", err)
	}
}

// open opens the last-known path, or a newly generated one, for appending
func (s *FileSink) open() error {
	path := s.Path()
	if path == "" {
		path = s.generatePath(s.now())
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}

	s.file = file
	s.currentPath.Store(path)
	s.currentSize.Store(0)
	if fi, errStat := file.Stat(); errStat == nil {
		s.currentSize.Store(fi.Size())
	}
	return nil
}

// generatePath builds <dir>/<name>-<yyyyMMdd-HHmmss>.log
func (s *FileSink) generatePath(ts time.Time) string {
	return filepath.Join(s.dir, s.name+"-"+ts.Format(fileTimestampLayout)+logExtension)
}

// archivePath inserts -<yyyyMMdd-HHmmss> before the extension of current
func (s *FileSink) archivePath(current string, ts time.Time) string {
	return s.uniquePath(strings.TrimSuffix(current, filepath.Ext(current)) + "-" + ts.Format(fileTimestampLayout))
}

// uniquePath returns base.log, or base-N.log when that name is already taken
func (s *FileSink) uniquePath(base string) string {
	candidate := base + logExtension
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d%s", base, i, logExtension)
	}
}
