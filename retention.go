package rotlog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// logFileMeta describes one file of the retention set
type logFileMeta struct {
	name    string
	modTime time.Time
	size    int64
}

// listLogFiles returns the *.log regular files in dir, oldest first.
func listLogFiles(dir string) ([]logFileMeta, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmtErrorf("failed to read log directory '%s': %w", dir, err)
	}

	var logs []logFileMeta
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), logExtension) {
			continue
		}
		info, errInfo := entry.Info()
		if errInfo != nil {
			continue
		}
		logs = append(logs, logFileMeta{name: entry.Name(), modTime: info.ModTime(), size: info.Size()})
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].modTime.Equal(logs[j].modTime) {
			return logs[i].name < logs[j].name
		}
		return logs[i].modTime.Before(logs[j].modTime)
	})
	return logs, nil
}

// ListLogFiles returns the names of the *.log files in dir, oldest modification first.
func ListLogFiles(dir string) ([]string, error) {
	logs, err := listLogFiles(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(logs))
	for i, l := range logs {
		names[i] = l.name
	}
	return names, nil
}

// CleanupLogs deletes the oldest *.log files in dir until at most maxCount remain.
// Failed deletions are skipped and reported in the returned error; the pass
// continues with the next file. maxCount <= 0 disables cleanup.
func CleanupLogs(dir string, maxCount int) (int, error) {
	if maxCount <= 0 {
		return 0, nil
	}

	logs, err := listLogFiles(dir)
	if err != nil {
		return 0, err
	}

	excess := len(logs) - maxCount
	if excess <= 0 {
		return 0, nil
	}

	var deleted int
	var errs error
	for _, log := range logs[:excess] {
		filePath := filepath.Join(dir, log.name)
		if err := os.Remove(filePath); err != nil {
			errs = combineErrors(errs, fmtErrorf("failed to remove old log file '%s': %w", filePath, err))
			continue
		}
		deleted++
	}
	return deleted, errs
}
