package rotlog

import (
	"os"
	"path/filepath"
)

// ResolveLogDir picks and creates the log directory for appName, trying in order:
// the executable's directory, the user cache directory, then the working directory.
// Each candidate is <base>/<appName>-logs and must be writable.
func ResolveLogDir(appName string) (string, error) {
	dirName := appName + logDirSuffix

	var bases []string
	if exe, err := os.Executable(); err == nil {
		bases = append(bases, filepath.Dir(exe))
	}
	if cache, err := os.UserCacheDir(); err == nil {
		bases = append(bases, cache)
	}
	if cwd, err := os.Getwd(); err == nil {
		bases = append(bases, cwd)
	}

	var errs error
	for _, base := range bases {
		dir := filepath.Join(base, dirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errs = combineErrors(errs, err)
			continue
		}
		if err := probeWritable(dir); err != nil {
			errs = combineErrors(errs, err)
			continue
		}
		return dir, nil
	}

	if errs == nil {
		return "", fmtErrorf("no candidate location for '%s'", dirName)
	}
	return "", fmtErrorf("no writable location for '%s': %w", dirName, errs)
}
