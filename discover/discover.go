// Package discover finds stable description documents under a service's spec tree.
package discover

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	ResourceManagerDir = "resource-manager"
	StableSegment      = "stable"
	Extension          = ".json"
)

// serviceDirs maps service names whose spec directory is named differently.
var serviceDirs = map[string]string{
	"networking": "network",
}

// ServiceDir returns the spec directory of a service under the specification root.
func ServiceDir(specsPath, service string) string {
	if dir, ok := serviceDirs[service]; ok {
		service = dir
	}
	return filepath.Join(specsPath, service)
}

// Files walks <serviceRoot>/resource-manager and returns every .json file that sits
// below a directory named exactly "stable". A service without a resource-manager
// directory has no files; that is not an error. The result has no duplicates and is
// sorted, which makes the order in which duplicate endpoints are resolved stable.
func Files(serviceRoot string) ([]string, error) {
	rm := filepath.Join(serviceRoot, ResourceManagerDir)
	st, err := os.Stat(rm)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, nil
	}

	found := make(map[string]struct{})
	err = filepath.WalkDir(rm, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("skipping unreadable spec path", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Extension) {
			return nil
		}

		rel, err := filepath.Rel(rm, filepath.Dir(path))
		if err != nil {
			return nil
		}
		if isStable(rel) {
			found[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(found))
	for f := range found {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func isStable(dir string) bool {
	for _, seg := range strings.Split(dir, string(filepath.Separator)) {
		if seg == StableSegment {
			return true
		}
	}
	return false
}
