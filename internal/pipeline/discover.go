package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	// InputExt is the container extension the discoverer matches.
	InputExt = ".mkv"
	// OutputExt is the container extension derived outputs use.
	OutputExt = ".mp4"
)

// Discover walks inputDir recursively, collects files with the input
// extension, prunes hidden directories and files (any segment starting
// with "."), and returns the paths sorted lexicographically for a
// deterministic processing order.
//
// A missing or non-directory input root degrades to an empty list with a
// warning; discovery is never fatal.
func Discover(inputDir string, log hclog.Logger) []string {
	fi, err := os.Stat(inputDir)
	if err != nil {
		log.Warn("input directory not found", "dir", inputDir)
		return nil
	}
	if !fi.IsDir() {
		log.Warn("input path is not a directory", "path", inputDir)
		return nil
	}

	var files []string
	walkErr := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		hidden := strings.HasPrefix(d.Name(), ".") && path != inputDir
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), InputExt) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		log.Warn("scan aborted", "dir", inputDir, "error", walkErr)
		return nil
	}

	sort.Strings(files)
	log.Info("scan complete", "dir", inputDir, "files", len(files))
	return files
}
