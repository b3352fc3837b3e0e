// =============================================================================
// ordergen - File Manager
// =============================================================================
//
// Output writing and input archival. Generated files land in the output
// directory; successfully processed input sheets move to the archive
// directory with a timestamped, collision-safe name so reruns of a
// same-named export never overwrite history.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileManager handles output writing and input archival for one run.
type FileManager struct {
	outputDir  string
	archiveDir string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(outputDir, archiveDir string) *FileManager {
	return &FileManager{
		outputDir:  outputDir,
		archiveDir: archiveDir,
	}
}

// EnsureDirectories creates the output and archive directories if missing.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.outputDir, fm.archiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteOutput writes one generated file into the output directory and
// returns its full path.
func (fm *FileManager) WriteOutput(name string, data []byte) (string, error) {
	path := filepath.Join(fm.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// ArchiveInput moves a processed input sheet into the archive directory and
// returns the archived path.
func (fm *FileManager) ArchiveInput(inputPath string) (string, error) {
	archivePath := fm.archivePath(inputPath)
	if err := os.Rename(inputPath, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", inputPath, err)
	}
	return archivePath, nil
}

// archivePath builds a collision-safe archive name by inserting a timestamp
// before the extension.
func (fm *FileManager) archivePath(inputPath string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := base[:len(base)-len(ext)]
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(fm.archiveDir, fmt.Sprintf("%s_%s%s", stem, stamp, ext))
}
