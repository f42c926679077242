package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/drace-lint/drace/domain"
)

// FileReader collects the Python files a request should analyze.
type FileReader struct{}

// NewFileReader creates a new file reader service.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// CollectPythonFiles finds all Python files under the given paths,
// applying include and exclude glob patterns (doublestar syntax, so
// "**/test_*.py" works across directories).
func (f *FileReader) CollectPythonFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		} else if f.IsValidPythonFile(path) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
	}

	return files, nil
}

// ReadFile reads the content of a file.
func (f *FileReader) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsValidPythonFile checks if a file is a Python source file.
func (f *FileReader) IsValidPythonFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".py" || ext == ".pyi"
}

func (f *FileReader) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}

		if info.IsDir() {
			if !recursive && path != dirPath {
				return filepath.SkipDir
			}
			if path != dirPath && (strings.HasPrefix(info.Name(), ".") || f.shouldSkipDirectory(info.Name())) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if f.IsValidPythonFile(path) && f.shouldIncludeFile(path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.Walk(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile applies exclude patterns first, then include
// patterns; with no include patterns everything passes. Each pattern
// is matched against both the base name and the slash path.
func (f *FileReader) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	slashPath := filepath.ToSlash(path)
	base := filepath.Base(path)

	for _, pattern := range excludePatterns {
		if matchesPattern(pattern, base, slashPath) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchesPattern(pattern, base, slashPath) {
			return true
		}
	}
	return false
}

func matchesPattern(pattern, base, slashPath string) bool {
	if matched, _ := doublestar.Match(pattern, base); matched {
		return true
	}
	matched, _ := doublestar.Match(pattern, slashPath)
	return matched
}

// shouldSkipDirectory filters directories that never hold first-party
// Python sources.
func (f *FileReader) shouldSkipDirectory(dirName string) bool {
	skipDirs := map[string]bool{
		"__pycache__":   true,
		"node_modules":  true,
		"venv":          true,
		"env":           true,
		"build":         true,
		"dist":          true,
		".tox":          true,
		".pytest_cache": true,
		".mypy_cache":   true,
		".git":          true,
	}
	if skipDirs[strings.ToLower(dirName)] {
		return true
	}
	return strings.HasSuffix(dirName, ".egg-info")
}

// ValidatePaths checks that every path exists and is accessible.
func (f *FileReader) ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return domain.NewFileNotFoundError(path, err)
			}
			return domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", path), err)
		}
	}
	return nil
}
