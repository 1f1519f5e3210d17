package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a statement file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

const (
	// importDir is the subdirectory for incoming statements.
	importDir = "import"
	// processedDir receives statements after a successful conversion.
	processedDir = "import/processed"
	// normalizedDir receives the normalized CSV for each statement.
	normalizedDir = "normalized"
)

// Dirs lists the workspace directories, relative to the root.
func Dirs() []string {
	return []string{
		importDir,
		filepath.FromSlash(processedDir),
		normalizedDir,
		"logs",
	}
}

var statementExts = []string{".csv", ".xlsx"}

func isStatement(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range statementExts {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan returns statement files in <root>/import/, sorted by name.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !isStatement(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// OutputPath returns where the normalized CSV for fileName is written.
// A lowercase ".csv" name is kept as is; any other name gets ".csv"
// appended, so "jan.csv", "jan.CSV" and "jan.xlsx" never share an output.
func OutputPath(root, fileName string) string {
	name := fileName
	if filepath.Ext(fileName) != ".csv" {
		name += ".csv"
	}
	return filepath.Join(root, normalizedDir, name)
}
