package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// FormatGoSource formats generated Go source without touching its import set
func FormatGoSource(filename string, source []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, source, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid Go syntax in %s: %w", filepath.Base(filename), err)
	}
	return formatted, nil
}

// FileChanged reports whether filename is missing or differs from content
func FileChanged(filename string, content []byte) (bool, error) {
	existing, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !bytes.Equal(existing, content), nil
}

// WriteIfChanged writes content to filename unless it already holds exactly that
func WriteIfChanged(filename string, content []byte) (bool, error) {
	changed, err := FileChanged(filename, content)
	if err != nil || !changed {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// ReadHeader returns the first line of filename without its line ending
func ReadHeader(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
