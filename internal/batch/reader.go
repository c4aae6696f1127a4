// Package batch reads translation files for bulk validation.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Row is one base/case/translation triple read from a translation file.
type Row struct {
	File        string
	Line        int
	Base        string
	Case        string
	Translation string
}

// ReadFile parses a tab-separated translation file. Each line holds
// base<TAB>translation or base<TAB>case<TAB>translation; blank lines and
// lines starting with '#' are skipped.
func ReadFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open translation file: %w", err)
	}
	defer file.Close()

	var rows []Row
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 4*1024*1024), 4*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		row := Row{File: path, Line: lineNum}
		switch len(cols) {
		case 2:
			row.Base, row.Case, row.Translation = cols[0], "default", cols[1]
		case 3:
			row.Base, row.Case, row.Translation = cols[0], cols[1], cols[2]
		default:
			return nil, fmt.Errorf("%s:%d: expected 2 or 3 tab-separated columns, got %d",
				path, lineNum, len(cols))
		}
		if row.Case == "" {
			row.Case = "default"
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan translation file: %w", err)
	}

	return rows, nil
}
