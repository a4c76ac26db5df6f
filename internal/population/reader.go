package population

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadRows reads a two-column population file. Columns are separated by
// one or more tabs; columns after the second are ignored. Blank lines are
// skipped and do not consume an individual index.
func ReadRows(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool { return r == '\t' })
		if len(fields) < 2 {
			return nil, &ConfigError{
				Line:    line,
				Message: fmt.Sprintf("expected individual and population separated by a tab, found %q", text),
			}
		}
		rows = append(rows, Row{Name: fields[0], Label: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read population file: %w", err)
	}
	return rows, nil
}

// ReadFile reads the population file at path and builds its Assignment.
func ReadFile(path string) (*Assignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open population file: %w", err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, err
	}
	return Build(rows)
}
