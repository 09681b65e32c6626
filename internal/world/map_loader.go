package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"rayengine/internal/logger"
)

var log = logger.Component("world")

var (
	ErrEmptyMap   = errors.New("map contains no rows")
	ErrRaggedRows = errors.New("map rows have different lengths")
	ErrBadCell    = errors.New("map cell is not a non-negative integer")
)

// MapError locates a parse failure in a map source. Line and Column are
// 1-based; zero means unknown.
type MapError struct {
	Line   int
	Column int
	Reason string
	Err    error
}

func (e *MapError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("map line %d, column %d: %s", e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("map line %d: %s", e.Line, e.Reason)
	default:
		return "map: " + e.Reason
	}
}

func (e *MapError) Unwrap() error {
	return e.Err
}

// ParseMap reads whitespace-separated rows of tile codes. Empty lines and
// lines starting with # are skipped.
func ParseMap(r io.Reader) ([][]int, error) {
	var rows [][]int
	width := -1
	lineNo := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, field := range fields {
			code, err := strconv.Atoi(field)
			if err != nil || code < 0 {
				return nil, &MapError{Line: lineNo, Column: i + 1, Reason: fmt.Sprintf("invalid tile code %q", field), Err: ErrBadCell}
			}
			row[i] = code
		}

		if width < 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, &MapError{Line: lineNo, Reason: fmt.Sprintf("expected %d columns, got %d", width, len(row)), Err: ErrRaggedRows}
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}
	if len(rows) == 0 {
		return nil, &MapError{Reason: "no tile rows found", Err: ErrEmptyMap}
	}
	return rows, nil
}

// LoadMap parses the map file at path into a grid with the given tile size.
func LoadMap(path string, tileSize int) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer file.Close()

	tiles, err := ParseMap(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", path, err)
	}

	grid, err := NewGrid(tiles, tileSize)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"path": path,
		"rows": grid.Rows(),
		"cols": grid.Cols(),
	}).Debug("map loaded")
	return grid, nil
}
