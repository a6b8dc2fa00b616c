package statbook

import (
	"strconv"
	"strings"
)

// cell returns row[col] trimmed; rows come back ragged from the reader.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// rowAt returns rows[i] or nil.
func rowAt(rows [][]string, i int) []string {
	if i < 0 || i >= len(rows) {
		return nil
	}
	return rows[i]
}

// intCell parses an integer cell. Whole-number floats ("3.0") are accepted.
func intCell(row []string, col int) (int, bool) {
	s := cell(row, col)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// checked reports whether a box cell is ticked.
func checked(row []string, col int) bool {
	switch strings.ToLower(cell(row, col)) {
	case "", "0", "false":
		return false
	}
	return true
}
