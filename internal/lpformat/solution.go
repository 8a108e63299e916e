package lpformat

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadSolution parses a solver's "name=value" solution dump into a flat
// variable->value map.
func ReadSolution(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lpformat: failed to open solution file %s: %w", path, err)
	}
	defer f.Close()

	values := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, raw, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("lpformat: %s:%d: expected name=value, got %q", path, lineNo, line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("lpformat: %s:%d: malformed value %q: %w", path, lineNo, raw, err)
		}
		values[strings.TrimSpace(name)] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lpformat: failed to read %s: %w", path, err)
	}
	return values, nil
}

// IsSet reports whether a binary variable's parsed value should be read
// as 1 (solvers occasionally emit 0.999999998 instead of exactly 1).
func IsSet(v float64) bool {
	return v > 0.5
}
