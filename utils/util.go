package utils

import (
	"bufio"
	"io"
	"strings"
)

// ReadQuery reads a SQL statement from r. A FORMAT clause in the statement
// overrides defaultFormat.
func ReadQuery(r io.Reader, defaultFormat string) (string, string, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}
	query, format := ExtractAndRemoveFormat(strings.Join(lines, "\n"))
	if format == "" {
		format = defaultFormat
	}
	return query, format, nil
}
