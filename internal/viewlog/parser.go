package viewlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrInputNotFound reports a missing viewing-log file. Fatal to a run;
// nothing is processed.
var ErrInputNotFound = errors.New("viewing log not found")

// Row is one admitted viewing-log entry. Fields are immutable once
// parsed; RowNumber is the 1-based source line number (header included).
type Row struct {
	RowNumber   int
	Ordinal     string
	Title       string
	Year        string
	Director    string
	Notes       string
	CompletedAt string
	// WatchedWith and WatchedOn are derived from the free-text notes.
	WatchedWith string
	WatchedOn   string
}

// Result carries the admitted rows plus the count of rows that were
// rejected (blank title or malformed field count). Skips are surfaced
// rather than swallowed so reports can account for every source line.
type Result struct {
	Rows    []Row
	Skipped int
}

const delimiter = "\t"

// column aliases recognized in the header line, folded.
var columnAliases = map[string]string{
	"#":              "ordinal",
	"no":             "ordinal",
	"ordinal":        "ordinal",
	"year":           "year",
	"title":          "title",
	"movie":          "title",
	"director":       "director",
	"notes":          "notes",
	"comments":       "notes",
	"completed":      "completed",
	"date completed": "completed",
	"finished":       "completed",
}

// ParseFile reads and parses a viewing log from disk.
func ParseFile(path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return Result{}, fmt.Errorf("open viewing log: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads a viewing log from a reader. The first line is the header;
// it maps recognized column names to positions and is otherwise ignored.
func Parse(r io.Reader) (Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var result Result
	var columns map[int]string
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		if lineNumber == 1 {
			columns = parseHeader(line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, ok := parseRow(lineNumber, line, columns)
		if !ok {
			result.Skipped++
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read viewing log: %w", err)
	}
	if lineNumber == 0 {
		return Result{}, errors.New("viewing log is empty")
	}
	return result, nil
}

func parseHeader(line string) map[int]string {
	columns := make(map[int]string)
	for i, field := range strings.Split(line, delimiter) {
		name := strings.ToLower(strings.TrimSpace(field))
		if canonical, ok := columnAliases[name]; ok {
			columns[i] = canonical
		}
	}
	// Headerless or unrecognized header: fall back to positional order.
	if len(columns) == 0 {
		columns = map[int]string{
			0: "ordinal", 1: "year", 2: "title", 3: "director", 4: "notes", 5: "completed",
		}
	}
	return columns
}

func parseRow(lineNumber int, line string, columns map[int]string) (Row, bool) {
	fields := strings.Split(line, delimiter)
	row := Row{RowNumber: lineNumber}
	for i, field := range fields {
		value := strings.TrimSpace(field)
		switch columns[i] {
		case "ordinal":
			row.Ordinal = value
		case "year":
			row.Year = value
		case "title":
			row.Title = value
		case "director":
			row.Director = value
		case "notes":
			row.Notes = value
		case "completed":
			row.CompletedAt = normalizeDate(value)
		}
	}

	// A row is admitted only when it names a title.
	if row.Title == "" {
		return Row{}, false
	}

	row.WatchedWith = companionFromNotes(row.Notes)
	row.WatchedOn = dateFromNotes(row.Notes)
	return row, true
}
