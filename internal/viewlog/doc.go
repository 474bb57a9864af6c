// Package viewlog parses user-supplied viewing-log files.
//
// The format is delimited text with a header line. Row identity is the
// 1-based physical line number including the header, so the first data
// row is always row 2. That positional identity is what library records
// link against, which makes it sensitive to reordering the source file;
// logs are treated as append-only.
package viewlog
