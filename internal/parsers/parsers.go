// Package parsers turns decoded export files into typed entries. Parsers never
// fail a whole file: malformed lines are logged and skipped.
package parsers

import (
	"log/slog"
	"strings"

	"github.com/SscSPs/hoa_billing_app/internal/utils/legacy"
)

// record is one non-blank line of a file together with its 1-based line number.
type record struct {
	lineNo int
	text   string
}

// records splits text on '\n' and drops blank lines.
func records(text string) []record {
	lines := strings.Split(text, "\n")
	out := make([]record, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, record{lineNo: i + 1, text: l})
	}
	return out
}

// trimmedFields splits a line on the delimiter and trims every field.
func trimmedFields(line string) []string {
	fields := legacy.Fields(line)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

func skipLine(logger *slog.Logger, file string, r record, reason string, err error) {
	args := []any{
		slog.String("file", file),
		slog.Int("line", r.lineNo),
		slog.String("reason", reason),
	}
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	logger.Warn("Skipping malformed line", args...)
}
