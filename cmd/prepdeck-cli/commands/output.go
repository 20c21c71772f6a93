package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
)

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// emit prints v as JSON when --json is set, otherwise runs text.
func (a *app) emit(w io.Writer, v any, text func(io.Writer) error) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(w)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006")
}

func formatLimit(limit int) string {
	if limit < 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", limit)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func parseFeature(raw string) (model.Feature, error) {
	f := model.Feature(strings.TrimSpace(raw))
	for _, known := range model.AllFeatures() {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, 0, len(model.AllFeatures()))
	for _, known := range model.AllFeatures() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown feature %q (one of %s)", raw, strings.Join(names, ", "))
}
