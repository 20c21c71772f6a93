// Package billing provides template helpers for plan, usage and payment views.
package billing

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strconv"

	"github.com/prepdeck/prepdeck-web/internal/domain/model"
	billingview "github.com/prepdeck/prepdeck-web/internal/http/ui/billing"
)

// Funcs returns helpers used by the pricing, billing and permissions templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":        model.FormatMoney,
		"featureLabel": func(f string) string { return model.Feature(f).Label() },
		"statusClass":  billingview.StatusClass,
		"meterWidth":   MeterWidth,
		"meterClass":   MeterClass,
		"prettyJSON":   PrettyJSON,
	}
}

// MeterWidth returns an inline width style for a 0..100 progress bar.
func MeterWidth(percent int) template.CSS {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	// #nosec G203 - integer formatted by strconv
	return template.CSS("width: " + strconv.Itoa(percent) + "%")
}

// MeterClass colors a usage meter by how close it is to the limit.
func MeterClass(percent int) string {
	switch {
	case percent >= 100:
		return "meter-full"
	case percent >= billingview.NearLimitPercent:
		return "meter-warning"
	default:
		return "meter-ok"
	}
}

// PrettyJSON indents raw JSON for display; invalid input is returned as-is.
func PrettyJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}
