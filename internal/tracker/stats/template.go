package stats

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// avgPlaceholder matches {avg} or {avg:<format>} where the format is a
// Python-style float spec such as ",.1f" or ".0f".
var avgPlaceholder = regexp.MustCompile(`\{avg(?::([^}]*))?\}`)

// formatSpec is the family of specs formatValue honors; anything else
// falls back to the default rendering.
var formatSpec = regexp.MustCompile(`^(,?)\.(\d+)f$`)

// formatValue renders v per a placeholder format spec. An empty or
// unrecognized spec means one decimal place with a trailing ".0"
// trimmed, so that whole guesses read as "4" rather than "4.0".
func formatValue(v float64, spec string) string {
	m := formatSpec.FindStringSubmatch(spec)
	if m == nil {
		s := strconv.FormatFloat(v, 'f', 1, 64)
		return strings.TrimSuffix(s, ".0")
	}

	decimals, _ := strconv.Atoi(m[2])
	if m[1] == "," {
		format := "#,###."
		if decimals > 0 {
			format += strings.Repeat("#", decimals)
		}
		return humanize.FormatFloat(format, v)
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// templateSpec returns the format spec of the template's first {avg}
// placeholder, or "" if the template carries none.
func templateSpec(template string) string {
	if m := avgPlaceholder.FindStringSubmatch(template); m != nil {
		return m[1]
	}
	return ""
}

// FormatAverage formats v as a bare number using only the format
// specifier from the template's first {avg} placeholder, dropping the
// surrounding text.
func FormatAverage(template string, v float64) string {
	return formatValue(v, templateSpec(template))
}

// RenderTemplate substitutes every {avg} placeholder in template with
// the formatted value. A template without a placeholder gets the value
// appended, so a misconfigured schema still shows the number.
func RenderTemplate(template string, v float64) string {
	if template == "" {
		return formatValue(v, "")
	}
	if !avgPlaceholder.MatchString(template) {
		return fmt.Sprintf("%s %s", template, formatValue(v, ""))
	}
	return avgPlaceholder.ReplaceAllStringFunc(template, func(m string) string {
		sub := avgPlaceholder.FindStringSubmatch(m)
		return formatValue(v, sub[1])
	})
}
