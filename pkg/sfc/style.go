package sfc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hellenic-development/figma-vuegen/pkg/codefile"
)

// declRe matches one bare CSS declaration: a property name (optionally
// vendor-prefixed) followed by a value, with an optional trailing
// semicolon. Custom properties (--name) do not match and keep their
// section in the style block.
var declRe = regexp.MustCompile(`^\s*(-?[A-Za-z][A-Za-z0-9-]*)\s*:\s*(.+?);?\s*$`)

var valueQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// IsObjectLiteral reports whether trimmed text is fully wrapped in braces,
// the shape a JS style object takes. Shape is all we have to go on: the
// exporter does not tag style-object intent, so the importer guesses from
// the text itself.
func IsObjectLiteral(trimmed string) bool {
	return strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")
}

// isDeclarationBlock reports whether code is a run of bare CSS
// declarations: no braces anywhere and every non-blank line shaped like
// "property: value", with at least one such line.
func isDeclarationBlock(code string) bool {
	if strings.ContainsAny(code, "{}") {
		return false
	}
	matched := false
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !declRe.MatchString(line) {
			return false
		}
		matched = true
	}
	return matched
}

// partitionStyles splits style sections into declaration-only blocks,
// which are candidates for inlining, and everything else, which stays in
// the style block.
func partitionStyles(styles []codefile.Section) (decls, sheets []codefile.Section) {
	for _, s := range styles {
		if isDeclarationBlock(s.Code) {
			decls = append(decls, s)
		} else {
			sheets = append(sheets, s)
		}
	}
	return decls, sheets
}

// declarationsToObject converts declaration-only style sections into one
// JS object literal, mapping each "property: value;" line to a
// "camelCase: 'value'," entry. Lines that fail the declaration shape are
// skipped.
func declarationsToObject(sections []codefile.Section) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range sections {
		for _, line := range strings.Split(s.Code, "\n") {
			m := declRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %s: '%s',\n",
				camelCaseProperty(m[1]), valueQuoter.Replace(strings.TrimSpace(m[2]))))
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// camelCaseProperty converts a hyphenated CSS property name to the
// camelCase form used in JS style objects. A leading hyphen capitalizes
// the first segment, so "-webkit-box" becomes "WebkitBox", matching the
// vendor-prefix convention.
func camelCaseProperty(prop string) string {
	parts := strings.Split(prop, "-")
	var sb strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 {
			sb.WriteString(p)
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return sb.String()
}
