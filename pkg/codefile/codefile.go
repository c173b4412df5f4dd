// Package codefile implements the line-oriented text format that carries
// exported design components from the exporter to the importer.
//
// A file is a flat sequence of components. Two comment-style marker lines
// give it structure:
//
//	// ===== Component: Card =====
//	// ---- Markup (html) ----
//	<div class="card"></div>
//	// ---- Styles (css) ----
//	background-color: #FFFFFF;
//
// Every line that is not a recognized marker is raw section body. The
// format is deliberately forgiving: marker matching is case-insensitive,
// tolerates extra whitespace and tabs, and a malformed marker simply falls
// through to body handling, so hand-edited files still parse. Parsing never
// fails.
package codefile

import (
	"fmt"
	"regexp"
	"strings"
)

// Component is one exported design component: its raw name and the ordered
// code sections emitted for it. Section order is significant; consumers
// give the first section of a given role priority over later ones.
type Component struct {
	Name     string
	Sections []Section
}

// Section is a single named, language-tagged code block. Lang is an open
// tag, not a closed set: the parser lowercases it and passes it through,
// and consumers pattern-match the tags they understand.
type Section struct {
	Title string
	Lang  string
	Code  string
}

// Marker patterns. A component header needs a run of at least three '='
// on each side, a section header a run of at least two '-', and both need
// their closing run; a header missing it is treated as body text.
var (
	componentRe = regexp.MustCompile(`(?i)^\s*//\s*={3,}\s*component:\s*(.*?)\s*={3,}\s*$`)
	sectionRe   = regexp.MustCompile(`(?i)^\s*//\s*-{2,}\s*(.*?)\s*\(([^()]*)\)\s*-{2,}\s*$`)
)

// scanState tracks where the parser is in the file. Keeping it explicit
// makes the silent edge cases (a section header before any component, body
// text before any section) first-class branches.
type scanState int

const (
	stateTopLevel  scanState = iota // before the first component header
	stateComponent                  // inside a component, no open section
	stateSection                    // appending body lines to the last section
)

// Parse scans text and returns the components it contains, in input order.
//
// Parse never returns an error. Body lines that arrive while no section is
// open are dropped, a section header seen before any component header is
// ignored, and a component without sections is still returned; deciding
// what is usable is the consumer's job.
func Parse(text string) []Component {
	var (
		state      = stateTopLevel
		components []Component
		current    Component
	)

	flush := func() {
		if state != stateTopLevel {
			components = append(components, current)
		}
	}

	for _, line := range splitLines(text) {
		// Tabs are stripped for marker matching only; body lines keep them.
		probe := strings.ReplaceAll(line, "\t", "")

		if m := componentRe.FindStringSubmatch(probe); m != nil {
			flush()
			current = Component{Name: m[1]}
			state = stateComponent
			continue
		}

		if m := sectionRe.FindStringSubmatch(probe); m != nil {
			if state == stateTopLevel {
				continue
			}
			current.Sections = append(current.Sections, Section{
				Title: m[1],
				Lang:  strings.ToLower(m[2]),
			})
			state = stateSection
			continue
		}

		if state == stateSection {
			s := &current.Sections[len(current.Sections)-1]
			s.Code += line + "\n"
		}
	}

	flush()
	return components
}

// Marshal renders components back into the text form Parse reads. Section
// bodies are written verbatim and newline-terminated. Body lines are not
// escaped, so a body line that itself looks like a marker will be read
// back as one; exporters do not produce such lines.
func Marshal(components []Component) string {
	var sb strings.Builder

	for _, c := range components {
		sb.WriteString(fmt.Sprintf("// ===== Component: %s =====\n", c.Name))
		for _, s := range c.Sections {
			sb.WriteString(fmt.Sprintf("// ---- %s (%s) ----\n", s.Title, s.Lang))
			if s.Code == "" {
				continue
			}
			sb.WriteString(s.Code)
			if !strings.HasSuffix(s.Code, "\n") {
				sb.WriteString("\n")
			}
		}
	}

	return sb.String()
}

// splitLines splits text into lines, tolerating CRLF endings and not
// inventing a trailing empty line for newline-terminated input.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
