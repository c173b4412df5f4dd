package sfc

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	baseNameStrip   = regexp.MustCompile(`[^A-Za-z0-9_\- ]+`)
	identifierStrip = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// BaseName maps a raw component name from an export to the filesystem-safe
// base used for the .vue filename. Characters outside letters, digits,
// underscores, hyphens and spaces are removed and inner whitespace runs
// collapse to single underscores. A name with nothing left falls back to a
// positional default; position is the component's zero-based index in the
// export and the fallback is numbered from one.
//
// The mapping is deterministic, so duplicate handling can be layered on
// top of it (see NameTable).
func BaseName(raw string, position int) string {
	cleaned := baseNameStrip.ReplaceAllString(raw, "")
	base := strings.Join(strings.Fields(cleaned), "_")
	if base == "" {
		return fmt.Sprintf("Component%d", position+1)
	}
	return base
}

// Identifier maps a component name to the identifier used inside generated
// script code: a stricter pass that keeps only letters, digits and
// underscores, falling back to "Component" when nothing survives. The
// filename and the identifier may legitimately differ when the base name
// carries hyphens.
func Identifier(name string) string {
	id := identifierStrip.ReplaceAllString(name, "")
	if id == "" {
		return "Component"
	}
	return id
}

// NameTable disambiguates duplicate base names within one import run. It
// is rebuilt per invocation and never persisted.
type NameTable struct {
	counts map[string]int
}

func NewNameTable() *NameTable {
	return &NameTable{counts: make(map[string]int)}
}

// Claim records one use of base and returns the name to publish under: the
// first claim returns base unchanged, the Nth repeat returns base_N with N
// counting from 1.
func (t *NameTable) Claim(base string) string {
	n := t.counts[base]
	t.counts[base]++
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}
