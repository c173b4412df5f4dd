// Package exporter turns a Figma container node into interchange text
// components: it walks the container's direct children and asks a
// CodeGenerator for each child's named, language-tagged code sections.
package exporter

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-vuegen/pkg/codefile"
	"github.com/hellenic-development/figma-vuegen/pkg/figma"
)

// CodeGenerator produces the code sections for one design node.
// Implementations may call external services. Export invokes the generator
// once per child, sequentially, and treats a failed call as "skip this
// child", never as a fatal error.
type CodeGenerator interface {
	Generate(node *figma.Node) ([]codefile.Section, error)
}

// Result is the outcome of one container walk: the components produced,
// plus the per-child generator failures that were skipped over.
type Result struct {
	Components []codefile.Component
	Skipped    []error
}

// Export walks container's direct children in document order and collects
// one component per child, named after the child node. A container with no
// children yields an empty result.
func Export(container *figma.Node, gen CodeGenerator) *Result {
	res := &Result{}

	for i := range container.Children {
		child := &container.Children[i]
		sections, err := gen.Generate(child)
		if err != nil {
			res.Skipped = append(res.Skipped, fmt.Errorf("generate %q: %w", child.Name, err))
			continue
		}
		res.Components = append(res.Components, codefile.Component{
			Name:     child.Name,
			Sections: sections,
		})
	}

	return res
}

// FileName derives the output filename for an export from the container
// frame's name, falling back to "frame" when the name sanitizes away.
func FileName(frameName string) string {
	name := toKebabCase(frameName)
	if name == "" {
		name = "frame"
	}
	return name + "-components-code.txt"
}

func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}
