// Package sfc synthesizes Vue single-file components from exported design
// components.
//
// Each exported section is classified by its language tag into one of four
// roles (template, script, style, opaque), and the component's final name
// is resolved before any content is generated, so filenames, header
// comments and in-code identifiers always agree without any post-hoc
// rewriting.
package sfc

import (
	"fmt"
	"strings"

	"github.com/hellenic-development/figma-vuegen/pkg/codefile"
)

// Kind is the role a section plays in the synthesized single-file
// component.
type Kind int

const (
	KindTemplate Kind = iota
	KindScript
	KindStyle
	KindOpaque
)

// ClassifyLang maps a section's language tag to its Kind. Style tags are
// matched as a substring, so "scss", "postcss" and similar all land in the
// style bucket; template and script tags must match exactly. The asymmetry
// is deliberate: upstream exporters are inventive with style tag names but
// consistent with markup and script ones. Unknown tags are KindOpaque and
// render as escaped preformatted text.
func ClassifyLang(lang string) Kind {
	tag := strings.ToLower(strings.TrimSpace(lang))
	if strings.Contains(tag, "css") {
		return KindStyle
	}
	switch tag {
	case "html", "vue", "template", "component":
		return KindTemplate
	case "js", "jsx", "tsx":
		return KindScript
	}
	return KindOpaque
}

// HasTemplate reports whether a file will be synthesized for c: it needs
// at least one template-like section with non-blank code. Components that
// fail this test are skipped by the import pipeline.
func HasTemplate(c codefile.Component) bool {
	for _, s := range c.Sections {
		if ClassifyLang(s.Lang) == KindTemplate && strings.TrimSpace(s.Code) != "" {
			return true
		}
	}
	return false
}

const indentUnit = "  "

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Build renders one component into Vue single-file component source.
// name must be the final, collision-resolved component name; see
// NameTable.
//
// The first non-blank template-like section becomes the template body
// (with a generated placeholder when there is none), opaque sections are
// appended as escaped <pre> blocks, and the script is resolved in priority
// order: an object-literal script section binds an inline style variable
// around the template; otherwise script sections concatenate into a setup
// script; otherwise declaration-only style sections fold into the same
// inline style binding and leave the style block; otherwise a plain
// default export naming the component is emitted.
func Build(c codefile.Component, name string) string {
	var (
		templateBody string
		scripts      []codefile.Section
		styles       []codefile.Section
		opaque       []codefile.Section
	)
	for _, s := range c.Sections {
		switch ClassifyLang(s.Lang) {
		case KindTemplate:
			if templateBody == "" && strings.TrimSpace(s.Code) != "" {
				templateBody = s.Code
			}
		case KindScript:
			scripts = append(scripts, s)
		case KindStyle:
			styles = append(styles, s)
		default:
			opaque = append(opaque, s)
		}
	}

	objectScript := ""
	for _, s := range scripts {
		if t := strings.TrimSpace(s.Code); IsObjectLiteral(t) {
			objectScript = t
			break
		}
	}
	decls, sheets := partitionStyles(styles)

	var (
		inlineStyle string
		scriptBlock string
		styleBlock  = styles
	)
	switch {
	case objectScript != "":
		inlineStyle = objectScript
	case len(scripts) > 0:
		var body strings.Builder
		for _, s := range scripts {
			body.WriteString(s.Code)
		}
		scriptBlock = setupScript(strings.TrimRight(body.String(), "\n"))
	case len(decls) > 0:
		inlineStyle = declarationsToObject(decls)
		styleBlock = sheets
	default:
		scriptBlock = defaultScript(Identifier(name))
	}
	if inlineStyle != "" {
		scriptBlock = setupScript("const inlineStyle = " + inlineStyle)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<!-- %s (generated from design export) -->\n", name))

	sb.WriteString("<template>\n")
	bodyIndent := indentUnit
	if inlineStyle != "" {
		sb.WriteString(indentUnit + "<div :style=\"inlineStyle\">\n")
		bodyIndent += indentUnit
	}
	if templateBody != "" {
		writeIndented(&sb, templateBody, bodyIndent)
	} else {
		cls := toKebabCase(name)
		if cls == "" {
			cls = "component"
		}
		sb.WriteString(fmt.Sprintf("%s<div class=%q>%s</div>\n", bodyIndent, cls, name))
	}
	for _, s := range opaque {
		sb.WriteString(bodyIndent + "<pre>\n")
		sb.WriteString(htmlEscaper.Replace(ensureNewline(s.Code)))
		sb.WriteString(bodyIndent + "</pre>\n")
	}
	if inlineStyle != "" {
		sb.WriteString(indentUnit + "</div>\n")
	}
	sb.WriteString("</template>\n")

	sb.WriteString("\n")
	sb.WriteString(scriptBlock)

	if len(styleBlock) > 0 {
		sb.WriteString("\n<style scoped>\n")
		for _, s := range styleBlock {
			sb.WriteString(ensureNewline(s.Code))
		}
		sb.WriteString("</style>\n")
	}

	return sb.String()
}

func setupScript(body string) string {
	return "<script setup>\n" + body + "\n</script>\n"
}

func defaultScript(identifier string) string {
	return fmt.Sprintf("<script>\nexport default {\n  name: '%s',\n}\n</script>\n", identifier)
}

// writeIndented appends code line by line with the given prefix, keeping
// blank lines blank so the output carries no trailing whitespace.
func writeIndented(sb *strings.Builder, code, prefix string) {
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(prefix + line + "\n")
	}
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
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
