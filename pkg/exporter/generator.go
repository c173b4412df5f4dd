package exporter

import (
	"fmt"
	"math"
	"strings"

	"github.com/hellenic-development/figma-vuegen/pkg/codefile"
	"github.com/hellenic-development/figma-vuegen/pkg/figma"
)

// DefaultGenerator derives code sections from a node's own visual
// properties, without calling any external service: a markup sketch of the
// node's subtree and a stylesheet of bare CSS declarations. It stands in
// for the design tool's own code generation when an export runs outside
// the plugin environment.
//
// Components, when set, maps component keys to their definitions so that
// instance nodes can carry their component's description as a markup
// comment.
type DefaultGenerator struct {
	Components map[string]figma.Component
}

// Generate returns a markup section for the node and, when the node
// expresses any styling, a matching stylesheet section. It never fails.
func (g DefaultGenerator) Generate(node *figma.Node) ([]codefile.Section, error) {
	var sb strings.Builder
	g.writeMarkup(&sb, node, 0)

	sections := []codefile.Section{
		{Title: "Markup", Lang: "html", Code: sb.String()},
	}
	if css := nodeCSS(node); css != "" {
		sections = append(sections, codefile.Section{Title: "Styles", Lang: "css", Code: css})
	}
	return sections, nil
}

func (g DefaultGenerator) writeMarkup(sb *strings.Builder, node *figma.Node, depth int) {
	ind := strings.Repeat("  ", depth)
	class := toKebabCase(node.Name)
	if class == "" {
		class = strings.ToLower(node.Type)
	}

	if node.ComponentID != "" {
		if def, ok := g.Components[node.ComponentID]; ok && def.Description != "" {
			fmt.Fprintf(sb, "%s<!-- %s: %s -->\n", ind, def.Name, def.Description)
		}
	}

	switch {
	case node.Type == "TEXT":
		fmt.Fprintf(sb, "%s<p class=\"%s\">%s</p>\n", ind, class, escapeText(node.Characters))
	case len(node.Children) == 0:
		fmt.Fprintf(sb, "%s<div class=\"%s\"></div>\n", ind, class)
	default:
		fmt.Fprintf(sb, "%s<div class=\"%s\">\n", ind, class)
		for i := range node.Children {
			g.writeMarkup(sb, &node.Children[i], depth+1)
		}
		fmt.Fprintf(sb, "%s</div>\n", ind)
	}
}

// nodeCSS expresses the node's styling as bare CSS declarations, one per
// line, in a fixed property order. Nodes with no styling produce an empty
// string and get no stylesheet section.
func nodeCSS(node *figma.Node) string {
	var decls []string
	add := func(prop, value string) {
		decls = append(decls, fmt.Sprintf("%s: %s;", prop, value))
	}

	switch node.LayoutMode {
	case "HORIZONTAL":
		add("display", "flex")
		add("flex-direction", "row")
	case "VERTICAL":
		add("display", "flex")
		add("flex-direction", "column")
	}
	if node.LayoutMode != "" && node.ItemSpacing > 0 {
		add("gap", px(node.ItemSpacing))
	}
	if node.PaddingTop > 0 || node.PaddingRight > 0 || node.PaddingBottom > 0 || node.PaddingLeft > 0 {
		add("padding", fmt.Sprintf("%s %s %s %s",
			px(node.PaddingTop), px(node.PaddingRight), px(node.PaddingBottom), px(node.PaddingLeft)))
	}
	// Fixed dimensions only make sense outside auto-layout.
	if box := node.AbsoluteBoundingBox; box != nil && node.LayoutMode == "" {
		if box.Width > 0 {
			add("width", px(box.Width))
		}
		if box.Height > 0 {
			add("height", px(box.Height))
		}
	}

	if node.Type == "TEXT" {
		// A text node's fill is its text color.
		if c := firstSolidColor(node.Fills); c != nil {
			add("color", colorToHex(c))
		}
		if s := node.Style; s != nil {
			if s.FontFamily != "" {
				add("font-family", fmt.Sprintf("'%s', sans-serif", s.FontFamily))
			}
			if s.FontSize > 0 {
				add("font-size", px(s.FontSize))
			}
			if s.FontWeight > 0 {
				add("font-weight", fmt.Sprintf("%g", s.FontWeight))
			}
			if s.LineHeightPx > 0 {
				add("line-height", px(s.LineHeightPx))
			}
			if s.TextAlignHorizontal != "" && s.TextAlignHorizontal != "LEFT" {
				add("text-align", strings.ToLower(s.TextAlignHorizontal))
			}
		}
	} else {
		if c := firstSolidColor(node.Fills); c != nil {
			add("background-color", colorToHex(c))
		} else if node.BackgroundColor != nil {
			add("background-color", colorToHex(node.BackgroundColor))
		}
	}

	if c := firstSolidColor(node.Strokes); c != nil && node.StrokeWeight > 0 {
		add("border", fmt.Sprintf("%s solid %s", px(node.StrokeWeight), colorToHex(c)))
	}
	if node.CornerRadius > 0 {
		add("border-radius", px(node.CornerRadius))
	}
	for _, e := range node.Effects {
		if e.Type == "DROP_SHADOW" && e.IsVisible() && e.Offset != nil {
			add("box-shadow", fmt.Sprintf("%s %s %s %s",
				px(e.Offset.X), px(e.Offset.Y), px(e.Radius), colorToRGBA(e.Color)))
			break
		}
	}

	if len(decls) == 0 {
		return ""
	}
	return strings.Join(decls, "\n") + "\n"
}

// firstSolidColor returns the color of the first visible SOLID paint, or
// nil when there is none.
func firstSolidColor(paints []figma.Paint) *figma.Color {
	for _, p := range paints {
		if p.Type == "SOLID" && p.Color != nil && p.IsVisible() {
			return p.Color
		}
	}
	return nil
}

func colorToHex(color *figma.Color) string {
	if color == nil {
		return "#000000"
	}

	r := int(math.Round(color.R * 255))
	g := int(math.Round(color.G * 255))
	b := int(math.Round(color.B * 255))

	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func colorToRGBA(color *figma.Color) string {
	if color == nil {
		return "rgba(0, 0, 0, 1)"
	}

	r := int(math.Round(color.R * 255))
	g := int(math.Round(color.G * 255))
	b := int(math.Round(color.B * 255))

	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, color.A)
}

func px(v float64) string {
	return fmt.Sprintf("%gpx", v)
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
