package figma

// FileResponse is the payload of the file endpoint: file metadata plus the
// full document tree rooted at Document.
type FileResponse struct {
	Name          string               `json:"name"`
	LastModified  string               `json:"lastModified"`
	ThumbnailURL  string               `json:"thumbnailUrl"`
	Version       string               `json:"version"`
	Document      Node                 `json:"document"`
	Components    map[string]Component `json:"components,omitempty"`
	SchemaVersion int                  `json:"schemaVersion"`
}

// NodesResponse is the payload of the nodes endpoint when fetching specific
// node IDs. Nodes maps each requested ID to its subtree and metadata; IDs
// the file does not contain map to null and decode as zero values.
type NodesResponse struct {
	Name         string              `json:"name"`
	LastModified string              `json:"lastModified"`
	Version      string              `json:"version"`
	Nodes        map[string]NodeData `json:"nodes"`
}

// NodeData wraps one requested node's subtree together with the component
// definitions referenced from it.
type NodeData struct {
	Document   Node                 `json:"document"`
	Components map[string]Component `json:"components,omitempty"`
}

// Component is a reusable design element definition. Instances throughout
// the file reference it by key.
type Component struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Node is one element of the document tree: a page, frame, group, text run
// or shape, with the visual properties code generation draws from.
type Node struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	ComponentID         string     `json:"componentId,omitempty"`
	Children            []Node     `json:"children,omitempty"`
	BackgroundColor     *Color     `json:"backgroundColor,omitempty"`
	Fills               []Paint    `json:"fills,omitempty"`
	Strokes             []Paint    `json:"strokes,omitempty"`
	StrokeWeight        float64    `json:"strokeWeight,omitempty"`
	CornerRadius        float64    `json:"cornerRadius,omitempty"`
	Effects             []Effect   `json:"effects,omitempty"`
	Characters          string     `json:"characters,omitempty"`
	Style               *TypeStyle `json:"style,omitempty"`
	AbsoluteBoundingBox *Rectangle `json:"absoluteBoundingBox,omitempty"`
	LayoutMode          string     `json:"layoutMode,omitempty"`
	PaddingLeft         float64    `json:"paddingLeft,omitempty"`
	PaddingRight        float64    `json:"paddingRight,omitempty"`
	PaddingTop          float64    `json:"paddingTop,omitempty"`
	PaddingBottom       float64    `json:"paddingBottom,omitempty"`
	ItemSpacing         float64    `json:"itemSpacing,omitempty"`
}

// Color is an RGBA color with channels in the 0..1 range; scale by 255 for
// CSS hex notation.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint is one fill or stroke entry of a node: its kind (SOLID,
// GRADIENT_LINEAR, ...), visibility and color. The API omits "visible"
// when it is true, so the field is a pointer; use IsVisible.
type Paint struct {
	Type    string  `json:"type"`
	Visible *bool   `json:"visible,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
	Color   *Color  `json:"color,omitempty"`
}

// IsVisible reports whether the paint is rendered; an absent visible flag
// means visible.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// Effect is a visual effect on a node, such as a drop shadow or blur.
// Visibility follows the same absent-means-visible rule as Paint.
type Effect struct {
	Type      string  `json:"type"`
	Visible   *bool   `json:"visible,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// IsVisible reports whether the effect is rendered; an absent visible flag
// means visible.
func (e Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// Vector is a 2D offset, used for shadow positioning.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle carries the text styling of a TEXT node.
type TypeStyle struct {
	FontFamily          string  `json:"fontFamily"`
	FontPostScriptName  string  `json:"fontPostScriptName"`
	FontWeight          float64 `json:"fontWeight"`
	FontSize            float64 `json:"fontSize"`
	LineHeightPx        float64 `json:"lineHeightPx"`
	LineHeightPercent   float64 `json:"lineHeightPercent"`
	LetterSpacing       float64 `json:"letterSpacing"`
	TextAlignHorizontal string  `json:"textAlignHorizontal"`
	TextAlignVertical   string  `json:"textAlignVertical"`
}

// Rectangle is an absolute bounding box on the canvas.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
