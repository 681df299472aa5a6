package core

// Shape is a filled or outlined rectangle in world space.
// Glyph is the rune used by the terminal rasterizer; zero means a full block.
type Shape struct {
	Rect  Rect
	Color Color
	Glyph rune
	Frame bool
}

// Label is a line of text anchored in world space.
type Label struct {
	Pos      Vec2
	Text     string
	Color    Color
	Centered bool
	Big      bool // headings; hosts may render them larger
}

// DrawState is the render model produced by the active scene each frame.
// Hosts rasterize it; the simulation never touches a real surface.
type DrawState struct {
	Background Color
	Shapes     []Shape
	Labels     []Label
	Fade       float64 // 0 = fully visible, 1 = black
}

// Reset clears the draw state while keeping allocated capacity.
func (d *DrawState) Reset() {
	d.Background = ColorDefault
	d.Shapes = d.Shapes[:0]
	d.Labels = d.Labels[:0]
	d.Fade = 0
}

// Fill appends a filled rectangle.
func (d *DrawState) Fill(r Rect, c Color, glyph rune) {
	d.Shapes = append(d.Shapes, Shape{Rect: r, Color: c, Glyph: glyph})
}

// Outline appends a rectangle outline.
func (d *DrawState) Outline(r Rect, c Color) {
	d.Shapes = append(d.Shapes, Shape{Rect: r, Color: c, Frame: true})
}

// Text appends a left-aligned label.
func (d *DrawState) Text(x, y float64, text string, c Color) {
	d.Labels = append(d.Labels, Label{Pos: Vec2{X: x, Y: y}, Text: text, Color: c})
}

// TextCentered appends a label centered on x.
func (d *DrawState) TextCentered(x, y float64, text string, c Color) {
	d.Labels = append(d.Labels, Label{Pos: Vec2{X: x, Y: y}, Text: text, Color: c, Centered: true})
}

// Heading appends a big centered label.
func (d *DrawState) Heading(x, y float64, text string, c Color) {
	d.Labels = append(d.Labels, Label{Pos: Vec2{X: x, Y: y}, Text: text, Color: c, Centered: true, Big: true})
}

// Darken requests a black overlay. Repeated calls keep the darkest request.
func (d *DrawState) Darken(alpha float64) {
	alpha = Saturate(alpha)
	if alpha > d.Fade {
		d.Fade = alpha
	}
}
