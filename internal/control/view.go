package control

// Area is a rectangle of terminal cells.
type Area struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Inner returns the area left inside a one cell border.
func (a Area) Inner() Area {
	inner := Area{X: a.X + 1, Y: a.Y + 1, Width: a.Width - 2, Height: a.Height - 2}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}

// Take splits off the top rows of a. The second area is what remains.
func (a Area) Take(rows int) (Area, Area) {
	if rows > a.Height {
		rows = a.Height
	}
	if rows < 0 {
		rows = 0
	}
	top := Area{X: a.X, Y: a.Y, Width: a.Width, Height: rows}
	rest := Area{X: a.X, Y: a.Y + rows, Width: a.Width, Height: a.Height - rows}
	return top, rest
}

// Empty reports whether the area has no cells.
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// Emphasis is a set of text attributes.
type Emphasis uint8

const (
	Bold Emphasis = 1 << iota
	Underline
	Reverse
)

// Tone selects a theme colour for a span.
type Tone int

const (
	ToneNormal Tone = iota
	ToneMuted
	ToneTitle
	ToneError
	ToneInfo
	ToneSubject
	ToneFrom
	ToneDate
	ToneSubjectUnseen
	ToneFromUnseen
	ToneDateUnseen
)

// Span is a run of text with uniform emphasis.
type Span struct {
	Text     string
	Emphasis Emphasis
	Tone     Tone
}

// Plain returns an unstyled span.
func Plain(text string) Span {
	return Span{Text: text}
}

// Styled returns a span with the given emphasis.
func Styled(text string, e Emphasis) Span {
	return Span{Text: text, Emphasis: e}
}

// Align positions a line inside its area.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Line is a single row of spans.
type Line struct {
	Spans []Span
	Align Align
}

// Text returns the concatenated span text without attributes.
func (l Line) Text() string {
	var out string
	for _, s := range l.Spans {
		out += s.Text
	}
	return out
}

// Border decorates a view's area.
type Border int

const (
	BorderNone Border = iota
	BorderRounded
)

// View is the render description a control produces. Lines fill the area
// (inside the border when there is one) from the top; children carry their
// own areas.
type View struct {
	Area     Area
	Title    string
	Border   Border
	Active   bool
	Lines    []Line
	Children []View
}

// Text flattens the view into plain rows, children after lines. It is meant
// for assertions, not for drawing.
func (v View) Text() []string {
	var out []string
	if v.Title != "" {
		out = append(out, "["+v.Title+"]")
	}
	for _, l := range v.Lines {
		out = append(out, l.Text())
	}
	for _, child := range v.Children {
		out = append(out, child.Text()...)
	}
	return out
}
