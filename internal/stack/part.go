package stack

// Rect is a part rectangle in card coordinates. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the rectangle width.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height.
func (r Rect) Height() int { return r.Bottom - r.Top }

// PartInfo holds what fields and buttons have in common.
type PartInfo struct {
	ID   int
	Name string
	Rect Rect
}

// Part is a field or a button on a card or background layer.
// The interface is sealed: *Field and *Button are the only implementations,
// so a type switch over both is exhaustive.
type Part interface {
	Info() PartInfo
	isPart()
}

// Field is a text part.
type Field struct {
	PartInfo
	Text string
}

// Button is a clickable part. Content is the text stored with the button
// (used when the button sits on a background and has per-card content).
type Button struct {
	PartInfo
	Content string
}

// Info implements Part.
func (f *Field) Info() PartInfo { return f.PartInfo }

// Info implements Part.
func (b *Button) Info() PartInfo { return b.PartInfo }

func (*Field) isPart()  {}
func (*Button) isPart() {}

// PartKind identifies the variant of a Part.
type PartKind int

const (
	KindField PartKind = iota
	KindButton
)

func (k PartKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindButton:
		return "button"
	}
	return "unknown"
}

// KindOf returns the variant of p.
func KindOf(p Part) PartKind {
	switch p.(type) {
	case *Field:
		return KindField
	case *Button:
		return KindButton
	}
	panic("stack: unknown part type")
}

// BackgroundPartContent is the text a card stores for one background part.
type BackgroundPartContent struct {
	PartID int
	Text   string
}

// PartContent returns the text displayed for p.
//
// When cardContents is non-nil, p is a background part seen through a card:
// the card's content for that part is returned, or "" if the card has none.
// Otherwise the part's own content is returned.
func PartContent(p Part, cardContents []BackgroundPartContent) string {
	if cardContents != nil {
		id := p.Info().ID
		for _, c := range cardContents {
			if c.PartID == id {
				return c.Text
			}
		}
		return ""
	}

	switch p := p.(type) {
	case *Field:
		return p.Text
	case *Button:
		return p.Content
	}
	panic("stack: unknown part type")
}
