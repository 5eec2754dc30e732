package infopanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cardview/internal/navigator"
	"github.com/llehouerou/cardview/internal/stack"
	"github.com/llehouerou/cardview/internal/ui/render"
	"github.com/llehouerou/cardview/internal/ui/styles"
)

// Source is the stack information the panel lists.
type Source interface {
	Name() string
	Path() string
	Size() (width, height int)
	CardCount() int
	ModTime() time.Time
	Backgrounds() []stack.Background
	Card(index int) (stack.Card, error)
	BackgroundOf(index int) (stack.Background, error)
}

var _ Source = (*stack.Stack)(nil)

// Frame describes the last rendered frame.
type Frame struct {
	Width, Height int
	Scale         int
	Bytes         int
	Protocol      string
	Took          time.Duration
}

// Build returns the panel text for the card selected by st:
// the stack, its current background and card, and the rendered frame.
func Build(src Source, st navigator.State, frame Frame, width int) string {
	b := &builder{width: max(width, 10), now: time.Now()}

	b.header("Stack")
	b.field("name", src.Name())
	b.field("path", src.Path())
	w, h := src.Size()
	b.field("size", fmt.Sprintf("%d × %d", w, h))
	b.field("cards", humanize.Comma(int64(src.CardCount())))
	b.field("backgrounds", humanize.Comma(int64(len(src.Backgrounds()))))
	if mt := src.ModTime(); !mt.IsZero() {
		b.field("modified", humanize.RelTime(mt, b.now, "ago", "from now"))
	}

	if st.CardCount > 0 {
		card, cardErr := src.Card(st.Index)
		bg, bgErr := src.BackgroundOf(st.Index)

		if bgErr == nil {
			b.blank()
			b.header("Background")
			b.field("id", fmt.Sprint(bg.ID))
			b.field("name", orNone(bg.Name))
			// Background parts always show the current card's text, even
			// when only the background is displayed.
			var contents []stack.BackgroundPartContent
			if cardErr == nil {
				contents = card.Contents
			}
			b.parts(bg.Parts, contents)
		}

		if cardErr == nil && !st.BackgroundOnly {
			b.blank()
			b.header("Card")
			b.field("number", fmt.Sprintf("%d of %d", st.Index+1, st.CardCount))
			b.field("id", fmt.Sprint(card.ID))
			b.field("name", orNone(card.Name))
			b.parts(card.Parts, nil)
		}
	}

	if frame.Bytes > 0 {
		b.blank()
		b.header("Frame")
		b.field("pixels", fmt.Sprintf("%d × %d (×%d)", frame.Width, frame.Height, frame.Scale))
		b.field("buffer", humanize.IBytes(uint64(frame.Bytes))) //nolint:gosec // positive size
		if frame.Took > 0 {
			b.field("render", frame.Took.Round(time.Microsecond).String())
		}
		if frame.Protocol != "" {
			b.field("output", frame.Protocol)
		}
	}

	return strings.TrimSuffix(b.sb.String(), "\n")
}

type builder struct {
	sb    strings.Builder
	width int
	now   time.Time
}

func (b *builder) header(title string) {
	st := styles.T().S()
	b.sb.WriteString(st.Header.Render(title))
	b.sb.WriteString("\n")
	b.sb.WriteString(st.Subtle.Render(render.Separator(b.width)))
	b.sb.WriteString("\n")
}

const labelWidth = 12

func (b *builder) field(label, value string) {
	st := styles.T().S()
	b.sb.WriteString(st.Label.Render(render.TruncateAndPad(label, labelWidth)))
	b.sb.WriteString(st.Base.Render(render.Truncate(value, b.width-labelWidth)))
	b.sb.WriteString("\n")
}

func (b *builder) blank() {
	b.sb.WriteString("\n")
}

func (b *builder) parts(parts []stack.Part, contents []stack.BackgroundPartContent) {
	if len(parts) == 0 {
		b.field("parts", "none")
		return
	}
	b.field("parts", humanize.Comma(int64(len(parts))))

	st := styles.T().S()
	for _, p := range parts {
		info := partInfo(p)
		title := fmt.Sprintf("%s %d", stack.KindOf(p), info.ID)
		if info.Name != "" {
			title += " " + render.Sanitize(info.Name)
		}
		b.sb.WriteString("  ")
		b.sb.WriteString(st.Key.Render(render.Truncate(title, b.width-2)))
		b.sb.WriteString("\n")

		text := stack.PartContent(p, contents)
		if text == "" {
			continue
		}
		for line := range strings.SplitSeq(text, "\n") {
			b.sb.WriteString("    ")
			b.sb.WriteString(st.Muted.Render(render.Truncate(line, b.width-4)))
			b.sb.WriteString("\n")
		}
	}
}

func partInfo(p stack.Part) stack.PartInfo {
	switch p := p.(type) {
	case *stack.Field:
		return p.PartInfo
	case *stack.Button:
		return p.PartInfo
	}
	panic(fmt.Sprintf("infopanel: unknown part type %T", p))
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
