package app

import (
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cardview/internal/bitmap"
	"github.com/llehouerou/cardview/internal/display"
	"github.com/llehouerou/cardview/internal/stack"
	"github.com/llehouerou/cardview/internal/state"
	"github.com/llehouerou/cardview/internal/viewer"
)

const testStackPath = "/stacks/home"

// fakeStack has cards of 40x20 pixels; card i has ink at (i, 0) and the
// background has ink along the last column.
type fakeStack struct {
	cards int
}

func (s *fakeStack) Name() string              { return "Home" }
func (s *fakeStack) Path() string              { return testStackPath }
func (s *fakeStack) Size() (width, height int) { return 40, 20 }
func (s *fakeStack) CardCount() int            { return s.cards }
func (s *fakeStack) ModTime() time.Time        { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

func (s *fakeStack) Backgrounds() []stack.Background {
	return []stack.Background{{ID: 1, Name: "plain"}}
}

func (s *fakeStack) Card(index int) (stack.Card, error) {
	if index < 0 || index >= s.cards {
		return stack.Card{}, stack.ErrIndexOutOfRange
	}
	names := []string{"Intro", "Index", "Notes", "Credits"}
	return stack.Card{ID: 100 + index, Name: names[index%len(names)], BackgroundID: 1}, nil
}

func (s *fakeStack) BackgroundOf(index int) (stack.Background, error) {
	if index < 0 || index >= s.cards {
		return stack.Background{}, stack.ErrIndexOutOfRange
	}
	return s.Backgrounds()[0], nil
}

func (s *fakeStack) CardImage(index int, backgroundOnly bool) (*bitmap.Image, error) {
	if index < 0 || index >= s.cards {
		return nil, stack.ErrIndexOutOfRange
	}
	img := bitmap.New(40, 20)
	for y := range 20 {
		img.SetInk(39, y, true)
	}
	if !backgroundOnly {
		img.SetInk(index, 0, true)
	}
	return img, nil
}

// fakeProtocol uses 10x20 pixel cells and kitty placement commands.
type fakeProtocol struct{}

func (fakeProtocol) Name() string { return "fake" }

func (fakeProtocol) Prepare(image.Image, uint32) (string, error) { return "<tx>", nil }

func (fakeProtocol) PrepareFromPNG([]byte, uint32) (string, error) { return "<tx>", nil }

func (fakeProtocol) Place(id uint32, row, col, width, height int) string {
	return display.PlaceImage(id, row, col, width, height)
}

func (fakeProtocol) Delete(uint32) string { return "<del>" }

func (fakeProtocol) CellSize() (width, height int) { return 10, 20 }

// newTestModel creates a model without image output.
func newTestModel(cards int) (Model, *state.Mock) {
	return newTestModelWith(cards, display.New(nil, nil), state.NewMock())
}

func newTestModelWith(cards int, disp *display.Display, mock *state.Mock) (Model, *state.Mock) {
	st := &fakeStack{cards: cards}
	v, err := viewer.New(st)
	if err != nil {
		panic(err)
	}
	return New(st, v, disp, mock), mock
}

// update runs one message through Update.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd //nolint:forcetypeassert // Update always returns Model
}

// settle runs cmd and feeds the render results it produces back into
// the model. Other messages are ignored.
func settle(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case RenderedMsg:
		m, _ = update(m, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(m, c)
		}
	}
	return m
}
