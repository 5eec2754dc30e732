package display

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProtocol records calls and uses a fixed 10x20 cell.
type fakeProtocol struct {
	prepared []uint32
	deleted  []uint32
}

func (f *fakeProtocol) Name() string { return "fake" }

func (f *fakeProtocol) Prepare(_ image.Image, id uint32) (string, error) {
	f.prepared = append(f.prepared, id)
	return "<tx>", nil
}

func (f *fakeProtocol) PrepareFromPNG(_ []byte, id uint32) (string, error) {
	f.prepared = append(f.prepared, id)
	return "<tx>", nil
}

func (f *fakeProtocol) Place(id uint32, row, col, width, height int) string {
	return PlaceImage(id, row, col, width, height)
}

func (f *fakeProtocol) Delete(id uint32) string {
	f.deleted = append(f.deleted, id)
	return "<del>"
}

func (f *fakeProtocol) CellSize() (width, height int) { return 10, 20 }

func card(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.RGBA{255, 255, 255, 255}
			if x == y {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"fits unchanged", 100, 50, 200, 200, 100, 50},
		{"exact fit", 100, 50, 100, 50, 100, 50},
		{"shrinks by width", 1024, 684, 512, 1000, 512, 342},
		{"shrinks by height", 1024, 684, 2000, 342, 512, 342},
		{"zero bounds disable fitting", 100, 50, 0, 0, 100, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(card(tt.w, tt.h), tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, got.Bounds().Dx())
			assert.Equal(t, tt.wantH, got.Bounds().Dy())
		})
	}
}

func TestCellsFor(t *testing.T) {
	cols, rows := cellsFor(95, 41, 10, 20)
	assert.Equal(t, 10, cols)
	assert.Equal(t, 3, rows)

	cols, rows = cellsFor(0, 10, 10, 20)
	assert.Zero(t, cols)
	assert.Zero(t, rows)
}

func TestDisplay_Disabled(t *testing.T) {
	d := New(nil, nil)
	d.SetSize(80, 24)

	assert.False(t, d.Enabled())
	assert.Equal(t, NameNone, d.ProtocolName())

	cmd, err := d.Show(testKey, card(10, 10))
	require.NoError(t, err)
	assert.Empty(t, cmd)
	assert.Empty(t, d.Placement(1, 1))
	assert.Empty(t, d.Clear())
}

func TestDisplay_ShowAndPlace(t *testing.T) {
	proto := &fakeProtocol{}
	d := New(proto, nil)
	assert.True(t, d.SetSize(40, 10))
	assert.False(t, d.SetSize(40, 10), "same size is not a change")

	// pane is 400x200 px; a 1024x684 card fits as 299x200
	cmd, err := d.Show(testKey, card(1024, 684))
	require.NoError(t, err)
	assert.Equal(t, "<tx>", cmd, "first image has nothing to delete")

	cols, rows := d.ImageCells()
	assert.Equal(t, 30, cols)
	assert.Equal(t, 10, rows)

	place := d.Placement(2, 3)
	assert.Contains(t, place, "\x1b[2;3H")
	assert.Contains(t, place, "c=30,r=10")

	key, ok := d.Current()
	assert.True(t, ok)
	assert.Equal(t, testKey, key)

	next := testKey
	next.Card++
	cmd, err = d.Show(next, card(1024, 684))
	require.NoError(t, err)
	assert.Equal(t, "<del><tx>", cmd, "previous image is deleted first")
	require.Len(t, proto.prepared, 2)
	assert.Equal(t, []uint32{proto.prepared[0]}, proto.deleted)

	assert.Equal(t, "<del>", d.Clear())
	assert.Empty(t, d.Placement(1, 1))
	_, ok = d.Current()
	assert.False(t, ok)
}

func TestDisplay_ShowZeroSize(t *testing.T) {
	d := New(&fakeProtocol{}, nil)

	cmd, err := d.Show(testKey, card(10, 10))
	require.NoError(t, err)
	assert.Empty(t, cmd)
	assert.Empty(t, d.Placement(1, 1))
}

func TestDisplay_UsesCache(t *testing.T) {
	cache := newTestCache(t)
	d := New(&fakeProtocol{}, cache)
	d.SetSize(40, 10)

	_, err := d.Show(testKey, card(100, 50))
	require.NoError(t, err)

	pxW, pxH := d.TargetPixelSize()
	assert.Equal(t, 400, pxW)
	assert.Equal(t, 200, pxH)
	data := cache.Get(testKey, pxW, pxH)
	require.NotNil(t, data, "fitted frame is cached")

	// A cache hit must not need the source image.
	_, err = d.Show(testKey, card(1, 1))
	require.NoError(t, err)
	cols, rows := d.ImageCells()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 3, rows)
}

func TestDisplay_Placeholder(t *testing.T) {
	d := New(&fakeProtocol{}, nil)
	d.SetSize(5, 2)
	assert.Equal(t, "     \n     ", d.Placeholder())
}

func TestSixelProtocol(t *testing.T) {
	s := &SixelProtocol{images: make(map[uint32]string)}
	assert.Equal(t, NameSixel, s.Name())
	assert.Empty(t, s.Place(1, 1, 1, 1, 1), "unknown image places nothing")

	cmd, err := s.Prepare(card(12, 12), 1)
	require.NoError(t, err)
	assert.Empty(t, cmd, "sixel has no transmit step")
	assert.True(t, s.has(1))

	a := s.Place(1, 4, 5, 0, 0)
	b := s.Place(1, 4, 5, 0, 0)
	assert.True(t, strings.HasPrefix(a, "\x1b[s\x1b[4;5H"))
	assert.Contains(t, a, "\x1bP", "contains sixel data")
	assert.NotEqual(t, a, b, "each placement is unique")

	assert.Empty(t, s.Delete(1))
	assert.False(t, s.has(1))
}

func TestDetect_Override(t *testing.T) {
	t.Setenv("TERM", "dumb")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("GHOSTTY_RESOURCES_DIR", "")
	t.Setenv("KONSOLE_VERSION", "")
	t.Setenv("CONTOUR_PROFILE", "")

	assert.Nil(t, Detect(NameNone))
	assert.Nil(t, Detect(NameAuto), "dumb terminal has no image protocol")
	assert.Equal(t, NameKitty, Detect(NameKitty).Name())
	assert.Equal(t, NameSixel, Detect("SIXEL").Name())
}

func TestIsKittySupported_EnvVariables(t *testing.T) {
	clear := func(t *testing.T) {
		t.Helper()
		for _, k := range []string{"TERM", "TERM_PROGRAM", "KITTY_WINDOW_ID", "GHOSTTY_RESOURCES_DIR", "KONSOLE_VERSION", "CONTOUR_PROFILE"} {
			t.Setenv(k, "")
		}
	}

	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"kitty window", map[string]string{"KITTY_WINDOW_ID": "1"}, true},
		{"xterm-kitty", map[string]string{"TERM": "xterm-kitty"}, true},
		{"wezterm", map[string]string{"TERM_PROGRAM": "WezTerm"}, true},
		{"ghostty", map[string]string{"GHOSTTY_RESOURCES_DIR": "/usr/share/ghostty"}, true},
		{"new konsole", map[string]string{"KONSOLE_VERSION": "230801"}, true},
		{"old konsole", map[string]string{"KONSOLE_VERSION": "210401"}, false},
		{"contour wins over leaked vars", map[string]string{"CONTOUR_PROFILE": "main", "KITTY_WINDOW_ID": "1"}, false},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clear(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, IsKittySupported())
		})
	}
}

func TestIsSixelSupported(t *testing.T) {
	tests := []struct {
		term, program string
		want          bool
	}{
		{"foot", "", true},
		{"xterm-256color", "", true},
		{"mlterm", "", true},
		{"dumb", "vscode", true},
		{"dumb", "", false},
		{"linux", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.term+"/"+tt.program, func(t *testing.T) {
			t.Setenv("TERM", tt.term)
			t.Setenv("TERM_PROGRAM", tt.program)
			t.Setenv("CONTOUR_PROFILE", "")
			assert.Equal(t, tt.want, IsSixelSupported())
		})
	}
}
