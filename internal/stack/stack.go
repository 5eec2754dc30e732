// Package stack loads card stacks from directories.
//
// A stack directory contains a stack.toml manifest and the bitmaps of its
// backgrounds and cards. Any format the bitmap package decodes can be used
// for layer images.
package stack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/llehouerou/cardview/internal/bitmap"
)

var (
	// ErrIndexOutOfRange is returned for card indices outside the stack.
	ErrIndexOutOfRange = errors.New("card index out of range")
	// ErrUnknownBackground is returned when a card references a missing background.
	ErrUnknownBackground = errors.New("unknown background")
)

// Document is what the viewer needs from a loaded stack.
type Document interface {
	// CardCount returns the number of cards. It never changes once loaded.
	CardCount() int
	// Size returns the card size in pixels, shared by every card.
	Size() (width, height int)
	// CardImage returns the bitmap displayed for a card: its background,
	// with the card layer drawn over it unless backgroundOnly is set.
	CardImage(index int, backgroundOnly bool) (*bitmap.Image, error)
}

// Background is a layer shared by several cards.
type Background struct {
	ID    int
	Name  string
	Image string
	Parts []Part
}

// Card is one page of the stack.
type Card struct {
	ID           int
	Name         string
	BackgroundID int
	Image        string
	Parts        []Part
	// Contents holds the card's text for parts of its background.
	Contents []BackgroundPartContent
}

// Stack is a Document read from a stack directory.
type Stack struct {
	dir         string
	name        string
	width       int
	height      int
	modTime     time.Time
	backgrounds []Background
	cards       []Card

	mu     sync.Mutex
	layers map[string]*bitmap.Image // decoded layer bitmaps by relative path
}

var _ Document = (*Stack)(nil)

// Open reads the manifest in dir. Layer bitmaps are decoded on first use.
func Open(dir string) (*Stack, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(abs, ManifestName)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	m, err := loadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s := &Stack{
		dir:     abs,
		name:    m.Name,
		width:   m.Width,
		height:  m.Height,
		modTime: info.ModTime(),
		layers:  make(map[string]*bitmap.Image),
	}
	if s.name == "" {
		s.name = filepath.Base(abs)
	}

	for _, bs := range m.Backgrounds {
		parts, err := toParts(bs.Parts)
		if err != nil {
			return nil, fmt.Errorf("%s: background %d: %w", path, bs.ID, err)
		}
		s.backgrounds = append(s.backgrounds, Background{
			ID:    bs.ID,
			Name:  bs.Name,
			Image: bs.Image,
			Parts: parts,
		})
	}

	for _, cs := range m.Cards {
		if _, ok := s.Background(cs.Background); !ok {
			return nil, fmt.Errorf("%s: card %d: %w %d", path, cs.ID, ErrUnknownBackground, cs.Background)
		}
		parts, err := toParts(cs.Parts)
		if err != nil {
			return nil, fmt.Errorf("%s: card %d: %w", path, cs.ID, err)
		}
		// Contents is never nil: background parts are always seen
		// through the card, even one that stores no text for them.
		card := Card{
			ID:           cs.ID,
			Name:         cs.Name,
			BackgroundID: cs.Background,
			Image:        cs.Image,
			Parts:        parts,
			Contents:     make([]BackgroundPartContent, 0, len(cs.Contents)),
		}
		for _, c := range cs.Contents {
			card.Contents = append(card.Contents, BackgroundPartContent{PartID: c.Part, Text: c.Text})
		}
		s.cards = append(s.cards, card)
	}

	s.modTime = newestModTime(abs, info.ModTime(), s.layerNames())
	return s, nil
}

// layerNames returns every layer image the manifest references.
func (s *Stack) layerNames() []string {
	var names []string
	for _, b := range s.backgrounds {
		if b.Image != "" {
			names = append(names, b.Image)
		}
	}
	for _, c := range s.cards {
		if c.Image != "" {
			names = append(names, c.Image)
		}
	}
	return names
}

// newestModTime returns the latest of since and the modification times of
// the named files under dir. Missing files are skipped; they fail later,
// when the card using them is drawn.
func newestModTime(dir string, since time.Time, names []string) time.Time {
	newest := since
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			continue
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest
}

// Path returns the absolute stack directory.
func (s *Stack) Path() string { return s.dir }

// Name returns the stack name, defaulting to the directory name.
func (s *Stack) Name() string { return s.name }

// ModTime returns the newest modification time, at load, of the manifest
// and every layer image it references.
func (s *Stack) ModTime() time.Time { return s.modTime }

// CardCount implements Document.
func (s *Stack) CardCount() int { return len(s.cards) }

// Size implements Document.
func (s *Stack) Size() (width, height int) { return s.width, s.height }

// Backgrounds returns every background in manifest order.
func (s *Stack) Backgrounds() []Background { return s.backgrounds }

// Card returns the card at index.
func (s *Stack) Card(index int) (Card, error) {
	if index < 0 || index >= len(s.cards) {
		return Card{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.cards[index], nil
}

// Background returns the background with the given ID.
func (s *Stack) Background(id int) (Background, bool) {
	for _, b := range s.backgrounds {
		if b.ID == id {
			return b, true
		}
	}
	return Background{}, false
}

// BackgroundOf returns the background of the card at index.
func (s *Stack) BackgroundOf(index int) (Background, error) {
	card, err := s.Card(index)
	if err != nil {
		return Background{}, err
	}
	bg, ok := s.Background(card.BackgroundID)
	if !ok {
		return Background{}, fmt.Errorf("%w %d", ErrUnknownBackground, card.BackgroundID)
	}
	return bg, nil
}

// CardImage implements Document.
func (s *Stack) CardImage(index int, backgroundOnly bool) (*bitmap.Image, error) {
	card, err := s.Card(index)
	if err != nil {
		return nil, err
	}
	bg, err := s.BackgroundOf(index)
	if err != nil {
		return nil, err
	}

	bgImg, err := s.layer(bg.Image)
	if err != nil {
		return nil, fmt.Errorf("background %d: %w", bg.ID, err)
	}
	if backgroundOnly || card.Image == "" {
		return bgImg.Clone(), nil
	}

	cardImg, err := s.layer(card.Image)
	if err != nil {
		return nil, fmt.Errorf("card %d: %w", card.ID, err)
	}
	return bgImg.Or(cardImg)
}

// layer returns the decoded bitmap for a layer image, caching it.
// An empty name is a blank layer of the stack size. Cached images are
// never modified; callers receive clones or composed copies.
func (s *Stack) layer(name string) (*bitmap.Image, error) {
	if name == "" {
		return bitmap.New(s.width, s.height), nil
	}

	s.mu.Lock()
	img, ok := s.layers[name]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(name)))
	if err != nil {
		return nil, err
	}

	img, err = bitmap.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	s.mu.Lock()
	s.layers[name] = img
	s.mu.Unlock()
	return img, nil
}
