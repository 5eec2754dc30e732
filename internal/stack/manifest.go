package stack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ManifestName is the file describing a stack inside its directory.
const ManifestName = "stack.toml"

// ErrInvalidManifest is returned when stack.toml is malformed or inconsistent.
var ErrInvalidManifest = errors.New("invalid stack manifest")

type manifest struct {
	Name        string      `koanf:"name"`
	Width       int         `koanf:"width"`
	Height      int         `koanf:"height"`
	Backgrounds []layerSpec `koanf:"backgrounds"`
	Cards       []cardSpec  `koanf:"cards"`
}

type layerSpec struct {
	ID    int        `koanf:"id"`
	Name  string     `koanf:"name"`
	Image string     `koanf:"image"` // relative to the stack directory, empty for a blank layer
	Parts []partSpec `koanf:"parts"`
}

type cardSpec struct {
	ID         int           `koanf:"id"`
	Name       string        `koanf:"name"`
	Image      string        `koanf:"image"`
	Background int           `koanf:"background"`
	Parts      []partSpec    `koanf:"parts"`
	Contents   []contentSpec `koanf:"contents"`
}

type partSpec struct {
	Kind    string `koanf:"kind"` // "field" or "button"
	ID      int    `koanf:"id"`
	Name    string `koanf:"name"`
	Rect    []int  `koanf:"rect"` // left, top, right, bottom
	Text    string `koanf:"text"`
	Content string `koanf:"content"`
}

type contentSpec struct {
	Part int    `koanf:"part"`
	Text string `koanf:"text"`
}

func loadManifest(path string) (*manifest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	var m manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if m.Width < 0 || m.Height < 0 {
		return nil, fmt.Errorf("%w: negative stack size %dx%d", ErrInvalidManifest, m.Width, m.Height)
	}
	return &m, nil
}

func (p partSpec) toPart() (Part, error) {
	info := PartInfo{ID: p.ID, Name: p.Name}
	switch len(p.Rect) {
	case 0:
	case 4:
		info.Rect = Rect{Left: p.Rect[0], Top: p.Rect[1], Right: p.Rect[2], Bottom: p.Rect[3]}
	default:
		return nil, fmt.Errorf("%w: part %d: rect needs 4 values, got %d", ErrInvalidManifest, p.ID, len(p.Rect))
	}

	switch strings.ToLower(p.Kind) {
	case "field":
		return &Field{PartInfo: info, Text: p.Text}, nil
	case "button":
		return &Button{PartInfo: info, Content: p.Content}, nil
	default:
		return nil, fmt.Errorf("%w: part %d: unknown kind %q", ErrInvalidManifest, p.ID, p.Kind)
	}
}

func toParts(specs []partSpec) ([]Part, error) {
	parts := make([]Part, 0, len(specs))
	for _, ps := range specs {
		p, err := ps.toPart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}
