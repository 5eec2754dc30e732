package display

import (
	"os"
	"strings"
)

// Protocol names accepted by Detect.
const (
	NameAuto  = "auto"
	NameKitty = "kitty"
	NameSixel = "sixel"
	NameNone  = "none"
)

// Detect returns the image protocol to use, or nil when images are disabled
// or unsupported. name forces a protocol; "auto" or "" checks the terminal.
func Detect(name string) Protocol {
	switch strings.ToLower(name) {
	case NameKitty:
		return NewKittyProtocol()
	case NameSixel:
		return NewSixelProtocol()
	case NameNone:
		return nil
	}

	if IsKittySupported() {
		return NewKittyProtocol()
	}
	if IsSixelSupported() {
		return NewSixelProtocol()
	}
	return nil
}

// IsKittySupported checks if the terminal supports Kitty graphics protocol.
func IsKittySupported() bool {
	// Contour sets CONTOUR_PROFILE but has no Kitty graphics; parent terminal
	// variables can leak into it.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM") == "xterm-kitty" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	// KONSOLE_VERSION is like "220401"; Kitty graphics since 22.04
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks if the terminal supports Sixel graphics.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")

	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return true
	}

	switch {
	case term == "foot" || term == "foot-extra":
		return true
	case term == "mlterm" || strings.HasPrefix(term, "yaft"):
		return true
	case term == "xterm" || strings.HasPrefix(term, "xterm-"):
		// Only a hint: xterm needs --enable-sixel-graphics.
		return true
	}
	return false
}
