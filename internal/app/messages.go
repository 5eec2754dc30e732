package app

import (
	"time"

	"github.com/llehouerou/cardview/internal/viewer"
)

// RenderedMsg carries the result of an asynchronous render.
type RenderedMsg struct {
	Gen   int
	Frame viewer.Frame
	Took  time.Duration
	Err   error
}

// transmitFlushedMsg is sent once a queued image transmission has had
// time to reach the terminal.
type transmitFlushedMsg struct {
	Seq int
}
