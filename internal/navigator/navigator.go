// Package navigator tracks the current card of a stack and the display mode.
package navigator

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrInvalidState is returned by every move when the stack has no cards.
	ErrInvalidState = errors.New("navigator: stack has no cards")
	// ErrOutOfRange is returned by JumpTo for an index outside the stack.
	ErrOutOfRange = errors.New("navigator: card index out of range")
)

// State is a consistent snapshot of the navigator.
type State struct {
	Index          int
	BackgroundOnly bool
	CardCount      int
}

// Navigator is a wrapping cursor over a fixed-length card sequence.
// Moves are serialized; readers should take one Snapshot per render.
type Navigator struct {
	mu             sync.RWMutex
	index          int
	cardCount      int
	backgroundOnly bool
}

// New creates a navigator positioned on the first card.
func New(cardCount int) *Navigator {
	return &Navigator{cardCount: max(cardCount, 0)}
}

// Snapshot returns the current position, mode and card count.
func (n *Navigator) Snapshot() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return State{
		Index:          n.index,
		BackgroundOnly: n.backgroundOnly,
		CardCount:      n.cardCount,
	}
}

// Index returns the current card index.
func (n *Navigator) Index() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.index
}

// CardCount returns the number of cards navigated over.
func (n *Navigator) CardCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cardCount
}

// BackgroundOnly reports whether only the background layer is displayed.
func (n *Navigator) BackgroundOnly() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.backgroundOnly
}

// move applies step to the index under the write lock.
// The empty-stack guard runs before step so it never divides by zero.
func (n *Navigator) move(step func(index, count int) int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cardCount == 0 {
		return ErrInvalidState
	}
	n.index = step(n.index, n.cardCount)
	return nil
}

// MoveToFirst goes to the first card.
func (n *Navigator) MoveToFirst() error {
	return n.move(func(_, _ int) int { return 0 })
}

// MoveToLast goes to the last card.
func (n *Navigator) MoveToLast() error {
	return n.move(func(_, count int) int { return count - 1 })
}

// MoveToNext goes to the next card, wrapping to the first after the last.
func (n *Navigator) MoveToNext() error {
	return n.move(func(index, count int) int { return (index + 1) % count })
}

// MoveToPrevious goes to the previous card, wrapping to the last before the first.
func (n *Navigator) MoveToPrevious() error {
	return n.move(func(index, count int) int { return (index - 1 + count) % count })
}

// JumpTo goes to the card at index.
func (n *Navigator) JumpTo(index int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cardCount == 0 {
		return ErrInvalidState
	}
	if index < 0 || index >= n.cardCount {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, n.cardCount)
	}
	n.index = index
	return nil
}

// ToggleBackgroundOnly flips the display mode and returns the new value.
func (n *Navigator) ToggleBackgroundOnly() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backgroundOnly = !n.backgroundOnly
	return n.backgroundOnly
}

// SetBackgroundOnly sets the display mode.
func (n *Navigator) SetBackgroundOnly(on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backgroundOnly = on
}
