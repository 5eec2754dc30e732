package navigator

import (
	"errors"
	"sync"
	"testing"
)

func newAt(t *testing.T, count, index int) *Navigator {
	t.Helper()
	n := New(count)
	if err := n.JumpTo(index); err != nil {
		t.Fatalf("JumpTo(%d) failed: %v", index, err)
	}
	return n
}

func TestNew(t *testing.T) {
	n := New(5)
	s := n.Snapshot()
	if s.Index != 0 || s.BackgroundOnly || s.CardCount != 5 {
		t.Errorf("Snapshot() = %+v, want index 0, full card, 5 cards", s)
	}
}

func TestMoveToNext_Sequence(t *testing.T) {
	n := newAt(t, 5, 2)

	want := []int{3, 4, 0}
	for i, w := range want {
		if err := n.MoveToNext(); err != nil {
			t.Fatalf("MoveToNext() error: %v", err)
		}
		if got := n.Index(); got != w {
			t.Errorf("step %d: index = %d, want %d", i+1, got, w)
		}
	}
}

func TestWraparound(t *testing.T) {
	for count := 1; count <= 6; count++ {
		n := newAt(t, count, count-1)
		if err := n.MoveToNext(); err != nil {
			t.Fatal(err)
		}
		if n.Index() != 0 {
			t.Errorf("count %d: next from last = %d, want 0", count, n.Index())
		}

		if err := n.MoveToPrevious(); err != nil {
			t.Fatal(err)
		}
		if n.Index() != count-1 {
			t.Errorf("count %d: previous from first = %d, want %d", count, n.Index(), count-1)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for count := 1; count <= 7; count++ {
		for i := range count {
			n := newAt(t, count, i)
			_ = n.MoveToNext()
			_ = n.MoveToPrevious()
			if n.Index() != i {
				t.Errorf("count %d: next+previous from %d = %d", count, i, n.Index())
			}

			_ = n.MoveToPrevious()
			_ = n.MoveToNext()
			if n.Index() != i {
				t.Errorf("count %d: previous+next from %d = %d", count, i, n.Index())
			}
		}
	}
}

func TestMoveToFirstAndLast(t *testing.T) {
	n := newAt(t, 4, 2)

	for range 2 {
		if err := n.MoveToFirst(); err != nil {
			t.Fatal(err)
		}
		if n.Index() != 0 {
			t.Errorf("MoveToFirst() index = %d, want 0", n.Index())
		}
	}

	for range 2 {
		if err := n.MoveToLast(); err != nil {
			t.Fatal(err)
		}
		if n.Index() != 3 {
			t.Errorf("MoveToLast() index = %d, want 3", n.Index())
		}
	}
}

func TestSingleCard(t *testing.T) {
	n := New(1)
	_ = n.MoveToNext()
	if n.Index() != 0 {
		t.Errorf("next on single card = %d, want 0", n.Index())
	}
	_ = n.MoveToPrevious()
	if n.Index() != 0 {
		t.Errorf("previous on single card = %d, want 0", n.Index())
	}
}

func TestEmptyStack(t *testing.T) {
	moves := map[string]func(*Navigator) error{
		"first":    (*Navigator).MoveToFirst,
		"last":     (*Navigator).MoveToLast,
		"next":     (*Navigator).MoveToNext,
		"previous": (*Navigator).MoveToPrevious,
		"jump":     func(n *Navigator) error { return n.JumpTo(0) },
	}
	for name, move := range moves {
		t.Run(name, func(t *testing.T) {
			n := New(0)
			err := move(n)
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("err = %v, want ErrInvalidState", err)
			}
			if n.Index() != 0 {
				t.Errorf("failed move changed index to %d", n.Index())
			}
		})
	}
}

func TestJumpTo_OutOfRange(t *testing.T) {
	n := newAt(t, 3, 1)
	for _, idx := range []int{-1, 3, 100} {
		if err := n.JumpTo(idx); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("JumpTo(%d) err = %v, want ErrOutOfRange", idx, err)
		}
	}
	if n.Index() != 1 {
		t.Errorf("index changed to %d after rejected jumps", n.Index())
	}
}

func TestToggleBackgroundOnly(t *testing.T) {
	n := New(2)
	if !n.ToggleBackgroundOnly() {
		t.Error("first toggle should enable background-only")
	}
	if n.ToggleBackgroundOnly() {
		t.Error("second toggle should disable background-only")
	}
	if n.BackgroundOnly() {
		t.Error("double toggle should restore the original mode")
	}

	n.SetBackgroundOnly(true)
	if !n.Snapshot().BackgroundOnly {
		t.Error("SetBackgroundOnly(true) not reflected in snapshot")
	}
}

func TestToggleBackgroundOnly_KeepsIndex(t *testing.T) {
	n := newAt(t, 5, 3)
	n.ToggleBackgroundOnly()
	if n.Index() != 3 {
		t.Errorf("toggle changed index to %d", n.Index())
	}
}

func TestConcurrentMoves(t *testing.T) {
	n := New(7)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = n.MoveToNext()
				s := n.Snapshot()
				if s.Index < 0 || s.Index >= s.CardCount {
					t.Errorf("snapshot index %d out of range", s.Index)
					return
				}
			}
		}()
	}
	wg.Wait()

	// 800 moves over 7 cards
	if n.Index() != 800%7 {
		t.Errorf("index = %d, want %d", n.Index(), 800%7)
	}
}
