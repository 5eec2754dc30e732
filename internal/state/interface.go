package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetPosition(stackPath string) (*Position, error)
	SavePosition(pos Position)
	LastStack() (string, error)
	SetLastStack(path string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
