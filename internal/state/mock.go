package state

// Mock is a test double for Manager. Saves are applied immediately.
type Mock struct {
	positions map[string]Position
	lastStack string
	saves     int
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{positions: make(map[string]Position)}
}

func (m *Mock) GetPosition(stackPath string) (*Position, error) {
	p, ok := m.positions[stackPath]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &p, nil
}

func (m *Mock) SavePosition(pos Position) {
	m.positions[pos.StackPath] = pos
	m.saves++
}

func (m *Mock) LastStack() (string, error) {
	return m.lastStack, nil
}

func (m *Mock) SetLastStack(path string) error {
	m.lastStack = path
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SaveCount() int { return m.saves }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
