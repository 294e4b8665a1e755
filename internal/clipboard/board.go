package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// Board errors.
var (
	// ErrEmpty is returned when reading a board that holds nothing.
	ErrEmpty = errors.New("clipboard: board is empty")

	// ErrUnsupported is returned when no system clipboard is available.
	ErrUnsupported = errors.New("clipboard: system clipboard unsupported")
)

// Board stores one payload.
type Board interface {
	Write(p Payload) error
	Read() (Payload, error)
}

// MemoryBoard is an in-process board holding every format.
type MemoryBoard struct {
	mu      sync.RWMutex
	payload Payload
}

// NewMemoryBoard creates an empty memory board.
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{}
}

// Write implements Board.
func (b *MemoryBoard) Write(p Payload) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payload = p.Clone()
	return nil
}

// Read implements Board.
func (b *MemoryBoard) Read() (Payload, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.payload == nil {
		return nil, ErrEmpty
	}
	return b.payload.Clone(), nil
}

// SystemBoard reads and writes the plain-text entry of the OS clipboard.
// Other formats are dropped on write.
type SystemBoard struct{}

// Write implements Board.
func (SystemBoard) Write(p Payload) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	text, _ := p.Get(MIMEPlain)
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write system clipboard: %w", err)
	}
	return nil
}

// Read implements Board.
func (SystemBoard) Read() (Payload, error) {
	if clipboard.Unsupported {
		return nil, ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read system clipboard: %w", err)
	}
	return Payload{MIMEPlain: text}, nil
}

// MirrorBoard keeps the full payload in memory and mirrors its plain text to
// a system board. Reads prefer memory unless the system board's text has
// changed since the last write, meaning another program copied something.
type MirrorBoard struct {
	mem    *MemoryBoard
	system Board
	log    zerolog.Logger
}

// NewMirrorBoard creates a mirror over system. A nil system board behaves
// like a MemoryBoard.
func NewMirrorBoard(system Board, log zerolog.Logger) *MirrorBoard {
	return &MirrorBoard{mem: NewMemoryBoard(), system: system, log: log}
}

// Write implements Board. System clipboard failures are logged, not
// returned.
func (b *MirrorBoard) Write(p Payload) error {
	if err := b.mem.Write(p); err != nil {
		return err
	}
	if b.system != nil {
		if err := b.system.Write(p); err != nil {
			b.log.Warn().Err(err).Msg("mirror to system clipboard failed")
		}
	}
	return nil
}

// Read implements Board.
func (b *MirrorBoard) Read() (Payload, error) {
	mem, memErr := b.mem.Read()
	if b.system == nil {
		return mem, memErr
	}

	sys, err := b.system.Read()
	if err != nil {
		b.log.Debug().Err(err).Msg("read system clipboard")
		return mem, memErr
	}
	if memErr != nil {
		return sys, nil
	}
	if text, _ := sys.Get(MIMEPlain); text != mem[MIMEPlain] {
		return sys, nil
	}
	return mem, nil
}
