// Package inputmode tracks whether input belongs to gameplay or to a UI
// surface, and answers whether the camera may rotate.
package inputmode

type Mode int

const (
	Gameplay Mode = iota
	UI
)

func (m Mode) String() string {
	switch m {
	case Gameplay:
		return "gameplay"
	case UI:
		return "ui"
	default:
		return "unknown"
	}
}

// Manager is owned by the game loop and is not safe for concurrent use.
type Manager struct {
	owners       []string
	cameraLocked bool
	mode         Mode
	listeners    []func(Mode)
}

func NewManager() *Manager {
	return &Manager{mode: Gameplay}
}

// PushFocus gives UI focus to owner. Pushing an owner twice is a no-op.
func (m *Manager) PushFocus(owner string) {
	if m == nil {
		return
	}
	for _, o := range m.owners {
		if o == owner {
			return
		}
	}
	m.owners = append(m.owners, owner)
	m.refresh()
}

// PopFocus releases owner's focus wherever it sits in the stack.
func (m *Manager) PopFocus(owner string) bool {
	if m == nil {
		return false
	}
	for i, o := range m.owners {
		if o != owner {
			continue
		}
		m.owners = append(m.owners[:i], m.owners[i+1:]...)
		m.refresh()
		return true
	}
	return false
}

// ToggleFocus pushes owner if absent and pops it otherwise. It reports
// whether owner holds focus afterwards.
func (m *Manager) ToggleFocus(owner string) bool {
	if m.HasFocus(owner) {
		m.PopFocus(owner)
		return false
	}
	m.PushFocus(owner)
	return true
}

func (m *Manager) HasFocus(owner string) bool {
	if m == nil {
		return false
	}
	for _, o := range m.owners {
		if o == owner {
			return true
		}
	}
	return false
}

func (m *Manager) Owners() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.owners...)
}

func (m *Manager) Mode() Mode {
	if m == nil {
		return Gameplay
	}
	return m.mode
}

// SetCameraLocked freezes the camera without taking UI focus.
func (m *Manager) SetCameraLocked(locked bool) {
	if m == nil {
		return
	}
	m.cameraLocked = locked
}

func (m *Manager) CameraLocked() bool {
	return m != nil && m.cameraLocked
}

func (m *Manager) IsCameraInputEnabled() bool {
	if m == nil {
		return true
	}
	return m.mode == Gameplay && !m.cameraLocked
}

// OnChange registers fn to run on every mode transition.
func (m *Manager) OnChange(fn func(Mode)) {
	if m == nil || fn == nil {
		return
	}
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) refresh() {
	next := Gameplay
	if len(m.owners) > 0 {
		next = UI
	}
	if next == m.mode {
		return
	}
	m.mode = next
	for _, fn := range m.listeners {
		fn(next)
	}
}
