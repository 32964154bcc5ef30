package interaction

// State is the observable page state.
type State struct {
	DeclineCount   int
	ImageIndex     int
	AcceptButton   Size
	DeclineLabel   string
	Heading        string
	ImageAlt       string
	ButtonsVisible bool
	Accepted       bool
	// ConfettiFired records that Accept requested the confetti effect.
	ConfettiFired bool
}

// Machine applies page events to a State.
type Machine struct {
	table Table
	state State
}

// NewMachine returns a machine in the initial state.
func NewMachine(t Table) *Machine {
	return &Machine{
		table: t,
		state: State{
			ImageIndex:     0,
			AcceptButton:   t.BaseSize,
			DeclineLabel:   t.label(0),
			Heading:        t.Question,
			ImageAlt:       t.ImageAlt,
			ButtonsVisible: true,
		},
	}
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state
}

// Decline handles a decline click. It reports whether the state changed.
func (m *Machine) Decline() bool {
	if m.state.Accepted || m.state.DeclineCount >= m.table.MaxDeclines {
		return false
	}

	m.state.DeclineCount++
	step := m.table.Steps()[m.state.DeclineCount]
	m.state.ImageIndex = step.Image
	m.state.AcceptButton = m.state.AcceptButton.Add(m.table.Growth)
	if step.Label != "" {
		m.state.DeclineLabel = step.Label
	}
	return true
}

// Accept handles an accept click. It is one-shot: later calls report false.
func (m *Machine) Accept() bool {
	if m.state.Accepted {
		return false
	}

	m.state.ImageIndex = m.table.AcceptImage
	m.state.Heading = m.table.Celebration
	m.state.ButtonsVisible = false
	m.state.Accepted = true
	m.state.ConfettiFired = true
	return true
}

// ImageError handles a failed image load by showing the fallback image.
func (m *Machine) ImageError() {
	m.state.ImageIndex = m.table.FallbackImage
	m.state.ImageAlt = m.table.FallbackAlt
}
