package scan

// Machine tracks whether the scanner is inside a record whose author id is
// known but whose place has not appeared yet. Its two states are Idle and
// AwaitingLocation(author).
type Machine struct {
	author  string
	pending bool
}

// Pending returns the author awaiting a location, if any.
func (m *Machine) Pending() (string, bool) {
	return m.author, m.pending
}

// Step feeds one classified line to the machine. It returns the author a
// place line belongs to when that line completes a record.
//
//	Idle                + author a -> AwaitingLocation(a)
//	AwaitingLocation(a) + author b -> AwaitingLocation(b), a is dropped
//	AwaitingLocation(a) + place    -> Idle, emit a
//	Idle                + place    -> Idle
func (m *Machine) Step(kind Kind, value []byte) (author string, emit bool) {
	switch kind {
	case KindAuthor:
		m.author = string(value)
		m.pending = true
	case KindPlace:
		if m.pending {
			author = m.author
			m.Reset()
			return author, true
		}
	}
	return "", false
}

// Reset returns the machine to Idle.
func (m *Machine) Reset() {
	m.author = ""
	m.pending = false
}
