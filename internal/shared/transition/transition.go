package transition

import "errors"

var (
	// ErrInvalidTarget reports a requested status that is not part of the enum at all.
	ErrInvalidTarget = errors.New("invalid target status")
	// ErrTerminalState reports a mutation attempt on an entity whose status admits no successor.
	ErrTerminalState = errors.New("status is terminal")
	// ErrIllegalTransition reports a recognized target that the table does not allow from the current status.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Table is the single source of truth for the allowed status moves of one entity type.
// Both the admin set-status path and any customer-facing shortcut must consult the
// same table so the rules cannot diverge.
type Table[S ~string] struct {
	next     map[S][]S
	valid    map[S]struct{}
	terminal map[S]struct{}
}

// NewTable builds a Table from the allowed-next mapping plus the terminal statuses.
// Terminal statuses are valid enum members but have an empty successor set.
func NewTable[S ~string](next map[S][]S, terminal ...S) Table[S] {
	t := Table[S]{
		next:     next,
		valid:    make(map[S]struct{}),
		terminal: make(map[S]struct{}, len(terminal)),
	}
	for current, successors := range next {
		t.valid[current] = struct{}{}
		for _, s := range successors {
			t.valid[s] = struct{}{}
		}
	}
	for _, s := range terminal {
		t.valid[s] = struct{}{}
		t.terminal[s] = struct{}{}
	}
	return t
}

// Valid reports whether s is a recognized enum literal.
func (t Table[S]) Valid(s S) bool {
	_, ok := t.valid[s]
	return ok
}

// Terminal reports whether s admits no further transition.
func (t Table[S]) Terminal(s S) bool {
	_, ok := t.terminal[s]
	return ok
}

// AllowedNext returns the successor set for the given status. Terminal and
// unknown statuses yield an empty slice.
func (t Table[S]) AllowedNext(current S) []S {
	return t.next[current]
}

// Apply validates the requested move and returns the new status. The caller is
// responsible for persisting the result; Apply itself has no side effects.
func (t Table[S]) Apply(current, target S) (S, error) {
	if !t.Valid(target) {
		return "", ErrInvalidTarget
	}
	if t.Terminal(current) {
		return "", ErrTerminalState
	}
	for _, allowed := range t.next[current] {
		if allowed == target {
			return target, nil
		}
	}
	return "", ErrIllegalTransition
}
