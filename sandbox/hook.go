package sandbox

// WarmedUpHandler is implemented by user-defined models that want to reset
// their own transient state at the instant their Sandbox warms up, while
// keeping any level state (e.g. "how many customers are in the system right
// now") intact. This is the Go expression of spec.md's "subclasses override
// a warmedUpHandler hook" — Go has no subclassing, so the hook is a stored
// callback registered through SetWarmedUpHandler instead of an overridden
// method.
type WarmedUpHandler interface {
	WarmedUp()
}

// warmupMulticast is the ordered, tagged-list abstraction spec.md §9
// recommends in place of the teacher source's imperative callback
// composition: AddChild and AddHourCounter each append one more entry, and
// firing it walks the list in insertion order. Because a child's own
// warmupMulticast is itself one of the callbacks appended to its parent's,
// firing the root's list cascades through the whole subtree.
type warmupMulticast struct {
	callbacks []func()
}

func (m *warmupMulticast) append(cb func()) {
	m.callbacks = append(m.callbacks, cb)
}

func (m *warmupMulticast) fire() {
	for _, cb := range m.callbacks {
		cb()
	}
}
