package sandbox

// Action is a zero-argument callable invoked when the Event it is attached
// to fires.
type Action func()

// Event is an immutable descriptor of something scheduled to happen in the
// future on a particular Sandbox's future event list. Events are created by
// Schedule and removed from the future event list when the run loop pops
// them; each one is invoked at most once.
type Event struct {
	owner     *Sandbox
	index     int64
	timestamp SimTime
	action    Action
	tag       string

	// heapIndex is bookkeeping for futureEventList's backing heap. It is not
	// part of the Event's public, immutable identity.
	heapIndex int
}

func newEvent(owner *Sandbox, index int64, timestamp SimTime, action Action, tag string) *Event {
	return &Event{
		owner:     owner,
		index:     index,
		timestamp: timestamp,
		action:    action,
		tag:       tag,
		heapIndex: -1,
	}
}

// Owner returns the Sandbox whose future event list this Event belongs to.
func (e *Event) Owner() *Sandbox {
	return e.owner
}

// Index returns the process-of-scheduling-order index used to break ties
// between events with identical timestamps.
func (e *Event) Index() int64 {
	return e.index
}

// Time returns the logical timestamp at which the event is scheduled to
// fire.
func (e *Event) Time() SimTime {
	return e.timestamp
}

// Tag returns the optional label attached at scheduling time.
func (e *Event) Tag() string {
	return e.tag
}

// Less reports whether e is ordered strictly before other: primary key
// timestamp, secondary key index, giving strict FIFO order among events
// scheduled at the same timestamp.
func (e *Event) Less(other *Event) bool {
	if e.timestamp != other.timestamp {
		return e.timestamp < other.timestamp
	}
	return e.index < other.index
}
