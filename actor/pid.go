package actor

// PID addresses a spawned actor. It is comparable and safe to hold onto
// after the actor it names has stopped; sends to a dead PID are dropped.
type PID struct {
	ID string
}

func (pid *PID) String() string {
	if pid == nil {
		return "<nil>"
	}
	return pid.ID
}

// Equals reports whether two PIDs address the same actor.
func (pid *PID) Equals(other *PID) bool {
	if pid == nil || other == nil {
		return pid == other
	}
	return pid.ID == other.ID
}
