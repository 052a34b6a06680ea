package actor

// Started is delivered to an actor once, immediately after it is spawned
// and before any other message can reach it.
type Started struct{}

// Stopping is delivered to an actor when Engine.Stop is called on it. The
// actor may still send messages while handling Stopping; once Receive
// returns for this message, whatever is still queued in the mailbox is
// processed before Stopped is delivered.
type Stopping struct{}

// Stopped is delivered to an actor after its mailbox has been drained and
// it is about to be removed from the engine.
type Stopped struct{}

// Failure describes a Receive call that panicked. The engine does not send
// it to any actor (there is no supervision hierarchy); recovered panics are
// reported through EventHandler.ActorPanic instead.
type Failure struct {
	Who    *PID
	Reason interface{}
}

// messageEnvelope carries a user message plus the PID of whoever sent it,
// so the receiving actor's Context can answer Sender().
type messageEnvelope struct {
	Sender    *PID
	Msg       interface{}
	RequestID string
}

// askResult is the value delivered back through Engine.Ask's reply channel.
type askResult struct {
	value interface{}
}
