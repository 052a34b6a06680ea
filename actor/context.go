package actor

// Context is the view an actor gets of its own invocation while handling
// one message. It is only valid for the duration of the Receive call that
// received it; actors must not retain it.
type Context interface {
	// Engine returns the engine this actor is running on, so an actor can
	// Spawn children or Send to other known PIDs.
	Engine() *Engine
	// Self returns this actor's own PID.
	Self() *PID
	// Sender returns the PID that sent the current message, or nil if it
	// was sent anonymously (e.g. from outside any actor).
	Sender() *PID
	// Message returns the payload delivered to this Receive call. Actors
	// type-switch on this to decide what to do.
	Message() interface{}
	// RequestID returns the pending Ask correlation id for the current
	// message, or "" if the current message was not sent via Ask.
	RequestID() string
	// Reply completes the pending Ask for the current message with result.
	// It is a no-op if the current message was not sent via Ask, or if the
	// asker has already timed out.
	Reply(result interface{})
}

type context struct {
	engine    *Engine
	self      *PID
	sender    *PID
	message   interface{}
	requestID string
}

func (c *context) Engine() *Engine         { return c.engine }
func (c *context) Self() *PID              { return c.self }
func (c *context) Sender() *PID            { return c.sender }
func (c *context) Message() interface{}    { return c.message }
func (c *context) RequestID() string       { return c.requestID }

func (c *context) Reply(result interface{}) {
	if c.requestID == "" {
		return
	}
	c.engine.resolveAsk(c.requestID, askResult{value: result})
}
