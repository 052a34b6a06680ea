package actor

// Props configures how an Engine should build and supervise an actor.
type Props struct {
	producer Producer
}

// NewProps wraps a Producer so it can be passed to Engine.Spawn.
func NewProps(producer Producer) *Props {
	return &Props{producer: producer}
}

// Produce builds one Actor instance from these Props.
func (p *Props) Produce() Actor {
	return p.producer()
}
