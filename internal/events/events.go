package events

type StateChangeEvent struct {
	State string
}

type Bus struct {
	StateChanges chan StateChangeEvent
}

func NewBus() *Bus {
	return &Bus{
		StateChanges: make(chan StateChangeEvent, 10),
	}
}
