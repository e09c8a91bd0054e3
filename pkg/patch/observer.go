package patch

// Event describes one resolve, apply or revert outcome.
type Event struct {
	Feature    string
	Descriptor Descriptor
	Backend    string
	// Active is the number of applied units after the operation.
	Active int
	Err    error
}

// Observer receives unit outcomes. Callbacks run while the registry lock is
// held and must not call back into the registry.
type Observer interface {
	OnResolve(Event)
	OnApply(Event)
	OnRevert(Event)
}

type nopObserver struct{}

func (nopObserver) OnResolve(Event) {}
func (nopObserver) OnApply(Event)   {}
func (nopObserver) OnRevert(Event)  {}
