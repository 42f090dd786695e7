package heysync

// Channel is the sink a generated publisher forwards method calls to.
// Delivery, buffering and backpressure are owned by the implementation.
type Channel interface {
	Publish(payload any)
}

// ChannelFunc adapts an ordinary function to the Channel interface.
type ChannelFunc func(payload any)

// Publish calls f(payload).
func (f ChannelFunc) Publish(payload any) {
	f(payload)
}

// signal is the type of the zero-argument payload. No other value has it.
type signal string

func (s signal) String() string {
	return string(s)
}

// Signal is published by methods that take no arguments. It is a constant,
// so every generated publisher shares the same value and nothing can
// replace it.
const Signal signal = "heysync.Signal"

// IsSignal reports whether payload is the shared Signal value.
func IsSignal(payload any) bool {
	s, ok := payload.(signal)
	return ok && s == Signal
}

// Payload applies the forwarding rule used by generated method bodies:
// no arguments publish Signal, one argument publishes that argument and two
// or more publish a slice holding the arguments in declared order.
func Payload(args ...any) any {
	switch len(args) {
	case 0:
		return Signal
	case 1:
		return args[0]
	default:
		payload := make([]any, len(args))
		copy(payload, args)
		return payload
	}
}
