package timeline

type (
	// Broker carries messages from background goroutines (e.g. exporting) to
	// the model. The model drains ToModel on the GUI goroutine, so the model
	// itself never needs locking.
	Broker struct {
		ToModel chan MsgToModel
	}

	// MsgToModel is a message sent to the model. Data is usually an Alert.
	MsgToModel struct {
		Data any
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel: make(chan MsgToModel, 1024),
	}
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
