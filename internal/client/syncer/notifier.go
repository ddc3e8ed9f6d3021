package syncer

// Notifier surfaces sync state changes to the user. Implementations must not
// block.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Info(string) {}
func (nopNotifier) Warn(string) {}

// NopNotifier discards every notification.
func NopNotifier() Notifier { return nopNotifier{} }
