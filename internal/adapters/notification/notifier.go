// Package notification delivers desktop notifications and the
// completion beep.
package notification

import "github.com/gen2brain/beeep"

// DesktopNotifier implements ports.Notifier with the system
// notification daemon. Calls may block; the engine invokes them from
// background goroutines.
type DesktopNotifier struct{}

func NewDesktopNotifier() *DesktopNotifier {
	return &DesktopNotifier{}
}

func (n *DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

func (n *DesktopNotifier) Beep() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}
