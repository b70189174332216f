// Package notify sends desktop notifications and the terminal bell when a
// timer session ends.
package notify

import (
	"errors"

	"github.com/gen2brain/beeep"
)

type Notifier interface {
	Send(title, body string) error
	Beep() error
}

type Noop struct{}

func (Noop) Send(string, string) error { return nil }
func (Noop) Beep() error               { return nil }

// Desktop uses beeep. Either channel can be switched off independently.
type Desktop struct {
	Notify bool
	Sound  bool

	notifyFn func(title, message string, icon any) error
	beepFn   func(freq float64, duration int) error
}

func NewDesktop(notify, sound bool) *Desktop {
	return &Desktop{
		Notify:   notify,
		Sound:    sound,
		notifyFn: beeep.Notify,
		beepFn:   beeep.Beep,
	}
}

func (d *Desktop) Send(title, body string) error {
	if !d.Notify {
		return nil
	}
	return d.notifyFn(title, body, "")
}

func (d *Desktop) Beep() error {
	if !d.Sound {
		return nil
	}
	return d.beepFn(beeep.DefaultFreq, beeep.DefaultDuration)
}

// SessionDone fires both channels and joins their errors.
func SessionDone(n Notifier, title, body string) error {
	if n == nil {
		return nil
	}
	return errors.Join(n.Send(title, body), n.Beep())
}
