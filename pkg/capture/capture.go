// Package capture adapts a one-shot voice recognition device into an
// explicit idle -> recording -> idle state machine with a single-result
// transcript channel.
package capture

import (
	"errors"
	"sync"
)

var ErrUnavailable = errors.New("capture device unavailable")

type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
)

type EventType string

const (
	// EventResult carries a finalized transcript.
	EventResult EventType = "result"

	// EventEnd signals end of utterance. The device emits it after a
	// result, after Stop, and after an aborted activation.
	EventEnd EventType = "end"
)

type Event struct {
	Type EventType

	Transcript string
}

// Device is the underlying recognizer boundary. Its locale is fixed at
// construction time.
type Device interface {
	Start() error
	Stop()

	Events() <-chan Event
}

type Transcript struct {
	Text   string
	Locale string
}

// Adapter owns exactly one device. Adapters for different views are fully
// independent. Changing the source language means constructing a new
// adapter with a device built for the new locale.
type Adapter struct {
	device Device
	locale string

	mu      sync.Mutex
	state   State
	pending *string

	results chan Transcript
}

func New(device Device, locale string) *Adapter {
	a := &Adapter{
		device: device,
		locale: locale,

		state: StateIdle,

		results: make(chan Transcript, 1),
	}

	go a.watch()

	return a
}

func (a *Adapter) Locale() string {
	return a.locale
}

func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Result delivers at most one finalized transcript per activation.
func (a *Adapter) Result() <-chan Transcript {
	return a.results
}

// Start transitions idle -> recording and asks the device to listen.
// If the device is unavailable the adapter stays idle and the caller is
// expected to disable voice controls without surfacing an error.
func (a *Adapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateIdle {
		return nil
	}

	if err := a.device.Start(); err != nil {
		return err
	}

	a.state = StateRecording
	a.pending = nil

	return nil
}

// Stop requests an early halt. The transition back to idle happens when
// the device emits its end event, not here.
func (a *Adapter) Stop() {
	a.mu.Lock()
	recording := a.state == StateRecording
	a.mu.Unlock()

	if recording {
		a.device.Stop()
	}
}

func (a *Adapter) watch() {
	for event := range a.device.Events() {
		switch event.Type {
		case EventResult:
			a.mu.Lock()

			if a.state == StateRecording {
				text := event.Transcript
				a.pending = &text
			}

			a.mu.Unlock()

		case EventEnd:
			a.mu.Lock()

			pending := a.pending

			a.pending = nil
			a.state = StateIdle

			a.mu.Unlock()

			if pending != nil {
				select {
				case a.results <- Transcript{Text: *pending, Locale: a.locale}:
				default:
				}
			}
		}
	}
}
