package capture

import (
	"sync/atomic"
	"testing"
	"time"
)

type fakeDevice struct {
	events chan Event

	startErr error

	starts atomic.Int64
	stops  atomic.Int64
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		events: make(chan Event, 8),
	}
}

func (d *fakeDevice) Start() error {
	d.starts.Add(1)
	return d.startErr
}

func (d *fakeDevice) Stop() {
	d.stops.Add(1)
}

func (d *fakeDevice) Events() <-chan Event {
	return d.events
}

func waitState(t *testing.T, a *Adapter, want State) {
	t.Helper()

	deadline := time.Now().Add(time.Second)

	for time.Now().Before(deadline) {
		if a.State() == want {
			return
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatalf("state never became %q, still %q", want, a.State())
}

func TestAdapterLifecycle(t *testing.T) {
	device := newFakeDevice()
	adapter := New(device, "de-DE")

	if adapter.State() != StateIdle {
		t.Fatalf("expected idle, got %q", adapter.State())
	}

	if err := adapter.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if adapter.State() != StateRecording {
		t.Fatalf("expected recording, got %q", adapter.State())
	}

	device.events <- Event{Type: EventResult, Transcript: "wo ist der bahnhof"}
	device.events <- Event{Type: EventEnd}

	select {
	case transcript := <-adapter.Result():
		if transcript.Text != "wo ist der bahnhof" {
			t.Errorf("unexpected transcript: %q", transcript.Text)
		}

		if transcript.Locale != "de-DE" {
			t.Errorf("unexpected locale: %q", transcript.Locale)
		}

	case <-time.After(time.Second):
		t.Fatal("no transcript delivered")
	}

	waitState(t, adapter, StateIdle)
}

func TestAdapterEndWithoutResult(t *testing.T) {
	device := newFakeDevice()
	adapter := New(device, "en-US")

	adapter.Start()

	// aborted utterance: end arrives with no result
	device.events <- Event{Type: EventEnd}

	waitState(t, adapter, StateIdle)

	select {
	case transcript := <-adapter.Result():
		t.Fatalf("unexpected transcript: %q", transcript.Text)
	default:
	}
}

func TestAdapterStopDoesNotTransition(t *testing.T) {
	device := newFakeDevice()
	adapter := New(device, "en-US")

	adapter.Start()
	adapter.Stop()

	if device.stops.Load() != 1 {
		t.Fatalf("expected one device stop, got %d", device.stops.Load())
	}

	// still recording until the device acknowledges with end
	if adapter.State() != StateRecording {
		t.Fatalf("expected recording after Stop, got %q", adapter.State())
	}

	device.events <- Event{Type: EventEnd}

	waitState(t, adapter, StateIdle)
}

func TestAdapterOneTranscriptPerActivation(t *testing.T) {
	device := newFakeDevice()
	adapter := New(device, "en-US")

	adapter.Start()

	device.events <- Event{Type: EventResult, Transcript: "first"}
	device.events <- Event{Type: EventResult, Transcript: "second"}
	device.events <- Event{Type: EventEnd}

	select {
	case transcript := <-adapter.Result():
		if transcript.Text != "second" {
			t.Errorf("expected last finalized transcript, got %q", transcript.Text)
		}

	case <-time.After(time.Second):
		t.Fatal("no transcript delivered")
	}

	waitState(t, adapter, StateIdle)

	select {
	case transcript := <-adapter.Result():
		t.Fatalf("extra transcript delivered: %q", transcript.Text)
	default:
	}
}

func TestAdapterUnavailableDevice(t *testing.T) {
	device := newFakeDevice()
	device.startErr = ErrUnavailable

	adapter := New(device, "en-US")

	if err := adapter.Start(); err == nil {
		t.Fatal("expected error")
	}

	if adapter.State() != StateIdle {
		t.Fatalf("expected idle after failed start, got %q", adapter.State())
	}
}

func TestAdapterStartWhileRecording(t *testing.T) {
	device := newFakeDevice()
	adapter := New(device, "en-US")

	adapter.Start()
	adapter.Start()

	if device.starts.Load() != 1 {
		t.Fatalf("expected one device start, got %d", device.starts.Load())
	}
}

func TestAdaptersAreIndependent(t *testing.T) {
	guideDevice := newFakeDevice()
	translatorDevice := newFakeDevice()

	guide := New(guideDevice, "en-US")
	translator := New(translatorDevice, "ja-JP")

	guide.Start()

	if translator.State() != StateIdle {
		t.Error("starting one adapter must not affect another")
	}

	guideDevice.events <- Event{Type: EventResult, Transcript: "hello"}
	guideDevice.events <- Event{Type: EventEnd}

	select {
	case <-translator.Result():
		t.Fatal("transcript leaked across adapters")
	case transcript := <-guide.Result():
		if transcript.Locale != "en-US" {
			t.Errorf("unexpected locale: %q", transcript.Locale)
		}
	case <-time.After(time.Second):
		t.Fatal("no transcript delivered")
	}
}
