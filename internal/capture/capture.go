// Package capture turns spoken audio into feedback text through an external
// transcript source. The core only consumes the source's events; audio
// handling itself lives behind the Source interface.
package capture

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State of the recorder. Not persisted across runs.
type State int

const (
	Idle State = iota
	Recording
)

// FailReason classifies capture failures.
type FailReason string

const (
	ReasonNoSpeech           FailReason = "no-speech"
	ReasonNoMicrophone       FailReason = "no-microphone"
	ReasonPermissionDenied   FailReason = "permission-denied"
	ReasonServiceUnavailable FailReason = "service-unavailable"
	ReasonNetwork            FailReason = "network"
	ReasonUserAborted        FailReason = "user-aborted"
	ReasonOther              FailReason = "other"
)

// Message returns the user-facing description for a failure reason.
// ReasonUserAborted returns "": stopping a capture on purpose is not an
// error and must stay silent.
func (r FailReason) Message() string {
	switch r {
	case ReasonNoSpeech:
		return "No speech detected. Please try again."
	case ReasonNoMicrophone:
		return "No microphone found. Please check your microphone."
	case ReasonPermissionDenied:
		return "Microphone permission denied. Allow microphone access for the transcriber."
	case ReasonServiceUnavailable:
		return "Transcription service not available. Check that the transcriber is running, or type your feedback instead."
	case ReasonNetwork:
		return "Network error. Please check your connection to the transcriber."
	case ReasonUserAborted:
		return ""
	default:
		return "Speech capture failed. If this persists, type your feedback instead."
	}
}

// Kind discriminates capture events.
type Kind int

const (
	CaptureStarted Kind = iota
	TranscriptReady
	CaptureEnded
	CaptureFailed
)

// Event is one discrete signal from the transcript source.
type Event struct {
	Kind          Kind
	Text          string     // TranscriptReady
	HadTranscript bool       // CaptureEnded
	Reason        FailReason // CaptureFailed
}

// Error is a capture failure carrying a classified reason.
type Error struct {
	Reason FailReason
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture failed (%s): %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUnavailable means no transcript source is configured at all. Surfaced
// once at startup; the capture control stays disabled.
var ErrUnavailable = errors.New("speech capture is not available; type your feedback instead")

// Source produces a transcript for one capture attempt.
type Source interface {
	// Precondition reports whether a capture may begin. It is checked
	// before every attempt; a non-nil error refuses the capture with no
	// state change.
	Precondition() error

	// Transcribe blocks until a transcript is ready or ctx is canceled.
	Transcribe(ctx context.Context) (string, error)
}

// Recorder drives at most one capture at a time over a Source.
//
// The recorder is safe for concurrent use: the capture attempt runs on its
// own goroutine while the UI loop queries State and calls Toggle.
type Recorder struct {
	source Source

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
}

// NewRecorder creates a recorder over source. A nil source means capture is
// unavailable on this installation.
func NewRecorder(source Source) *Recorder {
	return &Recorder{source: source}
}

// Available reports whether a transcript source is configured.
func (r *Recorder) Available() bool {
	return r.source != nil
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Toggle starts a capture when idle and stops the active capture when one is
// running. On start it returns a channel yielding the attempt's events; the
// channel is closed when the attempt finishes and the recorder is idle
// again. On stop it returns (nil, nil); the active attempt's channel
// delivers the remaining events.
func (r *Recorder) Toggle() (<-chan Event, error) {
	r.mu.Lock()

	if r.state == Recording {
		cancel := r.cancel
		r.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		return nil, nil
	}

	if r.source == nil {
		r.mu.Unlock()
		return nil, ErrUnavailable
	}
	if err := r.source.Precondition(); err != nil {
		r.mu.Unlock()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.state = Recording
	r.cancel = cancel
	r.mu.Unlock()

	events := make(chan Event, 4)
	go r.run(ctx, cancel, events)
	return events, nil
}

func (r *Recorder) run(ctx context.Context, cancel context.CancelFunc, events chan<- Event) {
	defer close(events)
	defer cancel()

	events <- Event{Kind: CaptureStarted}

	text, err := r.source.Transcribe(ctx)

	r.mu.Lock()
	r.state = Idle
	r.cancel = nil
	r.mu.Unlock()

	switch {
	case err != nil:
		events <- Event{Kind: CaptureFailed, Reason: classify(err)}
		events <- Event{Kind: CaptureEnded}
	case text == "":
		events <- Event{Kind: CaptureFailed, Reason: ReasonNoSpeech}
		events <- Event{Kind: CaptureEnded}
	default:
		events <- Event{Kind: TranscriptReady, Text: text}
		events <- Event{Kind: CaptureEnded, HadTranscript: true}
	}
}

func classify(err error) FailReason {
	if errors.Is(err, context.Canceled) {
		return ReasonUserAborted
	}
	var capErr *Error
	if errors.As(err, &capErr) {
		return capErr.Reason
	}
	return ReasonOther
}
