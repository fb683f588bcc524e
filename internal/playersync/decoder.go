package playersync

import (
	"encoding/json"
	"math"
)

// EventType is the closed set of inbound events the state machine accepts.
type EventType int

const (
	EventUnrecognized EventType = iota
	EventPlaying
	EventPaused
	EventEnded
	EventInfo
)

// Event is a validated inbound player event. CurrentTime and Duration are
// only set on EventInfo, and only when the reported value was numeric,
// finite and non-negative.
type Event struct {
	Type        EventType
	CurrentTime *float64
	Duration    *float64
}

// Decoder converts raw messages from the player channel into typed
// events. The channel is untrusted: anything from a different origin, or
// with an unexpected payload shape, decodes to EventUnrecognized and is
// dropped before it reaches the state machine.
type Decoder struct {
	trustedOrigin string
}

func NewDecoder(trustedOrigin string) *Decoder {
	return &Decoder{trustedOrigin: trustedOrigin}
}

// Player state change codes as reported by the embedded player.
const (
	stateCodeEnded   = 0
	stateCodePlaying = 1
	stateCodePaused  = 2
)

func (d *Decoder) Decode(origin string, payload []byte) Event {
	if origin != d.trustedOrigin {
		return Event{Type: EventUnrecognized}
	}

	var raw struct {
		Event string          `json:"event"`
		Info  json.RawMessage `json:"info"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Event{Type: EventUnrecognized}
	}

	switch raw.Event {
	case "onStateChange":
		var code float64
		if err := json.Unmarshal(raw.Info, &code); err != nil {
			return Event{Type: EventUnrecognized}
		}
		switch int(code) {
		case stateCodePlaying:
			return Event{Type: EventPlaying}
		case stateCodePaused:
			return Event{Type: EventPaused}
		case stateCodeEnded:
			return Event{Type: EventEnded}
		}
		return Event{Type: EventUnrecognized}

	case "infoDelivery":
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw.Info, &fields); err != nil {
			return Event{Type: EventUnrecognized}
		}
		ev := Event{Type: EventInfo}
		ev.CurrentTime = decodeFinite(fields["currentTime"])
		ev.Duration = decodeFinite(fields["duration"])
		return ev
	}

	return Event{Type: EventUnrecognized}
}

// decodeFinite accepts a raw JSON value only if it is a finite,
// non-negative number. Anything else is dropped, not an error.
func decodeFinite(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}
