package playersync

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/frabrice/insightium/internal/catalog"
	"github.com/frabrice/insightium/internal/models"
)

// State is the playback lifecycle phase. Loading, Playing and Paused all
// carry an active item; Idle means nothing is loaded.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "idle"
}

// Status is a snapshot of the controller state for the UI.
type Status struct {
	State        State   `json:"-"`
	StateName    string  `json:"state"`
	ActiveItemID string  `json:"activeItemId,omitempty"`
	Playing      bool    `json:"playing"`
	CurrentTime  float64 `json:"currentTime"`
	Duration     float64 `json:"duration"`
}

// ItemResolver looks catalog items up by ID.
type ItemResolver interface {
	GetItemByID(id string) (*models.MediaItem, error)
}

var ErrClosed = errors.New("player sync controller is closed")

const defaultPollInterval = time.Second

// Controller reconciles user intent with the embedded player's
// asynchronous events. Outbound commands get no acknowledgment, so the
// local state is optimistic until an inbound event confirms it: duration
// is seeded from the catalog's formatted duration and overwritten by the
// player's own reports, and the Playing state is only entered on an
// authoritative state-change event (or a same-item resume toggle).
//
// A progress poll runs only while Playing; entering and leaving that
// state is the sole trigger that starts and stops it.
type Controller struct {
	player   PlayerPort
	resolver ItemResolver
	decoder  *Decoder
	interval time.Duration

	onProgress func(itemID string, position, duration float64)

	mu           sync.Mutex
	state        State
	activeItemID string
	playing      bool
	currentTime  float64
	duration     float64
	pollStop     chan struct{}
	closed       bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithPollInterval overrides the 1s progress poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithProgressFunc registers a callback invoked after each accepted
// progress report. The callback runs outside the controller lock.
func WithProgressFunc(fn func(itemID string, position, duration float64)) Option {
	return func(c *Controller) { c.onProgress = fn }
}

func NewController(player PlayerPort, resolver ItemResolver, trustedOrigin string, opts ...Option) *Controller {
	c := &Controller{
		player:   player,
		resolver: resolver,
		decoder:  NewDecoder(trustedOrigin),
		interval: defaultPollInterval,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestPlay handles the user pressing play on an item. A new item is
// loaded with autoplay and the controller waits in Loading for the
// player's first authoritative event. Requesting the item that is
// already active toggles between Playing and Paused without reloading.
func (c *Controller) RequestPlay(itemID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	if itemID == c.activeItemID && (c.state == StatePlaying || c.state == StatePaused) {
		if c.state == StatePlaying {
			c.player.Send(newCommand(funcPause))
			c.setStateLocked(StatePaused)
		} else {
			c.player.Send(newCommand(funcPlay))
			c.setStateLocked(StatePlaying)
		}
		return nil
	}

	item, err := c.resolver.GetItemByID(itemID)
	if err != nil {
		return fmt.Errorf("resolving item %s: %w", itemID, err)
	}

	c.setStateLocked(StateLoading)
	c.activeItemID = item.ID
	c.currentTime = 0
	c.duration = catalog.ParseDurationSeconds(item.Duration)
	c.playing = false
	c.player.Load(*item)
	return nil
}

// HandleMessage feeds one raw inbound message from the player channel
// through the validating decoder and into the state machine. itemID tags
// which item the surface was relaying for; events for an item that is no
// longer active are stale and discarded.
func (c *Controller) HandleMessage(origin, itemID string, payload []byte) {
	ev := c.decoder.Decode(origin, payload)
	if ev.Type == EventUnrecognized {
		return
	}

	c.mu.Lock()
	if c.closed || c.activeItemID == "" || itemID != c.activeItemID {
		c.mu.Unlock()
		return
	}

	var progressItem string
	var progressPos, progressDur float64

	switch ev.Type {
	case EventPlaying:
		c.setStateLocked(StatePlaying)
	case EventPaused:
		c.setStateLocked(StatePaused)
	case EventEnded:
		c.activeItemID = ""
		c.currentTime = 0
		c.setStateLocked(StateIdle)
	case EventInfo:
		if ev.CurrentTime != nil {
			c.currentTime = *ev.CurrentTime
		}
		if ev.Duration != nil {
			c.duration = *ev.Duration
		}
		if ev.CurrentTime != nil || ev.Duration != nil {
			progressItem = c.activeItemID
			progressPos = c.currentTime
			progressDur = c.duration
		}
	}
	c.mu.Unlock()

	if progressItem != "" && c.onProgress != nil {
		c.onProgress(progressItem, progressPos, progressDur)
	}
}

// Status returns a snapshot of the current playback state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		State:        c.state,
		StateName:    c.state.String(),
		ActiveItemID: c.activeItemID,
		Playing:      c.playing,
		CurrentTime:  c.currentTime,
		Duration:     c.duration,
	}
}

// Close cancels the progress poll and stops all outbound commands.
// Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopPollLocked()
	c.state = StateIdle
	c.activeItemID = ""
	c.playing = false
}

func (c *Controller) setStateLocked(s State) {
	c.state = s
	c.playing = s == StatePlaying
	if s == StatePlaying {
		c.startPollLocked()
	} else {
		c.stopPollLocked()
	}
}

func (c *Controller) startPollLocked() {
	if c.pollStop != nil {
		return
	}
	stop := make(chan struct{})
	c.pollStop = stop
	go c.pollLoop(stop)
}

func (c *Controller) stopPollLocked() {
	if c.pollStop != nil {
		close(c.pollStop)
		c.pollStop = nil
	}
}

// pollLoop queries the player for its position once per interval while
// Playing. The state check under the lock guards against a tick that
// raced a pause or close.
func (c *Controller) pollLoop(stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.state == StatePlaying && !c.closed {
				c.player.Send(newCommand(funcCurrentTime))
				c.player.Send(newCommand(funcDuration))
			}
			c.mu.Unlock()
		}
	}
}
