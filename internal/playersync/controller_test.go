package playersync

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frabrice/insightium/internal/models"
)

type fakePort struct {
	mu    sync.Mutex
	loads []string
	cmds  []Command
}

func (p *fakePort) Load(item models.MediaItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loads = append(p.loads, item.ID)
}

func (p *fakePort) Send(cmd Command) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cmds = append(p.cmds, cmd)
}

func (p *fakePort) loadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.loads)
}

func (p *fakePort) countFunc(fn string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, cmd := range p.cmds {
		if cmd.Func == fn {
			n++
		}
	}
	return n
}

type fakeResolver struct {
	items map[string]models.MediaItem
}

func (r *fakeResolver) GetItemByID(id string) (*models.MediaItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s not found", id)
	}
	return &item, nil
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *fakePort) {
	t.Helper()

	port := &fakePort{}
	resolver := &fakeResolver{items: map[string]models.MediaItem{
		"A": {ID: "A", Kind: models.KindPodcast, Title: "Episode A", Duration: "4:05"},
		"B": {ID: "B", Kind: models.KindPodcast, Title: "Episode B", Duration: "12:00"},
	}}

	ctrl := NewController(port, resolver, testOrigin, opts...)
	t.Cleanup(ctrl.Close)
	return ctrl, port
}

func playingEvent() []byte {
	return []byte(`{"event":"onStateChange","info":1}`)
}

func endedEvent() []byte {
	return []byte(`{"event":"onStateChange","info":0}`)
}

func TestRequestPlayLoadsNewItem(t *testing.T) {
	ctrl, port := newTestController(t)

	err := ctrl.RequestPlay("A")
	require.NoError(t, err)

	status := ctrl.Status()
	assert.Equal(t, StateLoading, status.State)
	assert.Equal(t, "A", status.ActiveItemID)
	assert.False(t, status.Playing)
	assert.Equal(t, 0.0, status.CurrentTime)
	// duration seeded optimistically from the catalog's "4:05"
	assert.Equal(t, 245.0, status.Duration)
	assert.Equal(t, []string{"A"}, port.loads)
}

func TestRequestPlayUnknownItem(t *testing.T) {
	ctrl, port := newTestController(t)

	err := ctrl.RequestPlay("missing")
	require.Error(t, err)
	assert.Equal(t, StateIdle, ctrl.Status().State)
	assert.Zero(t, port.loadCount())
}

func TestRequestPlaySameItemToggles(t *testing.T) {
	ctrl, port := newTestController(t)

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	require.Equal(t, StatePlaying, ctrl.Status().State)

	// same item again pauses without reloading
	require.NoError(t, ctrl.RequestPlay("A"))
	status := ctrl.Status()
	assert.Equal(t, StatePaused, status.State)
	assert.False(t, status.Playing)
	assert.Equal(t, 1, port.loadCount())
	assert.Equal(t, 1, port.countFunc("pauseVideo"))

	// and a third time resumes, still without reloading
	require.NoError(t, ctrl.RequestPlay("A"))
	status = ctrl.Status()
	assert.Equal(t, StatePlaying, status.State)
	assert.True(t, status.Playing)
	assert.Equal(t, 1, port.loadCount())
	assert.Equal(t, 1, port.countFunc("playVideo"))
}

func TestRequestPlayDifferentItemReloads(t *testing.T) {
	ctrl, port := newTestController(t)

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", playingEvent())

	require.NoError(t, ctrl.RequestPlay("B"))

	status := ctrl.Status()
	assert.Equal(t, StateLoading, status.State)
	assert.Equal(t, "B", status.ActiveItemID)
	assert.Equal(t, 720.0, status.Duration)
	assert.Equal(t, []string{"A", "B"}, port.loads)
}

func TestEndedResetsToIdle(t *testing.T) {
	ctrl, _ := newTestController(t)

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	ctrl.HandleMessage(testOrigin, "A", endedEvent())

	status := ctrl.Status()
	assert.Equal(t, StateIdle, status.State)
	assert.Empty(t, status.ActiveItemID)
	assert.False(t, status.Playing)
	assert.Equal(t, 0.0, status.CurrentTime)
}

func TestStaleEndedEventIsIgnored(t *testing.T) {
	ctrl, _ := newTestController(t)

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	require.NoError(t, ctrl.RequestPlay("B"))

	// a late "ended" from A's playback must not touch B's state
	ctrl.HandleMessage(testOrigin, "A", endedEvent())

	status := ctrl.Status()
	assert.Equal(t, StateLoading, status.State)
	assert.Equal(t, "B", status.ActiveItemID)
}

func TestForeignOriginEventIsIgnored(t *testing.T) {
	ctrl, _ := newTestController(t)

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage("https://evil.example", "A", playingEvent())

	assert.Equal(t, StateLoading, ctrl.Status().State)
}

func TestMalformedEventIsIgnored(t *testing.T) {
	ctrl, _ := newTestController(t)

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", []byte(`not json`))
	ctrl.HandleMessage(testOrigin, "A", []byte(`{"event":"mystery","info":1}`))

	assert.Equal(t, StateLoading, ctrl.Status().State)
}

func TestInfoDeliveryUpdatesProgress(t *testing.T) {
	var gotItem string
	var gotPos, gotDur float64
	ctrl, _ := newTestController(t, WithProgressFunc(func(itemID string, pos, dur float64) {
		gotItem, gotPos, gotDur = itemID, pos, dur
	}))

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	ctrl.HandleMessage(testOrigin, "A", []byte(`{"event":"infoDelivery","info":{"currentTime":30.5,"duration":240}}`))

	status := ctrl.Status()
	// authoritative report overrides the optimistic seed
	assert.Equal(t, 30.5, status.CurrentTime)
	assert.Equal(t, 240.0, status.Duration)
	assert.Equal(t, StatePlaying, status.State)

	assert.Equal(t, "A", gotItem)
	assert.Equal(t, 30.5, gotPos)
	assert.Equal(t, 240.0, gotDur)
}

func TestPollingOnlyWhilePlaying(t *testing.T) {
	ctrl, port := newTestController(t, WithPollInterval(5*time.Millisecond))

	require.NoError(t, ctrl.RequestPlay("A"))

	// no polling while Loading
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, port.countFunc("getCurrentTime"))

	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	time.Sleep(50 * time.Millisecond)

	timeQueries := port.countFunc("getCurrentTime")
	durationQueries := port.countFunc("getDuration")
	assert.GreaterOrEqual(t, timeQueries, 2)
	assert.Equal(t, timeQueries, durationQueries, "commands come in getCurrentTime/getDuration pairs")

	// pausing stops the poll
	require.NoError(t, ctrl.RequestPlay("A"))
	require.Equal(t, StatePaused, ctrl.Status().State)
	paused := port.countFunc("getCurrentTime")
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, paused, port.countFunc("getCurrentTime"))
}

func TestCloseStopsPollingAndCommands(t *testing.T) {
	ctrl, port := newTestController(t, WithPollInterval(5*time.Millisecond))

	require.NoError(t, ctrl.RequestPlay("A"))
	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	time.Sleep(20 * time.Millisecond)

	ctrl.Close()
	after := port.countFunc("getCurrentTime")
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, port.countFunc("getCurrentTime"))

	err := ctrl.RequestPlay("A")
	assert.ErrorIs(t, err, ErrClosed)

	// events after close are dropped
	ctrl.HandleMessage(testOrigin, "A", playingEvent())
	assert.Equal(t, StateIdle, ctrl.Status().State)
}
