package playersync

import "github.com/frabrice/insightium/internal/models"

// Command is an outbound instruction for the embedded player, encoded as
// the player's documented postMessage shape. Commands are fire-and-forget:
// there is no acknowledgment and the player may silently drop them.
type Command struct {
	Event string `json:"event"` // always "command"
	Func  string `json:"func"`
	Args  string `json:"args"`
}

const (
	funcPlay        = "playVideo"
	funcPause       = "pauseVideo"
	funcCurrentTime = "getCurrentTime"
	funcDuration    = "getDuration"
)

func newCommand(fn string) Command {
	return Command{Event: "command", Func: fn, Args: ""}
}

// PlayerPort is the one-way transport to the player surface. Load swaps
// the surface to a new item with autoplay; Send posts a command to the
// currently loaded player. Implementations must not call back into the
// Controller, since both methods are invoked while its lock is held.
type PlayerPort interface {
	Load(item models.MediaItem)
	Send(cmd Command)
}
