// Package stages wires the five playable stages into a registry in play order.
package stages

import (
	"github.com/vovakirdan/sinland/internal/stage"
	"github.com/vovakirdan/sinland/internal/stages/crosswalk"
	"github.com/vovakirdan/sinland/internal/stages/heartbeat"
	"github.com/vovakirdan/sinland/internal/stages/orchard"
	"github.com/vovakirdan/sinland/internal/stages/pencil"
	"github.com/vovakirdan/sinland/internal/stages/room"
)

// Last is the ID of the final stage.
const Last = room.ID

// Default returns a registry with every stage.
func Default() *stage.Registry {
	r := stage.NewRegistry()
	r.Register(orchard.ID, orchard.Title, orchard.New)
	r.Register(heartbeat.ID, heartbeat.Title, heartbeat.New)
	r.Register(pencil.ID, pencil.Title, pencil.New)
	r.Register(crosswalk.ID, crosswalk.Title, crosswalk.New)
	r.Register(room.ID, room.Title, room.New)
	return r
}
