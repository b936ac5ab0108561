package formation

import (
	"maps"
	"slices"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Formation is the editor-side shape of a lineup. Positions are in the
// transformer's rendering space.
type Formation struct {
	Positions map[string]court.Point
	Slots     map[lineup.Slot]string
	Server    lineup.Slot

	// Roster optionally carries display names and roles by player id.
	Roster map[string]Info
}

// Info is the descriptive data of a player that does not affect the rules.
type Info struct {
	Name string
	Role string
}

// ToLineup builds a lineup from f, one player per slot entry in slot
// order. Slots whose player has no position are skipped. A nil transformer
// means positions are already in rules space.
func ToLineup(f Formation, t *court.Transformer) lineup.Lineup {
	slots := slices.Sorted(maps.Keys(f.Slots))
	out := make(lineup.Lineup, 0, len(slots))
	for _, s := range slots {
		id := f.Slots[s]
		pos, ok := f.Positions[id]
		if !ok {
			continue
		}
		if t != nil {
			pos = t.PointToRules(pos)
		}
		info := f.Roster[id]
		out = append(out, lineup.Player{
			ID:          id,
			DisplayName: info.Name,
			Role:        info.Role,
			Slot:        s,
			X:           pos.X,
			Y:           pos.Y,
			IsServer:    s == f.Server,
		})
	}
	return out
}

// FromLineup is the inverse of ToLineup. When several players are flagged
// as server the lowest slot wins; with none, Server is zero.
func FromLineup(l lineup.Lineup, t *court.Transformer) Formation {
	f := Formation{
		Positions: make(map[string]court.Point, len(l)),
		Slots:     make(map[lineup.Slot]string, len(l)),
		Roster:    make(map[string]Info),
	}
	for _, p := range l {
		pos := p.Position()
		if t != nil {
			pos = t.PointToScreen(pos)
		}
		f.Positions[p.ID] = pos
		f.Slots[p.Slot] = p.ID
		if p.DisplayName != "" || p.Role != "" {
			f.Roster[p.ID] = Info{Name: p.DisplayName, Role: p.Role}
		}
		if p.IsServer && (f.Server == 0 || p.Slot < f.Server) {
			f.Server = p.Slot
		}
	}
	return f
}
