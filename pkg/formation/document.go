package formation

import (
	"slices"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Space names the coordinate system of a document's positions.
type Space string

const (
	SpaceRules  Space = "rules"
	SpaceScreen Space = "screen"
)

// Document is the serialized form of a formation.
type Document struct {
	Space   Space        `json:"space,omitempty" toml:"space,omitempty"`
	Frame   *court.Frame `json:"frame,omitempty" toml:"frame,omitempty"`
	Server  int          `json:"server" toml:"server"`
	Players []Player     `json:"players" toml:"players"`
}

// Player is one entry of a document's roster.
type Player struct {
	ID   string  `json:"id" toml:"id"`
	Name string  `json:"name,omitempty" toml:"name,omitempty"`
	Role string  `json:"role,omitempty" toml:"role,omitempty"`
	Slot int     `json:"slot" toml:"slot"`
	X    float64 `json:"x" toml:"x"`
	Y    float64 `json:"y" toml:"y"`
}

// Transformer returns the transformer for the document's positions, or nil
// for rules space. fallback is used when a screen document has no frame.
func (d Document) Transformer(fallback court.Frame) (*court.Transformer, error) {
	switch d.Space {
	case "", SpaceRules:
		return nil, nil
	case SpaceScreen:
		f := fallback
		if d.Frame != nil {
			f = *d.Frame
		}
		return court.NewTransformer(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown coordinate space %q (must be rules or screen)", d.Space)
	}
}

// Formation checks player ids and reshapes the document. A formation maps
// each slot to one player, so a document assigning a slot twice is
// rejected here; use Lineup to let the validator report it instead.
func (d Document) Formation() (Formation, error) {
	if err := d.checkPlayers(); err != nil {
		return Formation{}, err
	}
	f := Formation{
		Positions: make(map[string]court.Point, len(d.Players)),
		Slots:     make(map[lineup.Slot]string, len(d.Players)),
		Server:    lineup.Slot(d.Server),
		Roster:    make(map[string]Info),
	}
	for _, p := range d.Players {
		s := lineup.Slot(p.Slot)
		if _, taken := f.Slots[s]; taken {
			return Formation{}, errors.New(errors.ErrCodeInvalidPlayer, "slot %d is assigned to more than one player", p.Slot)
		}
		f.Slots[s] = p.ID
		f.Positions[p.ID] = court.Point{X: p.X, Y: p.Y}
		if p.Name != "" || p.Role != "" {
			f.Roster[p.ID] = Info{Name: p.Name, Role: p.Role}
		}
	}
	return f, nil
}

// Lineup converts the document to a rules-space lineup in document order.
// Only player ids are checked; slot and server problems are left for the
// overlap validator to report.
func (d Document) Lineup(fallback court.Frame) (lineup.Lineup, error) {
	t, err := d.Transformer(fallback)
	if err != nil {
		return nil, err
	}
	if err := d.checkPlayers(); err != nil {
		return nil, err
	}
	out := make(lineup.Lineup, 0, len(d.Players))
	for _, p := range d.Players {
		pos := court.Point{X: p.X, Y: p.Y}
		if t != nil {
			pos = t.PointToRules(pos)
		}
		out = append(out, lineup.Player{
			ID:          p.ID,
			DisplayName: p.Name,
			Role:        p.Role,
			Slot:        lineup.Slot(p.Slot),
			X:           pos.X,
			Y:           pos.Y,
			IsServer:    p.Slot == d.Server,
		})
	}
	return out, nil
}

func (d Document) checkPlayers() error {
	seen := make(map[string]bool, len(d.Players))
	for _, p := range d.Players {
		if err := errors.ValidatePlayerID(p.ID); err != nil {
			return err
		}
		if seen[p.ID] {
			return errors.New(errors.ErrCodeInvalidPlayer, "duplicate player id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// NewDocument builds a document from a lineup. For SpaceScreen the
// positions are converted with t, and t's frame is recorded.
func NewDocument(l lineup.Lineup, space Space, t *court.Transformer) Document {
	d := Document{Space: space, Players: make([]Player, 0, len(l))}
	if space == SpaceScreen && t != nil {
		fr := t.Frame()
		d.Frame = &fr
	} else {
		t = nil
	}
	for _, p := range l.SortedBySlot() {
		pos := p.Position()
		if t != nil {
			pos = t.PointToScreen(pos)
		}
		d.Players = append(d.Players, Player{
			ID:   p.ID,
			Name: p.DisplayName,
			Role: p.Role,
			Slot: int(p.Slot),
			X:    pos.X,
			Y:    pos.Y,
		})
	}
	if srv := l.Servers(); len(srv) > 0 {
		d.Server = int(slices.Min(srv))
	}
	return d
}
