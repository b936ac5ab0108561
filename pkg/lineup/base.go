package lineup

import "fmt"

// Base formation coordinates (meters). Front players stand 2 m from the
// net, back players 6 m, in three evenly spaced columns.
const (
	baseFrontY = 2.0
	baseBackY  = 6.0
)

var baseColumnX = [3]float64{1.5, 4.5, 7.5} // left, middle, right

// BaseRotation returns the canonical legal arrangement with one player per
// slot and server set as the serving slot. Player IDs are "p1".."p6"
// after their slot. An invalid server slot yields a lineup with no server.
func BaseRotation(server Slot) Lineup {
	out := make(Lineup, 0, NumSlots)
	for _, s := range Slots {
		y := baseBackY
		if s.IsFront() {
			y = baseFrontY
		}
		out = append(out, Player{
			ID:       fmt.Sprintf("p%d", int(s)),
			Slot:     s,
			X:        baseColumnX[s.Column()],
			Y:        y,
			IsServer: s == server,
		})
	}
	return out
}
