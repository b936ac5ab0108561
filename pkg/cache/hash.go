package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Fingerprint returns a stable textual form of a lineup covering every field
// that can influence validation output. Player order is preserved because
// duplicate-slot resolution depends on it. Coordinates are written with full
// precision so lineups on either side of the tolerance never collide.
func Fingerprint(l lineup.Lineup) string {
	var b strings.Builder
	for _, p := range l {
		writePlayer(&b, p)
	}
	return b.String()
}

func writePlayer(b *strings.Builder, p lineup.Player) {
	b.WriteString(strconv.Itoa(int(p.Slot)))
	b.WriteByte('|')
	b.WriteString(strconv.Quote(p.ID))
	b.WriteByte('|')
	b.WriteString(strconv.Quote(p.DisplayName))
	b.WriteByte('|')
	writePoint(b, p.X, p.Y)
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(p.IsServer))
	b.WriteByte(';')
}

func writePoint(b *strings.Builder, x, y float64) {
	b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'g', -1, 64))
}
