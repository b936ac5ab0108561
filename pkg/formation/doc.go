// Package formation converts between the caller's formation shape and
// rules-space lineups, and reads and writes formation documents.
//
// # Formations
//
// A [Formation] is what a court editor holds: player positions keyed by
// player id, the player id standing in each rotation slot, and the serving
// slot. [ToLineup] turns it into a [lineup.Lineup] for validation,
// converting positions through a [court.Transformer]; [FromLineup] is the
// inverse. Neither function validates anything: a formation with a missing
// or duplicated player produces a lineup that the overlap validator
// reports as INVALID_LINEUP.
//
// # Documents
//
// A [Document] is the on-disk form, stored as JSON or TOML:
//
//	space = "screen"
//	server = 1
//
//	[frame]
//	width = 600
//	height = 360
//
//	[[players]]
//	id = "p4"
//	name = "Ana"
//	role = "outside"
//	slot = 4
//	x = 100
//	y = 80
//
// space is "rules" (meters, the default) or "screen" (rendering units of
// frame). The frame defaults to the caller's configured frame when
// omitted. Unknown fields are rejected so typos do not silently drop data.
package formation
