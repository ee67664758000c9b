// Package seating arranges people in a rectangular grid of seats.
//
// Generation is reproducible: the same Config and seed text always produce
// the same SeatTable.  Names are ordered front to back and only shuffled
// inside blocks of RandomBetweenRows rows; every column receives a group
// leader, separated pairs are kept apart according to their ConflictRule,
// and optionally one "lucky" person from the back of the roster is exempted.
//
// A Generator retries randomized arrangements until one is valid or its
// time budget runs out, in which case ErrGenerationTimeout is returned.
// The package performs no I/O and keeps no state between calls.
package seating
