// Package resident holds the Resident aggregate. A resident is the owner of a
// flat within a location and the recipient of every package addressed to it.
//
// At most one active resident may exist per (location, flat). That rule spans
// rows, so it is enforced by the registration command under a per-flat lock
// rather than by the aggregate itself.
package resident
