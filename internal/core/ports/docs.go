// Package ports declares the contracts between the locker engine and its
// infrastructure: repositories bound to a unit of work, the notifier and the
// clock.
package ports
