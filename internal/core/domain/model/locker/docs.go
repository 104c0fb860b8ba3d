// Package locker holds the Locker aggregate and its status machine.
//
// A locker is occupied if and only if exactly one deposited delivery
// references it. The aggregate only guards its own transitions; the pairing
// with deliveries is kept by the deposit and collect commands, which change
// both inside one transaction.
package locker
