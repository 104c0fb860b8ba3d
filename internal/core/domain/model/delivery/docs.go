// Package delivery holds the Delivery aggregate: one package travelling from
// a courier to a resident through an exclusively owned locker.
//
// A delivery is created deposited (or deposit_requested while the controller
// acknowledges the door), and only ever moves to collected. Failed OTP
// attempts touch nothing but the attempt counter. Deliveries are never
// deleted.
package delivery
