// Package services provides domain services that span more than one
// aggregate of the locker system:
//   - LockerAllocator picks and occupies the locker for an incoming package
//   - OTPGenerator issues one-time passwords with their expiry
//   - OTPVerifier decides the outcome of a collect attempt and moves the
//     attempt counters of the resident's deliveries
package services
