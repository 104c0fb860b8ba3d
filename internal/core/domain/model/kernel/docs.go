// Package kernel provides the value objects shared by every aggregate of the
// locker domain:
//   - UUID: identifier for locations, residents, lockers, deliveries and log rows
//   - PackageSize: small, medium or large; a locker only accepts its own size
//   - Mobile: a ten-digit resident mobile number used for identity checks
//
// All values are immutable and validated at construction.
package kernel
