// Package lockerlog holds the two ledgers written alongside deliveries:
// HardwareSyncRecord, the command mailbox polled by the door controller, and
// AccessAuditRecord, the append-only history of collect attempts.
package lockerlog
