// Package queries holds the read-only views of locker state. Handlers read
// the store directly with SQL and never open a unit of work.
package queries
