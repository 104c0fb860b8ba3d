// Package location holds the Location aggregate: one residential tower whose
// lockers and residents are partitioned by its identifier.
package location
