// Package partner models delivery partners as the assignment flow sees them:
// an availability record (status, last assignment time) and a profile (locality, coordinates).
package partner
