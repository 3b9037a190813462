// Package queries contains read-only operations over orders and partners.
package queries
