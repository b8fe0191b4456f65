// Package order provides the Order aggregate of the lifecycle engine.
//
// The package includes:
//   - Order: the aggregate root holding client, line item snapshots, total and status
//   - LineItem: an immutable product snapshot taken at creation time
//   - Status: the RECEIVED / PREPARING / READY / COMPLETED / CANCELLED enumeration
//   - Transitions: an optional table restricting which status may follow which
//
// Key business rules:
//   - Orders start in RECEIVED
//   - The total amount is caller supplied and never derived from line items
//   - Status strings are parsed exactly, unknown values fail with ErrInvalidStatus
//   - Without a transition table any valid status may be set from any other
package order
