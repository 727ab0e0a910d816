// Package courier provides the Courier aggregate root: a delivery agent with an
// availability status, the last GPS position and the running totals credited on
// confirmed deliveries.
//
// Key business rules:
//   - Couriers must have a valid unique identifier, a name and a phone
//   - Only available couriers can be assembled into a route
//   - Completing a route releases the courier back to available
//   - Each confirmed delivery increments the counter and credits the order's fee
package courier
