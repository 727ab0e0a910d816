// Package order provides the Order aggregate root of the delivery lifecycle.
//
// The package includes:
//   - Order: store, customer and commercial data with the status machine and timestamps
//   - Status: the lifecycle states and the allowed transitions between them
//   - ConfirmationCode: the 6-digit one-time code proving physical delivery
//
// Key business rules:
//   - Orders start Pending with an expected delivery of preparation time + 20 minutes
//   - Route assembly moves Pending orders to Accepted and assigns the courier
//   - Delivered is reached only by matching the confirmation code, once
//   - Delivered and Cancelled are terminal
package order
