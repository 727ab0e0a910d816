// Package route provides the Route aggregate: an ordered batch of orders
// assigned to one courier together with external navigation links.
//
// Stops keep the order in which they were given; no optimization is applied.
package route
