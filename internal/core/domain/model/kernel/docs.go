// Package kernel provides the value objects shared by every aggregate of the
// route assembly domain:
//   - UUID: identifiers with validation and comparison
//   - GeoPoint: validated latitude/longitude pairs from courier devices
//   - Money: non-negative cent-precision amounts for fees, balances and settlements
package kernel
