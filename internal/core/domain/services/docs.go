// Package services contains stateless domain services that don't belong to a
// single aggregate:
//   - RouteLinkBuilder: external navigation links for a list of stop addresses
//   - ConfirmationCodeGenerator: uniform 6-digit delivery codes from crypto/rand
//   - SettlementCalculator: fee totals of delivered orders
//   - NeighborhoodRanker: top neighborhoods and the marketing suggestion
package services
