// Package services provides domain services that implement business logic
// spanning multiple domain entities in the freight matching system.
//
// The package includes:
//   - MatchScorer: the weighted geo/economic scoring model that ranks jobs
//     against a carrier profile
//   - BackhaulScorer: the deadhead/pay heuristic that selects the best return
//     leg for an outbound job
//
// Both services are pure and stateless: identical inputs always produce
// identical outputs, which keeps rankings stable and the services safe to use
// from any number of concurrent requests.
package services
