// Package suite runs test generation over a reference model checkout.
//
// A reference directory holds one case per directory under
// vtest/<op>/<test>, each with a test.tosa graph and its input-*.npy and
// result-*.npy arrays. Discover lists the cases; Runner translates each
// graph, renders a test file per case into an output directory and records
// every outcome in the run ledger.
//
// Cases are independent. Runner fans them out to a bounded worker pool;
// outcomes are reported in discovery order regardless of completion order.
package suite
