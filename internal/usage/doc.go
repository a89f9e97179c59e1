// Package usage holds the usage-analytics data types returned by the
// generation service's usage endpoint and renders human-readable reports
// over them. The data is consumed read-only; the service owns its
// computation.
package usage
