// Package component manages the lifecycle of long-lived infrastructure
// (HTTP server, storage client, metrics exporter). Components start in
// registration order and stop in reverse.
package component
