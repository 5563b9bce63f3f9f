// Package export renders cleaning results to durable JSON artifacts: a
// chunks document, a sections document, and an audit log. Formats are JSON
// (one document object) and JSON Lines (one record per line, for streaming
// ingestion). Field names match the wire shapes of the chunk, section, and
// audit types so downstream indexers can consume the files directly.
package export
