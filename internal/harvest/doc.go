// Package harvest implements the bounded concurrent fetch engine: the
// slot-based pool scheduler, the per-host fetch state machine, the HTTP
// transport wrapper, and the output-path mapping and persistence helpers.
package harvest
