// Package tasks orchestrates the extraction pipeline shared by the HTTP
// handlers and the CLI.
//
// # Pipeline
//
// A run moves an [ExtractionRequest] through five phases:
//
//  1. Validate: filename present, extension allowed, media type resolved
//  2. ExtractNames: one synchronous vision call via [services.Extractor]
//  3. Reconcile: batched registry lookup (fails open without a database)
//  4. GenerateCSV: deterministic rendering, one row per parsed name
//  5. Persist: image + CSV written under a collision-free base filename
//
// [LineupEngine.Extract] stops after phase 4 for callers that manage their
// own output (the CLI); [LineupEngine.Run] completes all five (the web
// service).
//
// # Error classification
//
// The engine is the boundary where failures become explicit kinds: bad
// uploads and empty parses wrap [shared.ErrValidation], while vision,
// registry, and filesystem failures wrap [shared.ErrExtraction]. The HTTP
// layer maps the kinds to 400/500 with errors.Is instead of a broad catch.
//
// # Progress
//
// Phases emit [ProgressUpdate] values on an optional channel. Pass nil when
// no live reporting is needed; sends are skipped entirely.
package tasks
