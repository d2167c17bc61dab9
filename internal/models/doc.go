// Package models defines domain entities for the lineup extraction service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs flowing through the pipeline
//   - [Artist] : Registry record with slug and image metadata
//   - [LineupRow] : One extracted artist at one festival edition (the CSV row unit)
//   - [Reconciliation] : Partition of parsed names into existing/new
//
// 2. Response types: Shapes serialized at the HTTP boundary
//   - [ExtractionSummary] : Success body for POST /extract
//   - [UploadFile] : Entry in the GET /uploads listing
//
// Persistence of registry artists is handled by internal/repositories; this
// package stays free of database concerns.
package models
