// Package core provides the business logic for the guarantee service.
//
// This package is the heart of the application, containing all domain
// logic independent of any transport layer. It can be used by HTTP
// handlers, CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Domain types: Guarantee, Review, File and Actor, plus the status
//     and type enumerations that drive the workflow.
//   - Store: the persistence contract. The repository package provides
//     the Postgres implementation; tests use an in-memory fake.
//   - Service: the entry point for every operation (file ingestion,
//     guarantee lifecycle transitions, queries).
//   - Ingestion pipeline: ParseRecords decodes CSV/JSON/XML payloads
//     into flat records, MapFields resolves source column aliases to
//     the canonical guarantee fields, and ProcessFile validates and
//     persists each record with per-row failure accounting.
//
// # Workflow
//
// A guarantee starts in draft and moves through review, applied and
// issued, or is rejected out of review/applied. Draft and rejected
// guarantees can be deleted. Every transition is guarded by the acting
// actor's role or ownership; a guard that does not hold is reported as
// a false result, never as an error. Status changes that touch the
// paired Review record run inside a single store transaction.
package core
