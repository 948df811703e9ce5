// Package domain contains the core business entities for Marknote:
// the note document and its persistence state, the AI action catalogue,
// assistant requests/results, and application settings.
//
// The domain layer has no dependencies on adapters or external services.
package domain
