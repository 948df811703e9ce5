// Package driven defines the driven (outbound) port interfaces that the
// core services depend on: the LLM boundary, configuration and prompt
// stores, note file IO, the note index, and the system clipboard.
//
// Adapters under internal/adapters/driven implement these interfaces.
package driven
