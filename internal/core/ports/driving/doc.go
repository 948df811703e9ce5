// Package driving defines the driving (inbound) port interfaces exposed
// by the core services to the TUI and CLI adapters.
package driving
