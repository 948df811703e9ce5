// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: JSON-based configuration storage
//   - PromptStore: TOML-based prompt template storage
package file
