// Package services implements the driving ports: the document session
// model, the AI assistant dispatcher, the notes library, and settings.
package services
