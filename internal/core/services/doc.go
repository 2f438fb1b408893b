// Package services implements the core business logic.
// Services orchestrate operations using driven ports (infrastructure
// interfaces) and implement driving ports (use case interfaces).
package services
