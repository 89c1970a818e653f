// Package services holds the shared error taxonomy for external-service
// integrations along with the clients themselves in subpackages.
//
// Every stage of the discovery pipeline reports failures through the sentinel
// errors defined here so the orchestrator can pick a fallback branch with
// errors.Is instead of relying on panic/recover control flow.
package services
