// Package matching turns a validated query into a ranked candidate list.
//
// The generative path runs query enrichment, then a single matching call
// over the full catalog, then a tolerant multi-strategy parse of the raw
// response. When any part of that path fails, the orchestrator falls back to
// the pure keyword matcher, which never touches the network.
package matching
