// Package agent wraps the external reasoning service behind a narrow
// Produce boundary and layers named, conversation-owning agents on top.
//
// Each Agent instance owns exactly one conversation thread. The service's
// continuation token is threaded inside the client, never by callers, and
// concurrent calls against one instance must be serialized by the caller.
package agent
