// Package whiteboard provides immutable snapshot persistence for agent
// pipeline artifacts.
//
// A Snapshot is one raw agent upload tagged with phase, agent name, and
// project. Stores never inspect, mutate, truncate, or reformat snapshot
// text; compression and pruning are the agent's own responsibility.
//
// Two interchangeable stores exist: MemoryStore (process lifetime,
// content-addressed ids) and FileStore (durable, time-addressed ids,
// metadata encoded in the path).
package whiteboard
