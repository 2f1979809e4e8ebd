// Package crew orchestrates four agent roles (architect, planner,
// developer, critic) over one whiteboard: north star, architecture, and
// dev plan first, then an implementation/critique loop per plan step.
//
// Step segmentation and file-change parsing are deliberately lenient,
// marker-based text protocols: malformed input is skipped, never an
// error, because the input is agent-produced text.
package crew
