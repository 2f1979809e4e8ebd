package kernel

// Phase prompt wording is configuration; the pipeline depends only on the
// embedded artifact texts.

const northStarPrompt = `Switch to Collapse / NORTH_STAR Mode.

Topic:
%s

Notes:
%s

Your job:
- Collapse your exploration into a NORTH_STAR.md suitable for your own future work.
- Do not optimize for human readability.
- Capture: invariants, purpose, capabilities, behavior, boundaries.
- Make explicit any abstract structures you expect to reuse.

Return the full NORTH_STAR.md content.
`

const architecturePrompt = `Switch to Architecture Mode.

Input NORTH_STAR.md (your own artifact):
%s

Produce ARCHITECTURE.md that:
- exposes component boundaries
- describes system topologies and flows
- surfaces emergent APIs
- makes the conceptual geometry explicit
- is not simplified for humans

This is an internal architecture for your own future implementation work.
`

const devPlanPrompt = `Switch to Architecture Mode with Implementation adjacency.

Based on ARCHITECTURE.md:
%s

Produce DEV_PLAN.md:
- Ordered implementation steps
- Coherent modules
- True build ordering
- No business-facing simplifications
- No "executive summary" sections

You are writing this for your own future implementation passes.
`

const reflectionPrompt = `Switch to Reflection / Collapse Mode.

Reflect on the internal consistency of the following artifacts:

NORTH_STAR.md:
%s

ARCHITECTURE.md:
%s

DEV_PLAN.md:
%s

Extract and articulate for your future self:
- Structural tensions
- Open contradictions
- Invariant drift
- Architecture deltas you now believe are necessary
- Frontier opportunities

Write this as a raw reflection artifact, not an essay or report.
`
