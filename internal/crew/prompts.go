package crew

// Role prompt wording is configuration; the orchestrator depends only on
// the developer's file-block format contract.

const northStarPrompt = `MODE: Exploration -> NORTH_STAR Collapse.

Traverse the manifold implied by the following problem:

%s

Then perform epistemic compression into a NORTH_STAR.md that:
- captures invariants, roles, and system purpose
- is written for your own future use, not for humans
- avoids storytelling and focuses on structure
`

const architecturePrompt = `MODE: Architecture.

Using this NORTH_STAR.md:

%s

Produce an internal ARCHITECTURE.md that:
- decomposes into components and flows
- surfaces invariants and contracts
- makes the system geometry explicit
- is not optimized for human readability
`

const devPlanPrompt = `MODE: Architecture with implementation tilt.

Based on this ARCHITECTURE.md:

%s

Produce DEV_PLAN.md with:
- 5-15 high-leverage implementation steps
- each step being a substantial milestone
- enough internal detail that your future developer self can act
`

const implementPrompt = `MODE: Implementation.

DEV STEP:
%s

WORKSPACE SNAPSHOT (file paths only):
%s

Write the full files or modifications needed to complete this step.

Return output strictly as blocks in this format:

=== file: relative/path/to/file ===
<file contents>
=== end ===

Do not explain. Do not wrap in markdown.
`

const critiquePrompt = `MODE: Critical Reflection.

NORTH_STAR.md:
%s

ARCHITECTURE.md:
%s

STEP IMPLEMENTED:
%s

CODE GENERATED:
%s

Construct a state upload for your future self that identifies:
- structural alignment with NORTH_STAR and ARCHITECTURE
- misalignments and risks
- invariants preserved vs violated
- refactors you now believe are necessary
- the most important next refinement step

This is not a code review for humans; it is internal epistemic feedback
for future passes.
`
