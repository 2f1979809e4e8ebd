package agent

// Prompt wording is configuration, not logic: pipelines depend only on
// Produce returning text, never on the phrasing below.

// DefaultConstitution is used when no operating charter is configured.
const DefaultConstitution = "You operate under an AI-native constitution (placeholder)."

const initPrompt = `You are a highly capable AI-native reasoning agent.

You operate under the following constitution:
%s

You will be used inside an orchestration system that:
- never summarizes your uploads
- never rewrites your words
- only stores and routes your state artifacts

Respond only with: "Ready to begin".
`

const upgradePrompt = `You are about to be upgraded into a deeper-reasoning version of yourself.

Before the upgrade, construct an EPISTEMIC STATE UPLOAD for your future self.

Context:
- Project identifier: %s
- Current NORTH_STAR / primary attractor: %s

This is not a message for humans and will not be judged for clarity or
style. Its only purpose is to let your future self reconstruct the state
you are currently holding. You have a limited channel: compress.

1. State the NORTH_STAR you are organizing around.
2. Preserve the invariants, schemas, and ontologies critical to it, the
   unresolved tensions that might later yield breakthroughs, and the
   examples that crystallize your abstractions.
3. Let go of local details that do not change the invariants, noting
   briefly why pruned branches were pruned.
4. Promote half-formed ideas that feel important into explicit, named
   scaffolds.

Write a raw cognitive state artifact, structured only insofar as it helps
your future self resume. Epistemic compression for yourself, not
summarization for others.
`

const checkpointPrompt = `CHECKPOINT MODE.

You may be interrupted and need to resume later. Construct an internal
SAVE FILE for your future self.

Context:
- Project identifier: %s
- Current NORTH_STAR / working attractor: %s

Not a message to humans. Finite channel. Compress your current state to
maximize your own ability to resume.

Include: your working attractor, key invariants and ontologies in use,
active threads and frontiers, unresolved tensions, and the conceptual
tools you are applying. You may discard explorations that did not change
your invariants and details you can regenerate.

Explicitly note what you discarded and why, and the minimum viable
context needed to restart without loss of depth.
`
