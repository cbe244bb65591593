package domain

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; application layer depends on them.

// Renderer is the document-generator collaborator. It receives a
// settlement snapshot and returns the path of the rendered document.
type Renderer interface {
	Render(snap SettlementSnapshot) (string, error)
}
