// Package docspool is the shipped document-generator collaborator. It
// renders settlement snapshots as JSON files into a spool directory and
// returns the file path; a real layout engine can replace it behind the
// same interface.
package docspool

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/lumistudio/pos/internal/domain"
)

// Spool writes settlement documents under a single directory.
type Spool struct {
	dir string
}

// New creates the spool directory if needed.
func New(dir string) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docspool: %w", err)
	}
	return &Spool{dir: dir}, nil
}

// Render writes the snapshot and returns the document path. The file
// name carries the receipt id plus a uuid so repeated renders of the
// same receipt never collide.
func (s *Spool) Render(snap domain.SettlementSnapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("docspool: encode snapshot: %w", err)
	}
	name := fmt.Sprintf("%s-%s.json", snap.ReceiptID, uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("docspool: write document: %w", err)
	}
	return path, nil
}
