package ports

import (
	"context"

	"github.com/bnema/riot-accounts-cli/internal/domain"
)

// SnapshotStore persists the whole account snapshot. Load never fails at the
// application boundary: a missing or unrecoverable file yields an empty
// default snapshot.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
}
