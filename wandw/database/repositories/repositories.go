package repositories

import (
	"context"

	"github.com/wandwbot/wandw/wandw/database/models"
)

// PlayerRepository stores players keyed by Discord user id. Update is a
// compare-and-swap on the version token and returns ErrVersionConflict when
// the stored entity has moved on. Players are never deleted.
type PlayerRepository interface {
	Get(ctx context.Context, id string) (*models.Player, error)
	Create(ctx context.Context, player *models.Player) error
	Update(ctx context.Context, player *models.Player) error
	// GetAll scans every player.
	GetAll(ctx context.Context) (Iterator[*models.Player], error)
	// GetAdventuring scans players currently on any adventure.
	GetAdventuring(ctx context.Context) (Iterator[*models.Player], error)
	// GetByAdventure scans the members of one adventure, ordered by join time.
	GetByAdventure(ctx context.Context, adventureID string) (Iterator[*models.Player], error)
}

// AdventureRepository stores adventures keyed by channel id.
type AdventureRepository interface {
	Get(ctx context.Context, id string) (*models.Adventure, error)
	Create(ctx context.Context, adventure *models.Adventure) error
	Update(ctx context.Context, adventure *models.Adventure) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) (Iterator[*models.Adventure], error)
}
