package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wandwbot/wandw/wandw/database"
	"github.com/wandwbot/wandw/wandw/database/models"
)

const playersCollection = "players"

type playerRepository struct {
	store mongoStore[*models.Player]
}

func NewPlayerRepository(db *database.DB) PlayerRepository {
	coll := db.Collection(playersCollection)
	return &playerRepository{
		store: newMongoStore(coll, "player", func() *models.Player { return new(models.Player) }),
	}
}

// EnsurePlayerIndexes creates the secondary index backing the membership
// scans. Safe to call on every startup.
func EnsurePlayerIndexes(ctx context.Context, db *database.DB) error {
	_, err := db.Collection(playersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "adventure_id", Value: 1}, {Key: "joined_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create player indexes: %w", err)
	}
	return nil
}

func (r *playerRepository) Get(ctx context.Context, id string) (*models.Player, error) {
	return r.store.get(ctx, id)
}

func (r *playerRepository) Create(ctx context.Context, player *models.Player) error {
	return r.store.create(ctx, player)
}

func (r *playerRepository) Update(ctx context.Context, player *models.Player) error {
	return r.store.update(ctx, player)
}

func (r *playerRepository) GetAll(ctx context.Context) (Iterator[*models.Player], error) {
	return r.store.scan(ctx, bson.M{}, nil)
}

func (r *playerRepository) GetAdventuring(ctx context.Context) (Iterator[*models.Player], error) {
	return r.store.scan(ctx, bson.M{"adventure_id": bson.M{"$exists": true, "$ne": ""}}, nil)
}

func (r *playerRepository) GetByAdventure(ctx context.Context, adventureID string) (Iterator[*models.Player], error) {
	return r.store.scan(ctx,
		bson.M{"adventure_id": adventureID},
		bson.D{{Key: "joined_at", Value: 1}})
}
