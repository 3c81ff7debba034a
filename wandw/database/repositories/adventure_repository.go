package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/wandwbot/wandw/wandw/database"
	"github.com/wandwbot/wandw/wandw/database/models"
)

const adventuresCollection = "adventures"

type adventureRepository struct {
	store mongoStore[*models.Adventure]
}

func NewAdventureRepository(db *database.DB) AdventureRepository {
	coll := db.Collection(adventuresCollection)
	return &adventureRepository{
		store: newMongoStore(coll, "adventure", func() *models.Adventure { return new(models.Adventure) }),
	}
}

func (r *adventureRepository) Get(ctx context.Context, id string) (*models.Adventure, error) {
	return r.store.get(ctx, id)
}

func (r *adventureRepository) Create(ctx context.Context, adventure *models.Adventure) error {
	return r.store.create(ctx, adventure)
}

func (r *adventureRepository) Update(ctx context.Context, adventure *models.Adventure) error {
	return r.store.update(ctx, adventure)
}

func (r *adventureRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

func (r *adventureRepository) GetAll(ctx context.Context) (Iterator[*models.Adventure], error) {
	return r.store.scan(ctx, bson.M{}, nil)
}
