package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
)

// ClubRepository embeds updates in the club document and grows them with $push.
type ClubRepository struct {
	coll *mongo.Collection
}

func NewClubRepository(db *mongo.Database) *ClubRepository {
	return &ClubRepository{coll: db.Collection(clubsCollection)}
}

func (r *ClubRepository) Create(ctx context.Context, c *entity.Club) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Updates == nil {
		c.Updates = []entity.ClubUpdate{}
	}
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("club %s: %w", c.ID, repository.ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *ClubRepository) GetByID(ctx context.Context, id string) (*entity.Club, error) {
	var c entity.Club
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if c.Updates == nil {
		c.Updates = []entity.ClubUpdate{}
	}
	return &c, nil
}

func (r *ClubRepository) List(ctx context.Context) ([]*entity.Club, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	clubs := make([]*entity.Club, 0)
	if err := cur.All(ctx, &clubs); err != nil {
		return nil, err
	}
	for _, c := range clubs {
		if c.Updates == nil {
			c.Updates = []entity.ClubUpdate{}
		}
	}
	return clubs, nil
}

func (r *ClubRepository) Update(ctx context.Context, c *entity.Club) error {
	res, err := r.coll.UpdateByID(ctx, c.ID, bson.M{"$set": bson.M{
		"name":        c.Name,
		"description": c.Description,
		"contactInfo": c.ContactInfo,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ClubRepository) AppendUpdate(ctx context.Context, clubID string, u entity.ClubUpdate) error {
	res, err := r.coll.UpdateByID(ctx, clubID, bson.M{
		"$push": bson.M{"updates": u},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ClubRepository = (*ClubRepository)(nil)
