package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/domain/repository"
)

// registrationDoc is the stored form; _id is the composite "<userId>:<eventId>" key
// so InsertOne is a create-if-absent on the pair.
type registrationDoc struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	EventID      string    `bson:"eventId"`
	RegisteredAt time.Time `bson:"registeredAt"`
}

type RegistrationRepository struct {
	coll *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{coll: db.Collection(registrationsCollection)}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *entity.Registration) error {
	_, err := r.coll.InsertOne(ctx, registrationDoc{
		ID:           reg.Key(),
		UserID:       reg.UserID,
		EventID:      reg.EventID,
		RegisteredAt: reg.RegisteredAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *RegistrationRepository) Delete(ctx context.Context, userID, eventID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": entity.RegistrationKey(userID, eventID)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": entity.RegistrationKey(userID, eventID)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Registration, error) {
	return r.find(ctx, bson.M{"userId": userID}, bson.D{{Key: "userId", Value: 1}, {Key: "eventId", Value: 1}})
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*entity.Registration, error) {
	return r.find(ctx, bson.M{"eventId": eventID}, bson.D{{Key: "eventId", Value: 1}, {Key: "userId", Value: 1}})
}

func (r *RegistrationRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]*entity.Registration, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	var docs []registrationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*entity.Registration, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Registration{UserID: d.UserID, EventID: d.EventID, RegisteredAt: d.RegisteredAt})
	}
	return out, nil
}

func (r *RegistrationRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *RegistrationRepository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"eventId": eventID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ repository.RegistrationRepository = (*RegistrationRepository)(nil)
