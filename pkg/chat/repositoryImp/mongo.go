package repositoryImp

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"kisan/entities"
	"kisan/pkg/apperr"
	"kisan/pkg/chat/repository"
)

const MessagesCollection = "messages"

type mongoRepo struct{ col *mongo.Collection }

func NewMongo(db *mongo.Database) repository.MessageRepository {
	return &mongoRepo{col: db.Collection(MessagesCollection)}
}

// EnsureIndexes creates the thread and timestamp indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(MessagesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "receiver", Value: 1}}},
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
	})
	return err
}

func involving(uid string) bson.M {
	return bson.M{"$or": bson.A{bson.M{"sender": uid}, bson.M{"receiver": uid}}}
}

func (r *mongoRepo) Create(ctx context.Context, m *entities.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return apperr.Internal("save message", err)
	}
	return nil
}

func (r *mongoRepo) find(ctx context.Context, what string, filter bson.M, sort int) ([]entities.Message, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: sort}}))
	if err != nil {
		return nil, apperr.Internal(what, err)
	}
	out := []entities.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Internal(what, err)
	}
	return out, nil
}

func (r *mongoRepo) Thread(ctx context.Context, a, b string) ([]entities.Message, error) {
	return r.find(ctx, "load thread", bson.M{"$or": bson.A{
		bson.M{"sender": a, "receiver": b},
		bson.M{"sender": b, "receiver": a},
	}}, 1)
}

func (r *mongoRepo) MarkRead(ctx context.Context, sender, receiver string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"sender": sender, "receiver": receiver, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, apperr.Internal("mark read", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoRepo) Unread(ctx context.Context, uid string) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"receiver": uid, "read": false})
	if err != nil {
		return 0, apperr.Internal("count unread", err)
	}
	return n, nil
}

func (r *mongoRepo) Involving(ctx context.Context, uid string) ([]entities.Message, error) {
	return r.find(ctx, "list conversations", involving(uid), -1)
}

func (r *mongoRepo) DeleteFor(ctx context.Context, uid string) error {
	if _, err := r.col.DeleteMany(ctx, involving(uid)); err != nil {
		return apperr.Internal("delete messages", err)
	}
	return nil
}
