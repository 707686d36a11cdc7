package requests

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "requests"

var newestFirstSort = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type document struct {
	ID        primitive.ObjectID `bson:"_id"`
	FullName  string             `bson:"fullName"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Service   string             `bson:"service"`
	Message   string             `bson:"message"`
	Status    Status             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// newDocument stamps r with a fresh ObjectID and now, truncated to the
// millisecond precision of BSON dates.
func newDocument(r NewRequest, now time.Time) document {
	ts := now.UTC().Truncate(time.Millisecond)
	return document{
		ID:        primitive.NewObjectID(),
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		Service:   r.Service,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (d document) request() Request {
	return Request{
		ID:        ID(d.ID.Hex()),
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		Service:   d.Service,
		Message:   d.Message,
		Status:    d.Status,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// MongoStore keeps requests in the "requests" collection of a MongoDB database.
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoStore creates a MongoStore over db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(collectionName),
		now:  time.Now,
	}
}

// EnsureIndexes creates the listing indexes if they do not already exist.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    newestFirstSort,
			Options: options.Index().SetName("idx_requests_created_at"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "createdAt", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_requests_status_created_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("create request indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, r NewRequest) (Request, error) {
	doc := newDocument(r, s.now())

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Request{}, ErrDuplicate
		}
		return Request{}, fmt.Errorf("insert request: %w", err)
	}
	return doc.request(), nil
}

func (s *MongoStore) Count(ctx context.Context) (int, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return int(n), nil
}

func (s *MongoStore) Find(ctx context.Context, skip, limit int) ([]Request, error) {
	opts := options.Find().
		SetSort(newestFirstSort).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}

	out := make([]Request, len(docs))
	for i, d := range docs {
		out[i] = d.request()
	}
	return out, nil
}
