package database

import (
	"context"

	"medcart-agent/catalog"
	apperrors "medcart-agent/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	parentCollection   = "parent"
	childrenCollection = "children"
)

// MongoStore implements catalog.Store on top of the two-collection
// parent/children schema.
type MongoStore struct {
	client   *mongo.Client
	parents  *mongo.Collection
	children *mongo.Collection
	logger   *zap.Logger
}

func NewMongoStore(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.WrapError(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, apperrors.WrapError(err, "ping mongodb")
	}
	logger.Info("Connected to MongoDB", zap.String("database", dbName))

	db := client.Database(dbName)
	return &MongoStore{
		client:   client,
		parents:  db.Collection(parentCollection),
		children: db.Collection(childrenCollection),
		logger:   logger,
	}, nil
}

// FetchParents returns every parent record, projecting only the fields the
// filter matches against.
func (s *MongoStore) FetchParents(ctx context.Context) ([]catalog.ParentRecord, error) {
	projection := bson.D{
		{Key: "_id", Value: 0},
		{Key: "Parent_id", Value: 1},
		{Key: "Category", Value: 1},
		{Key: "Medical Features", Value: 1},
		{Key: "Tags", Value: 1},
		{Key: "Nutritional Info", Value: 1},
	}
	cursor, err := s.parents.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrStoreOperation, "query parent collection: %v", err)
	}
	defer cursor.Close(ctx)

	var parents []catalog.ParentRecord
	if err := cursor.All(ctx, &parents); err != nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrStoreOperation, "decode parent records: %v", err)
	}
	return parents, nil
}

// FetchChildren returns every child record as a free-form document, with the
// internal _id stripped.
func (s *MongoStore) FetchChildren(ctx context.Context) ([]catalog.ChildRecord, error) {
	projection := bson.D{{Key: "_id", Value: 0}}
	cursor, err := s.children.Find(ctx, bson.D{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrStoreOperation, "query children collection: %v", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.WrapErrorf(apperrors.ErrStoreOperation, "decode child records: %v", err)
	}

	children := make([]catalog.ChildRecord, 0, len(docs))
	for _, doc := range docs {
		children = append(children, catalog.ChildRecord(doc))
	}
	return children, nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
