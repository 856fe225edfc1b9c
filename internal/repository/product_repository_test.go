package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/models"
)

// fakeCollection implementa Collection con comportamiento configurable.
type fakeCollection struct {
	insertedDoc bson.M
	insertErr   error

	findOneDoc bson.M
	findOneErr error

	updateFilter  interface{}
	updateDoc     interface{}
	updateErr     error
	matchedCount  int64

	deleteFilter interface{}
	deleteErr    error
	deletedCount int64

	findDocs []interface{}
	findErr  error
	count    int64
	countErr error
}

func (f *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if doc, ok := document.(bson.M); ok {
		f.insertedDoc = doc
	}
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return &mongo.InsertOneResult{InsertedID: f.insertedDoc["_id"]}, nil
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	if f.findOneErr != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, f.findOneErr, nil)
	}
	return mongo.NewSingleResultFromDocument(f.findOneDoc, nil, nil)
}

func (f *fakeCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.updateFilter = filter
	f.updateDoc = update
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &mongo.UpdateResult{MatchedCount: f.matchedCount, ModifiedCount: f.matchedCount}, nil
}

func (f *fakeCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	f.deleteFilter = filter
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &mongo.DeleteResult{DeletedCount: f.deletedCount}, nil
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	docs := f.findDocs
	if docs == nil {
		docs = []interface{}{}
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakeCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return f.count, f.countErr
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	coll := &fakeCollection{}
	repo := NewProductRepository(coll)

	product, err := repo.Create(context.Background(), map[string]any{
		"name":       "Widget",
		"pricing":    map[string]any{"basePrice": 9.99},
		"categories": map[string]any{"primary": "Misc"},
	})
	require.NoError(t, err)

	id, ok := product["id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, id)
	assert.NotContains(t, product, "_id")
	assert.Equal(t, "Widget", product["name"])
	assert.IsType(t, time.Time{}, product["createdAt"])
	assert.IsType(t, time.Time{}, product["updatedAt"])

	// el documento persistido lleva _id generado, no "id"
	require.NotNil(t, coll.insertedDoc)
	assert.IsType(t, primitive.ObjectID{}, coll.insertedDoc["_id"])
	assert.NotContains(t, coll.insertedDoc, "id")
}

func TestCreateDiscardsClientSuppliedID(t *testing.T) {
	coll := &fakeCollection{}
	repo := NewProductRepository(coll)

	product, err := repo.Create(context.Background(), map[string]any{
		"id":   "forged",
		"name": "Widget",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "forged", product["id"])
}

func TestCreateStoreError(t *testing.T) {
	coll := &fakeCollection{insertErr: errors.New("disk full")}
	repo := NewProductRepository(coll)

	_, err := repo.Create(context.Background(), map[string]any{"name": "Widget"})
	var serr *apperrors.StoreError
	require.ErrorAs(t, err, &serr)
}

func TestFindByID(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{findOneDoc: bson.M{"_id": oid, "name": "Widget"}}
	repo := NewProductRepository(coll)

	product, err := repo.FindByID(context.Background(), oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), product["id"])
	assert.Equal(t, "Widget", product["name"])
}

func TestFindByIDNotFound(t *testing.T) {
	coll := &fakeCollection{findOneErr: mongo.ErrNoDocuments}
	repo := NewProductRepository(coll)

	_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFindByIDMalformedID(t *testing.T) {
	coll := &fakeCollection{}
	repo := NewProductRepository(coll)

	_, err := repo.FindByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateSetsFieldsAndRefreshesTimestamp(t *testing.T) {
	oid := primitive.NewObjectID()
	coll := &fakeCollection{
		matchedCount: 1,
		findOneDoc:   bson.M{"_id": oid, "name": "Widget v2"},
	}
	repo := NewProductRepository(coll)

	product, err := repo.Update(context.Background(), oid.Hex(), map[string]any{
		"name": "Widget v2",
		"id":   "should-be-ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", product["name"])

	update, ok := coll.updateDoc.(bson.M)
	require.True(t, ok)
	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Widget v2", set["name"])
	assert.NotContains(t, set, "id")
	assert.NotContains(t, set, "_id")
	assert.Contains(t, set, "updatedAt")
}

func TestUpdateNotFoundFailsFast(t *testing.T) {
	coll := &fakeCollection{matchedCount: 0}
	repo := NewProductRepository(coll)

	_, err := repo.Update(context.Background(), primitive.NewObjectID().Hex(), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	coll := &fakeCollection{deletedCount: 1}
	repo := NewProductRepository(coll)

	id := primitive.NewObjectID().Hex()
	require.NoError(t, repo.Delete(context.Background(), id))

	// segunda pasada: ya no existe, sigue siendo éxito
	coll.deletedCount = 0
	require.NoError(t, repo.Delete(context.Background(), id))

	// id mal formado tampoco es error
	require.NoError(t, repo.Delete(context.Background(), "garbage"))
}

func TestDeleteStoreError(t *testing.T) {
	coll := &fakeCollection{deleteErr: errors.New("boom")}
	repo := NewProductRepository(coll)

	err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())
	var serr *apperrors.StoreError
	require.ErrorAs(t, err, &serr)
}

func TestListAssemblesEnvelope(t *testing.T) {
	oid1 := primitive.NewObjectID()
	oid2 := primitive.NewObjectID()
	coll := &fakeCollection{
		findDocs: []interface{}{
			bson.M{"_id": oid1, "name": "a"},
			bson.M{"_id": oid2, "name": "b"},
		},
		count: 25,
	}
	repo := NewProductRepository(coll)

	page, err := repo.List(context.Background(), models.ListOptions{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, int64(25), page.TotalItems)
	assert.Equal(t, int64(13), page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, oid1.Hex(), page.Items[0]["id"])
}

func TestListPropagatesStoreError(t *testing.T) {
	coll := &fakeCollection{findErr: errors.New("heterogeneous sort key")}
	repo := NewProductRepository(coll)

	_, err := repo.List(context.Background(), models.ListOptions{Page: 1, Limit: 10})
	var serr *apperrors.StoreError
	require.ErrorAs(t, err, &serr)
}
