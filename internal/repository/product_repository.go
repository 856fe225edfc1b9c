package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/models"
	"catalog-api/internal/query"
)

// Collection es el contrato que el repositorio exige del store. Se inyecta
// en la construcción; el ciclo de vida del cliente lo maneja cmd/api.
type Collection interface {
	query.Collection
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type ProductRepository struct {
	coll  Collection
	query *query.Builder
}

func NewProductRepository(coll Collection) *ProductRepository {
	return &ProductRepository{
		coll:  coll,
		query: query.NewBuilder(coll),
	}
}

// Create inserta un documento nuevo. El store asigna el identificador y el
// repositorio mantiene createdAt/updatedAt.
func (r *ProductRepository) Create(ctx context.Context, payload map[string]any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := bson.M{}
	for k, v := range payload {
		doc[k] = v
	}
	delete(doc, "id")

	now := time.Now().UTC()
	doc["_id"] = primitive.NewObjectID()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, apperrors.FromStore(err)
	}

	return toProduct(doc), nil
}

// FindByID obtiene un documento por su id hexadecimal.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Un id mal formado no puede referir a ningún documento.
		return nil, apperrors.ErrNotFound
	}

	var doc bson.M
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, apperrors.FromStore(err)
	}

	return toProduct(doc), nil
}

// Update aplica un $set parcial y falla rápido si el id no existe.
// El identificador es inmutable: se descarta del payload si vino.
func (r *ProductRepository) Update(ctx context.Context, id string, payload map[string]any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	update := bson.M{}
	for k, v := range payload {
		update[k] = v
	}
	delete(update, "id")
	delete(update, "_id")
	update["updatedAt"] = time.Now().UTC()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete borra por id. Es idempotente: borrar un id inexistente (o mal
// formado) también es éxito, el estado final es el mismo.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return apperrors.FromStore(err)
	}
	return nil
}

// List delega en el query builder y arma el sobre de paginación.
func (r *ProductRepository) List(ctx context.Context, opts models.ListOptions) (*models.Page, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts.Normalize()
	docs, total, err := r.query.Page(ctx, opts)
	if err != nil {
		return nil, err
	}

	items := make([]models.Product, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toProduct(doc))
	}

	return models.NewPage(items, opts, total), nil
}

// toProduct expone el documento del store en la forma que viaja por la API:
// _id pasa a "id" hexadecimal y las fechas vuelven a time.Time.
func toProduct(doc bson.M) models.Product {
	product := models.Product{}
	for k, v := range doc {
		product[k] = v
	}

	if oid, ok := product["_id"].(primitive.ObjectID); ok {
		product["id"] = oid.Hex()
	}
	delete(product, "_id")

	for _, key := range []string{"createdAt", "updatedAt"} {
		if dt, ok := product[key].(primitive.DateTime); ok {
			product[key] = dt.Time().UTC()
		}
	}

	return product
}
