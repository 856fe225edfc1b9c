// Package query traduce las opciones de listado a una lectura paginada y
// ordenada contra la colección, más el conteo total del subconjunto filtrado.
package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"catalog-api/internal/apperrors"
	"catalog-api/internal/models"
)

// Collection es la vista mínima del store que necesita el builder.
// *mongo.Collection la satisface; los tests usan un fake.
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type Builder struct {
	coll Collection
}

func NewBuilder(coll Collection) *Builder {
	return &Builder{coll: coll}
}

// BuildFilter arma el predicado de igualdad: cada filtro compone con AND.
// Un documento sin el campo filtrado queda excluido (semántica de mongo).
func BuildFilter(filters map[string]string) bson.M {
	filter := bson.M{}
	for field, value := range filters {
		filter[field] = value
	}
	return filter
}

// BuildFindOptions arma sort, skip y limit para la página pedida.
// El orden lleva _id como desempate para que la paginación sea estable.
func BuildFindOptions(opts models.ListOptions) *options.FindOptions {
	direction := -1
	if opts.SortOrder == "asc" {
		direction = 1
	}

	findOpts := options.Find()
	findOpts.SetSort(bson.D{
		{Key: opts.SortBy, Value: direction},
		{Key: "_id", Value: 1},
	})
	findOpts.SetSkip(opts.Offset())
	findOpts.SetLimit(int64(opts.Limit))
	return findOpts
}

// Page ejecuta la página de documentos y el conteo total. El conteo corre en
// paralelo con la búsqueda y se calcula sobre el mismo filtro, así que
// totalItems refleja el subconjunto filtrado. No hay snapshot transaccional:
// bajo escrituras concurrentes el total puede quedar desfasado de los items.
func (b *Builder) Page(ctx context.Context, opts models.ListOptions) ([]bson.M, int64, error) {
	opts.Normalize()
	filter := BuildFilter(opts.Filters)

	totalCh := make(chan int64, 1)
	errCh := make(chan error, 1)

	go func() {
		total, err := b.coll.CountDocuments(ctx, filter)
		if err != nil {
			errCh <- err
			return
		}
		totalCh <- total
	}()

	cursor, err := b.coll.Find(ctx, filter, BuildFindOptions(opts))
	if err != nil {
		return nil, 0, apperrors.FromStore(err)
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, apperrors.FromStore(err)
	}

	select {
	case total := <-totalCh:
		return docs, total, nil
	case err := <-errCh:
		return nil, 0, apperrors.FromStore(err)
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	}
}
