// Package catalog implements the query engine: a fixed set of named,
// read-only queries resolved against the recipe store. Every failure is
// classified into the model error taxonomy before it leaves this package.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"recipedex/internal/storage"
	"recipedex/pkg/model"
)

// APIVersion is the value reported to clients for capability negotiation.
const APIVersion = "0.1"

// Service is the query surface exposed to transports.
type Service interface {
	APIVersion() string
	Recipes(ctx context.Context) ([]model.Recipe, error)
	Recipe(ctx context.Context, title string) (model.Recipe, error)
}

// Engine resolves queries against a RecipeStore. It holds no mutable state
// and is safe for concurrent use; the store handle is only ever read.
type Engine struct {
	store storage.RecipeStore
}

// NewEngine creates a new query engine on top of the given store.
func NewEngine(store storage.RecipeStore) *Engine {
	return &Engine{store: store}
}

// APIVersion returns the constant API version. No I/O, never fails.
func (e *Engine) APIVersion() string {
	return APIVersion
}

// Recipes returns every decodable recipe in the collection, in the store's
// natural iteration order. The read is all-or-nothing: a scan failure or a
// single malformed document aborts the whole query with a DbError.
func (e *Engine) Recipes(ctx context.Context) ([]model.Recipe, error) {
	docs, err := e.store.FindAll(ctx)
	if err != nil {
		return nil, model.WrapDbError(err)
	}

	recipes := make([]model.Recipe, 0, len(docs))
	for _, doc := range docs {
		recipe, err := model.DecodeRecipe(doc)
		if err != nil {
			return nil, model.WrapDbError(err)
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// Recipe returns the recipe whose title exactly matches the given value.
// When several documents share a title, the store's first match wins; no
// secondary disambiguation is attempted.
func (e *Engine) Recipe(ctx context.Context, title string) (model.Recipe, error) {
	slog.Info("Looking up recipe", "title", title)

	doc, err := e.store.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Recipe{}, &model.AppError{Kind: model.NotFoundError}
		}
		return model.Recipe{}, model.WrapDbError(err)
	}

	recipe, err := model.DecodeRecipe(doc)
	if err != nil {
		return model.Recipe{}, model.WrapDbError(err)
	}

	return recipe, nil
}
