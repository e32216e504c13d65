package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/i-kemen/tomato-market/internal/infrastructure/db/mongo"
)

// ensureIndexes bootstraps the indexes every repository relies on. Unique
// indexes back the signup and one-seller-per-user invariants.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewSellerRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewProductRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewQuotationRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewApplicationRepository(db).EnsureIndexes(ctx)
}
