package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

const quotationsCollection = "quotations"

type QuotationRepository struct {
	coll *mongo.Collection
}

func NewQuotationRepository(db *mongo.Database) *QuotationRepository {
	return &QuotationRepository{coll: db.Collection(quotationsCollection)}
}

type quotationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"product_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Approved  bool               `bson:"approved"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *quotationDoc) toDomain() *domain.Quotation {
	return &domain.Quotation{
		ID:        d.ID.Hex(),
		ProductID: d.ProductID.Hex(),
		UserID:    d.UserID.Hex(),
		Approved:  d.Approved,
		CreatedAt: d.CreatedAt,
	}
}

func (r *QuotationRepository) Create(ctx context.Context, quotation *domain.Quotation) (*domain.Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	productOID, err := primitive.ObjectIDFromHex(quotation.ProductID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}
	userOID, err := primitive.ObjectIDFromHex(quotation.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := quotationDoc{
		ProductID: productOID,
		UserID:    userOID,
		Approved:  false,
		CreatedAt: quotation.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert quotation: %w", err)
	}

	created := *quotation
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Approved = false
	return &created, nil
}

func (r *QuotationRepository) FindByID(ctx context.Context, id string) (*domain.Quotation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuotationNotFound
	}

	var doc quotationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuotationNotFound
		}
		return nil, fmt.Errorf("find quotation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *QuotationRepository) ListByProductIDs(ctx context.Context, productIDs []string, page ports.PageRequest) ([]*domain.Quotation, int64, error) {
	oids := make([]primitive.ObjectID, 0, len(productIDs))
	for _, id := range productIDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return r.list(ctx, bson.M{"product_id": bson.M{"$in": oids}}, page)
}

func (r *QuotationRepository) ListByUserID(ctx context.Context, userID string, page ports.PageRequest) ([]*domain.Quotation, int64, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Quotation{}, 0, nil
	}
	return r.list(ctx, bson.M{"user_id": oid}, page)
}

func (r *QuotationRepository) list(ctx context.Context, filter bson.M, page ports.PageRequest) ([]*domain.Quotation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count quotations: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, findOptionsFor(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	defer cursor.Close(ctx)

	quotations := []*domain.Quotation{}
	for cursor.Next(ctx) {
		var doc quotationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode quotation: %w", err)
		}
		quotations = append(quotations, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list quotations: %w", err)
	}
	return quotations, total, nil
}

// Approve sets the approval flag. Re-approving an approved quotation
// matches the document and changes nothing.
func (r *QuotationRepository) Approve(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuotationNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"approved": true}})
	if err != nil {
		return fmt.Errorf("approve quotation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuotationNotFound
	}
	return nil
}

func (r *QuotationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
