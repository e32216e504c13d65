package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/i-kemen/tomato-market/internal/core/domain"
	"github.com/i-kemen/tomato-market/internal/core/ports"
)

const (
	sellersCollection      = "sellers"
	applicationsCollection = "seller_applications"
)

type SellerRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{db: db, coll: db.Collection(sellersCollection)}
}

type sellerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Introduce string             `bson:"introduce"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *sellerDoc) toDomain() *domain.Seller {
	return &domain.Seller{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Introduce: d.Introduce,
		CreatedAt: d.CreatedAt,
	}
}

func (r *SellerRepository) Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(seller.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := sellerDoc{
		UserID:    userOID,
		Introduce: seller.Introduce,
		CreatedAt: seller.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadySeller
		}
		return nil, fmt.Errorf("insert seller: %w", err)
	}

	created := *seller
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSellerNotFound
	}

	var doc sellerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SellerRepository) FindByUserID(ctx context.Context, userID string) (*domain.Seller, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrSellerNotFound
	}

	var doc sellerDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSellerNotFound
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SellerRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Seller, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count sellers: %w", err)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, findOptionsFor(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list sellers: %w", err)
	}
	defer cursor.Close(ctx)

	sellers := []*domain.Seller{}
	for cursor.Next(ctx) {
		var doc sellerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode seller: %w", err)
		}
		sellers = append(sellers, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list sellers: %w", err)
	}
	return sellers, total, nil
}

func (r *SellerRepository) UpdateIntroduceByUserID(ctx context.Context, userID, introduce string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrSellerNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"user_id": oid}, bson.M{"$set": bson.M{"introduce": introduce}})
	if err != nil {
		return fmt.Errorf("update introduce: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSellerNotFound
	}
	return nil
}

// Demote deletes the seller profile and reverts the user's role to
// customer inside one session transaction. Either both writes commit or
// neither does.
func (r *SellerRepository) Demote(ctx context.Context, sellerID string) error {
	oid, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return domain.ErrSellerNotFound
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var doc sellerDoc
		if err := r.coll.FindOne(sc, bson.M{"_id": oid}).Decode(&doc); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrSellerNotFound
			}
			return nil, fmt.Errorf("find seller: %w", err)
		}

		if _, err := r.coll.DeleteOne(sc, bson.M{"_id": oid}); err != nil {
			return nil, fmt.Errorf("delete seller: %w", err)
		}

		users := r.db.Collection(usersCollection)
		update := bson.M{"$set": bson.M{"role": string(domain.RoleCustomer), "updated_at": time.Now().UTC()}}
		if _, err := users.UpdateOne(sc, bson.M{"_id": doc.UserID}, update); err != nil {
			return nil, fmt.Errorf("revert role: %w", err)
		}
		return nil, nil
	})
	return err
}

// EnsureIndexes enforces one seller profile per user.
func (r *SellerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_user_id"),
	})
	return err
}

type ApplicationRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{db: db, coll: db.Collection(applicationsCollection)}
}

type applicationDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Introduce string             `bson:"introduce"`
	Approved  bool               `bson:"approved"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d *applicationDoc) toDomain() *domain.SellerApplication {
	return &domain.SellerApplication{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Introduce: d.Introduce,
		Approved:  d.Approved,
		CreatedAt: d.CreatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.SellerApplication) (*domain.SellerApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userOID, err := primitive.ObjectIDFromHex(app.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := applicationDoc{
		UserID:    userOID,
		Introduce: app.Introduce,
		Approved:  false,
		CreatedAt: app.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}

	created := *app
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Approved = false
	return &created, nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.SellerApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	var doc applicationDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) ExistsPendingByUserID(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}

	filter := bson.M{"user_id": oid, "approved": false}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count applications: %w", err)
	}
	return count > 0, nil
}

func (r *ApplicationRepository) ListPending(ctx context.Context, page ports.PageRequest) ([]*domain.SellerApplication, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"approved": false}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, findOptionsFor(page))
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []*domain.SellerApplication{}
	for cursor.Next(ctx) {
		var doc applicationDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode application: %w", err)
		}
		apps = append(apps, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return apps, total, nil
}

// Approve marks the application approved, creates the seller profile and
// promotes the user, all inside one session transaction.
func (r *ApplicationRepository) Approve(ctx context.Context, applicationID string) (*domain.Seller, error) {
	oid, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var app applicationDoc
		if err := r.coll.FindOne(sc, bson.M{"_id": oid}).Decode(&app); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, domain.ErrApplicationNotFound
			}
			return nil, fmt.Errorf("find application: %w", err)
		}

		update := bson.M{"$set": bson.M{"approved": true}}
		if _, err := r.coll.UpdateOne(sc, bson.M{"_id": oid}, update); err != nil {
			return nil, fmt.Errorf("mark approved: %w", err)
		}

		seller := sellerDoc{
			UserID:    app.UserID,
			Introduce: app.Introduce,
			CreatedAt: time.Now().UTC(),
		}
		res, err := r.db.Collection(sellersCollection).InsertOne(sc, seller)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadySeller
			}
			return nil, fmt.Errorf("insert seller: %w", err)
		}
		seller.ID = res.InsertedID.(primitive.ObjectID)

		users := r.db.Collection(usersCollection)
		promote := bson.M{"$set": bson.M{"role": string(domain.RoleSeller), "updated_at": time.Now().UTC()}}
		if _, err := users.UpdateOne(sc, bson.M{"_id": app.UserID}, promote); err != nil {
			return nil, fmt.Errorf("promote user: %w", err)
		}
		return seller.toDomain(), nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Seller), nil
}

func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "approved", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
