package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

const userCollection = "users"

// UserStore is the MongoDB-backed user store. A unique index on username
// is expected so concurrent creates surface as duplicate-key errors.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(userCollection)}
}

type mongoPermission struct {
	Module  string   `bson:"module"`
	Actions []string `bson:"actions"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email,omitempty"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Permissions  []mongoPermission  `bson:"permissions,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Username:     domain.NormalizeUsername(user.Username),
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Permissions:  toMongoPermissions(user.Permissions),
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to get ID
	return s.FindByUsername(ctx, doc.Username)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var mu mongoUser
	filter := bson.M{"username": domain.NormalizeUsername(username)}
	if err := s.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(mu), nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(mu), nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func toMongoPermissions(perms []domain.Permission) []mongoPermission {
	if len(perms) == 0 {
		return nil
	}
	out := make([]mongoPermission, len(perms))
	for i, p := range perms {
		out[i] = mongoPermission{Module: p.Module, Actions: p.Actions}
	}
	return out
}

func fromMongoUser(mu mongoUser) *domain.User {
	perms := make([]domain.Permission, 0, len(mu.Permissions))
	for _, p := range mu.Permissions {
		perms = append(perms, domain.Permission{Module: p.Module, Actions: p.Actions})
	}

	return &domain.User{
		ID:           mu.ID.Hex(),
		Username:     mu.Username,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Permissions:  perms,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
