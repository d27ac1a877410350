package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lamsaclean/site-api/internal/core/domain"
)

const contactCollection = "contact_messages"

// ContactStore persists contact-form submissions to MongoDB.
type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection(contactCollection)}
}

type mongoContactMessage struct {
	Name       string `bson:"name"`
	Email      string `bson:"email"`
	Phone      string `bson:"phone,omitempty"`
	Message    string `bson:"message"`
	ReceivedAt int64  `bson:"received_at"`
}

func (s *ContactStore) Save(ctx context.Context, msg *domain.ContactMessage) error {
	doc := mongoContactMessage{
		Name:       msg.Name,
		Email:      msg.Email,
		Phone:      msg.Phone,
		Message:    msg.Message,
		ReceivedAt: msg.ReceivedAt.Unix(),
	}

	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		msg.ID = oid.Hex()
	}
	return nil
}
