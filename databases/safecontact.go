package databases

// go generate: mockery --name SafeContactDatabase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/havenapp/haven-api/models"
)

const safeContactName = "safeContacts"

// SafeContactDatabase contains the methods to use with the safe contact collection
type SafeContactDatabase interface {
	List(ctx context.Context) ([]models.SafeContact, error)
	Save(ctx context.Context, contact models.SafeContact) error
	Delete(ctx context.Context, id string) error
}

type safeContactDatabase struct {
	db DatabaseHelper
}

// NewSafeContactDatabase initializes a new instance of safe contact database with the provided db connection
func NewSafeContactDatabase(db DatabaseHelper) SafeContactDatabase {
	return &safeContactDatabase{
		db: db,
	}
}

func (s *safeContactDatabase) List(ctx context.Context) ([]models.SafeContact, error) {
	var contacts []models.SafeContact
	cr := s.db.Collection(safeContactName).Find(ctx, bson.M{})
	err := cr.Decode(&contacts)
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *safeContactDatabase) Save(ctx context.Context, contact models.SafeContact) error {
	if contact.ID == "" {
		return fmt.Errorf("safe contact id must not be empty")
	}
	_, err := s.db.Collection(safeContactName).ReplaceOne(ctx, bson.M{"_id": contact.ID}, contact, options.Replace().SetUpsert(true))
	return err
}

func (s *safeContactDatabase) Delete(ctx context.Context, id string) error {
	_, err := s.db.Collection(safeContactName).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
