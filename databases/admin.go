package databases

// go generate: mockery --name AdminDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/havenapp/haven-api/models"
)

const adminName = "adminAccount"

// AdminDatabase holds the zero-or-one authority account. Save always
// overwrites: the account is a singleton value, not a collection.
type AdminDatabase interface {
	Get(ctx context.Context) (*models.AdminAccount, error)
	Save(ctx context.Context, account models.AdminAccount) error
}

type adminDatabase struct {
	db DatabaseHelper
}

// NewAdminDatabase initializes a new instance of admin database with the provided db connection
func NewAdminDatabase(db DatabaseHelper) AdminDatabase {
	return &adminDatabase{
		db: db,
	}
}

func (a *adminDatabase) Get(ctx context.Context) (*models.AdminAccount, error) {
	account := &models.AdminAccount{}
	err := a.db.Collection(adminName).FindOne(ctx, bson.M{}).Decode(&account)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (a *adminDatabase) Save(ctx context.Context, account models.AdminAccount) error {
	_, err := a.db.Collection(adminName).ReplaceOne(ctx, bson.M{}, account, options.Replace().SetUpsert(true))
	return err
}
