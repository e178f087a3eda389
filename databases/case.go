package databases

// go generate: mockery --name CaseDatabase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/havenapp/haven-api/models"
)

const caseName = "cases"

// CaseDatabase contains the methods to use with the case collection.
// Save replaces in place when the id already exists; List preserves
// insertion order (creation timestamp survives replacement, so a
// replaced case keeps its position).
type CaseDatabase interface {
	List(ctx context.Context, pinFilter string) ([]models.Case, error)
	FindByID(ctx context.Context, id string) (*models.Case, error)
	Save(ctx context.Context, c models.Case) error
	UpdateStatus(ctx context.Context, id, status string) error
}

type caseDatabase struct {
	db DatabaseHelper
}

// NewCaseDatabase initializes a new instance of case database with the provided db connection
func NewCaseDatabase(db DatabaseHelper) CaseDatabase {
	return &caseDatabase{
		db: db,
	}
}

func (c *caseDatabase) List(ctx context.Context, pinFilter string) ([]models.Case, error) {
	filter := bson.M{}
	if pinFilter != "" {
		filter["pin"] = pinFilter
	}
	var cases []models.Case
	cr := c.db.Collection(caseName).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	err := cr.Decode(&cases)
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (c *caseDatabase) FindByID(ctx context.Context, id string) (*models.Case, error) {
	sosCase := &models.Case{}
	err := c.db.Collection(caseName).FindOne(ctx, bson.M{"_id": id}).Decode(&sosCase)
	if err != nil {
		return nil, err
	}
	return sosCase, nil
}

func (c *caseDatabase) Save(ctx context.Context, sosCase models.Case) error {
	if sosCase.ID == "" {
		return fmt.Errorf("case id must not be empty")
	}
	_, err := c.db.Collection(caseName).ReplaceOne(ctx, bson.M{"_id": sosCase.ID}, sosCase, options.Replace().SetUpsert(true))
	return err
}

// UpdateStatus sets the status and appends a single timeline event. An
// unknown id is a no-op. The read-modify-replace of the whole document
// is last-write-wins when two callers race; that matches the store
// contract, which makes no coordination promise.
func (c *caseDatabase) UpdateStatus(ctx context.Context, id, status string) error {
	sosCase, err := c.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return err
	}

	sosCase.Status = status
	sosCase.Timeline = append(sosCase.Timeline, models.TimelineEvent{
		ID:        uuid.New().String(),
		Event:     fmt.Sprintf("Status changed to %s", status),
		Timestamp: time.Now().UnixMilli(),
	})
	return c.Save(ctx, *sosCase)
}
