package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/havenapp/haven-api/databases"
	"github.com/havenapp/haven-api/databases/mocks"
	"github.com/havenapp/haven-api/models"
)

func TestSessionDatabase_GetDefaultsToZeroState(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(mongo.ErrNoDocuments)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"_id": "session"}).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "session").Return(collectionHelper)

	sessionDba := databases.NewSessionDatabase(dbHelper)

	state, err := sessionDba.Get(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &models.SessionState{}, state)
}

func TestSessionDatabase_VictimLoginSetsFlags(t *testing.T) {
	dbHelper, collectionHelper, captured := sessionMocks(t, models.SessionState{})

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.VictimLogin(context.Background(), "+91 98765 43210")

	assert.NoError(t, err)
	assert.True(t, captured().VictimAuthenticated)
	assert.Equal(t, "+91 98765 43210", captured().VictimPhone)
	collectionHelper.AssertExpectations(t)
}

func TestSessionDatabase_VictimLogoutClearsPin(t *testing.T) {
	dbHelper, _, captured := sessionMocks(t, models.SessionState{
		VictimAuthenticated: true,
		VictimPhone:         "+91 98765 43210",
		SessionPin:          "1234",
	})

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.VictimLogout(context.Background())

	assert.NoError(t, err)
	assert.False(t, captured().VictimAuthenticated)
	assert.Empty(t, captured().VictimPhone)
	assert.Empty(t, captured().SessionPin)
}

func TestSessionDatabase_AdminLogoutLeavesVictimState(t *testing.T) {
	dbHelper, _, captured := sessionMocks(t, models.SessionState{
		AdminLoggedIn:       true,
		VictimAuthenticated: true,
		SessionPin:          "4321",
	})

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.AdminLogout(context.Background())

	assert.NoError(t, err)
	assert.False(t, captured().AdminLoggedIn)
	assert.True(t, captured().VictimAuthenticated)
	assert.Equal(t, "4321", captured().SessionPin)
}

func TestSessionDatabase_SetPin(t *testing.T) {
	dbHelper, _, captured := sessionMocks(t, models.SessionState{VictimAuthenticated: true})

	sessionDba := databases.NewSessionDatabase(dbHelper)

	err := sessionDba.SetPin(context.Background(), "1234")

	assert.NoError(t, err)
	assert.Equal(t, "1234", captured().SessionPin)
	assert.True(t, captured().VictimAuthenticated)
}

// sessionMocks wires a mocked session collection around an initial
// state and returns an accessor for the state captured by ReplaceOne
func sessionMocks(t *testing.T, initial models.SessionState) (databases.DatabaseHelper, *mocks.CollectionHelper, func() *models.SessionState) {
	t.Helper()

	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}
	urHelper := &mocks.UpdateResultHelper{}

	srHelper.On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SessionState)
		**arg = initial
	})

	var saved *models.SessionState
	collectionHelper.On("FindOne", context.Background(), bson.M{"_id": "session"}).
		Return(srHelper)
	collectionHelper.On("ReplaceOne", context.Background(), bson.M{"_id": "session"}, mock.Anything, mock.Anything).
		Return(urHelper, nil).Run(func(args mock.Arguments) {
		saved = args.Get(2).(*models.SessionState)
	})

	dbHelper.On("Collection", "session").Return(collectionHelper)

	return dbHelper, collectionHelper, func() *models.SessionState { return saved }
}
