package databases

// go generate: mockery --name SessionDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/havenapp/haven-api/models"
)

const sessionName = "session"

// sessionDocID keys the one SessionState document per deployment.
const sessionDocID = "session"

// SessionDatabase is the single persistence boundary for session flags.
// State only changes through the named transitions below, so every flag
// has a defined login and logout path (including the victim PIN, which
// the source app never cleared).
type SessionDatabase interface {
	Get(ctx context.Context) (*models.SessionState, error)
	AdminLogin(ctx context.Context) error
	AdminLogout(ctx context.Context) error
	VictimLogin(ctx context.Context, phone string) error
	VictimLogout(ctx context.Context) error
	SetPin(ctx context.Context, pin string) error
}

type sessionDatabase struct {
	db DatabaseHelper
}

// NewSessionDatabase initializes a new instance of session database with the provided db connection
func NewSessionDatabase(db DatabaseHelper) SessionDatabase {
	return &sessionDatabase{
		db: db,
	}
}

// Get returns the current state, or the zero state when none has been
// written yet.
func (s *sessionDatabase) Get(ctx context.Context) (*models.SessionState, error) {
	state := &models.SessionState{}
	err := s.db.Collection(sessionName).FindOne(ctx, bson.M{"_id": sessionDocID}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.SessionState{}, nil
		}
		return nil, err
	}
	return state, nil
}

func (s *sessionDatabase) AdminLogin(ctx context.Context) error {
	return s.mutate(ctx, func(state *models.SessionState) {
		state.AdminLoggedIn = true
	})
}

func (s *sessionDatabase) AdminLogout(ctx context.Context) error {
	return s.mutate(ctx, func(state *models.SessionState) {
		state.AdminLoggedIn = false
	})
}

func (s *sessionDatabase) VictimLogin(ctx context.Context, phone string) error {
	return s.mutate(ctx, func(state *models.SessionState) {
		state.VictimAuthenticated = true
		state.VictimPhone = phone
	})
}

// VictimLogout clears the authenticated flag, phone and session PIN, so
// logging out also revokes the PIN identity.
func (s *sessionDatabase) VictimLogout(ctx context.Context) error {
	return s.mutate(ctx, func(state *models.SessionState) {
		state.VictimAuthenticated = false
		state.VictimPhone = ""
		state.SessionPin = ""
	})
}

func (s *sessionDatabase) SetPin(ctx context.Context, pin string) error {
	return s.mutate(ctx, func(state *models.SessionState) {
		state.SessionPin = pin
	})
}

func (s *sessionDatabase) mutate(ctx context.Context, apply func(*models.SessionState)) error {
	state, err := s.Get(ctx)
	if err != nil {
		return err
	}
	apply(state)
	_, err = s.db.Collection(sessionName).ReplaceOne(ctx, bson.M{"_id": sessionDocID}, state, options.Replace().SetUpsert(true))
	return err
}
