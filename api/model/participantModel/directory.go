package participantmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/sunthewhat/olymp-cert-api/internal/certerr"
	"github.com/sunthewhat/olymp-cert-api/type/shared/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const registrationCollection = "registrations"

const queryTimeout = 10 * time.Second

// Filter narrows ListParticipants; zero value lists everyone
type Filter struct {
	Attended *bool
	Search   string
}

// ParticipantDirectory reads registration form documents from MongoDB
type ParticipantDirectory struct {
	collection *mongo.Collection
}

// NewParticipantDirectory creates a directory over the registrations collection
func NewParticipantDirectory(db *mongo.Database) *ParticipantDirectory {
	return &ParticipantDirectory{
		collection: db.Collection(registrationCollection),
	}
}

// GetParticipant returns one registration by participant id
func (d *ParticipantDirectory) GetParticipant(ctx context.Context, participantId int64) (*model.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	participant := new(model.Participant)
	findErr := d.collection.FindOne(ctx, bson.M{"_id": participantId}).Decode(participant)
	if findErr != nil {
		if errors.Is(findErr, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", certerr.ErrParticipantNotFound, participantId)
		}
		slog.Error("ParticipantDirectory GetParticipant", "error", findErr, "participant_id", participantId)
		return nil, findErr
	}

	return participant, nil
}

// GetDisplayName returns the "Last First" name printed on certificates
func (d *ParticipantDirectory) GetDisplayName(ctx context.Context, participantId int64) (string, error) {
	participant, err := d.GetParticipant(ctx, participantId)
	if err != nil {
		return "", err
	}

	name := participant.DisplayName()
	if name == "" {
		return "", fmt.Errorf("participant %d has an empty name", participantId)
	}
	return name, nil
}

// ListParticipants returns registrations sorted by last then first name
func (d *ParticipantDirectory) ListParticipants(ctx context.Context, filter Filter) ([]*model.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Attended != nil {
		query["attended"] = *filter.Attended
	}
	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"last_name": pattern},
			bson.M{"first_name": pattern},
			bson.M{"school": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}})
	cursor, findErr := d.collection.Find(ctx, query, opts)
	if findErr != nil {
		slog.Error("ParticipantDirectory ListParticipants find failed", "error", findErr)
		return nil, findErr
	}
	defer cursor.Close(ctx)

	participants := []*model.Participant{}
	if decodeErr := cursor.All(ctx, &participants); decodeErr != nil {
		slog.Error("ParticipantDirectory ListParticipants decode failed", "error", decodeErr)
		return nil, decodeErr
	}

	return participants, nil
}
