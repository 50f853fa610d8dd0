package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SofiaGenchi/carwash-frontend/internal/core/domain"
)

const collectionAttempts = "booking_attempts"

// attemptDocument is the stored shape of a booking attempt.
type attemptDocument struct {
	FlowID     string    `bson:"flow_id"`
	SessionID  string    `bson:"session_id"`
	UserID     string    `bson:"user_id,omitempty"`
	ServiceID  string    `bson:"service_id"`
	Date       string    `bson:"date"`
	Time       string    `bson:"time"`
	Outcome    string    `bson:"outcome"`
	Message    string    `bson:"message,omitempty"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// AuditRepository persists booking attempts to the booking_attempts collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAttempts)}
}

// InsertAttempt appends one attempt. The slot is stored in its wire form.
func (r *AuditRepository) InsertAttempt(ctx context.Context, a *domain.BookingAttempt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := attemptDocument{
		FlowID:     a.FlowID,
		SessionID:  a.SessionID,
		UserID:     a.UserID,
		ServiceID:  a.ServiceID,
		Date:       a.Date,
		Time:       a.Time.Wire(),
		Outcome:    string(a.Outcome),
		Message:    a.Message,
		At:         a.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// ListByUser returns the most recent attempts made by a user, newest first.
func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.BookingAttempt, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []attemptDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.BookingAttempt, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.BookingAttempt{
			FlowID:    d.FlowID,
			SessionID: d.SessionID,
			UserID:    d.UserID,
			ServiceID: d.ServiceID,
			Date:      d.Date,
			Time:      domain.SlotFromWire(d.Time),
			Outcome:   domain.BookingOutcome(d.Outcome),
			Message:   d.Message,
			At:        d.At,
		})
	}
	return out, nil
}

// EnsureIndexes creates the indexes used by audit lookups.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "flow_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
