package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

const ticketCollection = "tickets"

// TicketRepository persists tickets in MongoDB.
type TicketRepository struct {
	coll *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{coll: db.Collection(ticketCollection)}
}

// mongoTicket stores processor as a pointer so an unclaimed ticket holds a
// real BSON null, which is what the conditional update filters on.
type mongoTicket struct {
	Pkey        string  `bson:"_id"`
	Status      string  `bson:"status"`
	Type        string  `bson:"type"`
	Processor   *string `bson:"processor"`
	Amount      float64 `bson:"amount"`
	Description string  `bson:"description"`
	Owner       string  `bson:"owner"`
}

// ticketFields maps updatable properties to stored field names. The pkey
// maps to the immutable _id and the type is fixed at creation; neither is
// listed here.
var ticketFields = map[string]string{
	"status":      "status",
	"processor":   "processor",
	"amount":      "amount",
	"description": "description",
	"owner":       "owner",
}

func (t mongoTicket) toDomain() *domain.Ticket {
	ticket := &domain.Ticket{
		Pkey:        t.Pkey,
		Status:      domain.TicketStatus(t.Status),
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Owner:       t.Owner,
	}
	if t.Processor != nil {
		ticket.Processor = *t.Processor
	}
	return ticket
}

func fromDomain(t *domain.Ticket) mongoTicket {
	doc := mongoTicket{
		Pkey:        t.Pkey,
		Status:      string(t.Status),
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Owner:       t.Owner,
	}
	if t.Processor != "" {
		doc.Processor = &t.Processor
	}
	return doc
}

// Create inserts a new ticket document.
func (r *TicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, fromDomain(ticket)); err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// FindByPkey retrieves a ticket by its key.
func (r *TicketRepository) FindByPkey(ctx context.Context, pkey string) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTicket
	if err := r.coll.FindOne(ctx, bson.M{"_id": pkey}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return mt.toDomain(), nil
}

// FindByOwner lists every ticket owned by the given user.
func (r *TicketRepository) FindByOwner(ctx context.Context, owner string) ([]domain.Ticket, error) {
	return r.findMany(ctx, bson.M{"owner": owner})
}

// FindByStatus lists tickets filtered by status; StatusAll lists everything.
func (r *TicketRepository) FindByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	filter := bson.M{}
	if status != domain.StatusAll {
		filter["status"] = string(status)
	}
	return r.findMany(ctx, filter)
}

func (r *TicketRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []domain.Ticket
	for cursor.Next(ctx) {
		var mt mongoTicket
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode ticket: %w", err)
		}
		tickets = append(tickets, *mt.toDomain())
	}
	return tickets, cursor.Err()
}

// UpdateUnprocessed applies an update batch with a single conditional
// write: the document must still carry a null processor. This is the
// compare-and-swap that closes the window between the service's claim
// guard read and the write — a racing claim makes the filter miss, and the
// follow-up fetch disambiguates a vanished ticket from a lost race.
func (r *TicketRepository) UpdateUnprocessed(ctx context.Context, pkey string, updates []validation.Update) (*domain.Ticket, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	for _, u := range updates {
		field, ok := ticketFields[u.Property]
		if !ok {
			continue
		}
		set[field] = u.Value
	}

	var mt mongoTicket
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": pkey, "processor": nil},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err == nil {
		return mt.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	if _, findErr := r.FindByPkey(ctx, pkey); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrTicketProcessed
}

// EnsureIndexes creates the secondary indexes used by the list queries.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
