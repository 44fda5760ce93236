// Package mongodb stores expenses in a MongoDB collection. Documents keep the
// layout the browser client has always read: an ObjectID _id plus title,
// amount, category and date.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type document struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Amount   float64            `bson:"amount"`
	Category string             `bson:"category"`
	Date     time.Time          `bson:"date"`
}

func toDocument(e *expense.Expense) document {
	return document{
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}
}

func (d document) toExpense() *expense.Expense {
	return &expense.Expense{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Amount:   d.Amount,
		Category: d.Category,
		Date:     d.Date.UTC(),
	}
}

// ExpenseRepository implements expense.Repository on a mongo collection.
type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(coll *mongo.Collection) *ExpenseRepository {
	return &ExpenseRepository{coll: coll}
}

func (r *ExpenseRepository) List(ctx context.Context) ([]*expense.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	out := make([]*expense.Expense, len(docs))
	for i, d := range docs {
		out[i] = d.toExpense()
	}
	return out, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	doc := toDocument(exp)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	exp.ID = doc.ID.Hex()
	return nil
}

// Delete treats ids that are not valid ObjectIDs as unknown.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return expense.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return expense.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the date index used by List.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: -1}},
		Options: options.Index().SetName("date_desc"),
	})
	return err
}

// Connect opens a client and verifies it with a ping bounded by the
// configured connect timeout.
func Connect(ctx context.Context, cfg internal.DatabaseConfig) (*mongo.Client, error) {
	uri := cfg.GetDSN()
	if uri == "" {
		return nil, errors.New("mongo connection string is empty")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := internal.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, nil
}
