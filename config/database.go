package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UserCollection        = "users"
	EmployeeCollection    = "employees"
	AttendanceCollection  = "attendances"
	LeaveCollection       = "leaves"
	PayrollCollection     = "payrolls"
	PerformanceCollection = "performances"
	RecruitmentCollection = "recruitments"
	QRCodeCollection      = "qr_codes"
)

// Database wraps the mongo client and database handle. It is constructed
// once in main and injected into every repository.
type Database struct {
	client *mongo.Client
	db     *mongo.Database
}

func ConnectDatabase(cfg *AppConfig) (*Database, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGOSTRING is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Database{
		client: client,
		db:     client.Database(cfg.DBName),
	}, nil
}

func (d *Database) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the unique indexes the derivation pipeline relies
// on. Concurrent duplicate writes lose the race at the index, not in
// application code.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		EmployeeCollection: {
			{Keys: bson.D{{Key: "employee_code", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		AttendanceCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
		},
		PayrollCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "month", Value: 1}, {Key: "year", Value: 1}}, Options: unique},
		},
		LeaveCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "start_date", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := d.db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}
	return nil
}

func (d *Database) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
