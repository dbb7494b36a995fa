package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrms/config"
	"hrms/models"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave *models.Leave) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error)
	FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, status, year string) ([]models.Leave, error)
	FindPendingWithEmployee(ctx context.Context) ([]models.LeaveWithEmployee, error)
	FindForBalance(ctx context.Context, employeeID primitive.ObjectID, year int) ([]models.Leave, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Leave, error)
}

type leaveRepository struct {
	collection *mongo.Collection
}

func NewLeaveRepository(db *config.Database) LeaveRepository {
	return &leaveRepository{
		collection: db.Collection(config.LeaveCollection),
	}
}

func (r *leaveRepository) Create(ctx context.Context, leave *models.Leave) error {
	leave.ID = primitive.NewObjectID()
	leave.AppliedDate = time.Now()
	leave.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, leave)
	if err != nil {
		return fmt.Errorf("failed to create leave: %w", err)
	}
	return nil
}

func (r *leaveRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Leave, error) {
	var leave models.Leave
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&leave)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leave by id: %w", err)
	}
	return &leave, nil
}

func (r *leaveRepository) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, status, year string) ([]models.Leave, error) {
	filter := bson.M{"employee_id": employeeID}
	if status != "" {
		filter["status"] = status
	}
	if year != "" {
		filter["start_date"] = bson.M{
			"$gte": year + "-01-01",
			"$lte": year + "-12-31",
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "applied_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find leaves by employee: %w", err)
	}
	defer cursor.Close(ctx)

	var leaves []models.Leave
	if err = cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("failed to decode leaves: %w", err)
	}
	if leaves == nil {
		leaves = []models.Leave{}
	}
	return leaves, nil
}

// FindPendingWithEmployee joins the employee document onto each pending
// leave so approvers see who is asking.
func (r *leaveRepository) FindPendingWithEmployee(ctx context.Context) ([]models.LeaveWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.LeavePending}}}},
		{{Key: "$sort", Value: bson.D{{Key: "applied_date", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.EmployeeCollection},
			{Key: "localField", Value: "employee_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "employee"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$employee"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pending leaves: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.LeaveWithEmployee
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode pending leaves: %w", err)
	}
	if results == nil {
		results = []models.LeaveWithEmployee{}
	}
	return results, nil
}

// FindForBalance returns Approved and Pending leaves whose start date
// falls within the calendar year.
func (r *leaveRepository) FindForBalance(ctx context.Context, employeeID primitive.ObjectID, year int) ([]models.Leave, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"status":      bson.M{"$in": []string{models.LeaveApproved, models.LeavePending}},
		"start_date": bson.M{
			"$gte": fmt.Sprintf("%04d-01-01", year),
			"$lte": fmt.Sprintf("%04d-12-31", year),
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find leaves for balance: %w", err)
	}
	defer cursor.Close(ctx)

	var leaves []models.Leave
	if err = cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("failed to decode leaves for balance: %w", err)
	}
	return leaves, nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Leave, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Leave
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update leave status: %w", err)
	}
	return &updated, nil
}
