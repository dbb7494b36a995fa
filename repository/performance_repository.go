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

type PerformanceRepository struct {
	collection *mongo.Collection
}

func NewPerformanceRepository(db *config.Database) *PerformanceRepository {
	return &PerformanceRepository{
		collection: db.Collection(config.PerformanceCollection),
	}
}

func (r *PerformanceRepository) Create(ctx context.Context, evaluation *models.Performance) error {
	evaluation.ID = primitive.NewObjectID()
	evaluation.CreatedAt = time.Now()
	evaluation.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, evaluation)
	if err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *PerformanceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Performance, error) {
	var evaluation models.Performance
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&evaluation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find evaluation by id: %w", err)
	}
	return &evaluation, nil
}

func (r *PerformanceRepository) FindByIDWithNames(ctx context.Context, id primitive.ObjectID) (*models.PerformanceWithNames, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}, employeeReviewerLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate evaluation: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.PerformanceWithNames
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// FindByEmployee returns an employee's evaluations, newest review period
// first; the first element feeds latestRating in analytics.
func (r *PerformanceRepository) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Performance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "review_end_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find evaluations by employee: %w", err)
	}
	defer cursor.Close(ctx)

	var evaluations []models.Performance
	if err = cursor.All(ctx, &evaluations); err != nil {
		return nil, fmt.Errorf("failed to decode evaluations: %w", err)
	}
	if evaluations == nil {
		evaluations = []models.Performance{}
	}
	return evaluations, nil
}

func (r *PerformanceRepository) FindPendingWithNames(ctx context.Context) ([]models.PerformanceWithNames, error) {
	pending := []string{models.PerformanceDraft, models.PerformanceSubmitted, models.PerformanceUnderReview}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: pending}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "review_end_date", Value: -1}}}},
	}, employeeReviewerLookup()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate pending evaluations: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.PerformanceWithNames
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode pending evaluations: %w", err)
	}
	if results == nil {
		results = []models.PerformanceWithNames{}
	}
	return results, nil
}

func (r *PerformanceRepository) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Performance, error) {
	updateData["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Performance
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateData}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update evaluation: %w", err)
	}
	return &updated, nil
}

func employeeReviewerLookup() mongo.Pipeline {
	return mongo.Pipeline{
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
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.EmployeeCollection},
			{Key: "localField", Value: "reviewer_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "reviewer"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$reviewer"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
