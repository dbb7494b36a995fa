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

type RecruitmentRepository struct {
	collection *mongo.Collection
}

func NewRecruitmentRepository(db *config.Database) *RecruitmentRepository {
	return &RecruitmentRepository{
		collection: db.Collection(config.RecruitmentCollection),
	}
}

func (r *RecruitmentRepository) Create(ctx context.Context, job *models.Recruitment) error {
	job.ID = primitive.NewObjectID()
	job.PostedDate = time.Now()
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()
	if job.Applications == nil {
		job.Applications = []models.Application{}
	}

	_, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}
	return nil
}

func (r *RecruitmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Recruitment, error) {
	var job models.Recruitment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find job posting by id: %w", err)
	}
	return &job, nil
}

func (r *RecruitmentRepository) FindAll(ctx context.Context, status, department, location string) ([]models.Recruitment, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if department != "" {
		filter["department"] = department
	}
	if location != "" {
		filter["location"] = primitive.Regex{Pattern: location, Options: "i"}
	}

	opts := options.Find().SetSort(bson.D{{Key: "posted_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Recruitment
	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode job postings: %w", err)
	}
	if jobs == nil {
		jobs = []models.Recruitment{}
	}
	return jobs, nil
}

func (r *RecruitmentRepository) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Recruitment, error) {
	updateData["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Recruitment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateData}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update job posting: %w", err)
	}
	return &updated, nil
}

// PushApplication appends a new application to the job's embedded array.
func (r *RecruitmentRepository) PushApplication(ctx context.Context, jobID primitive.ObjectID, application *models.Application) error {
	update := bson.M{
		"$push": bson.M{"applications": application},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateByID(ctx, jobID, update)
	if err != nil {
		return fmt.Errorf("failed to push application: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApplications replaces the whole embedded array. Application level
// edits (status changes, notes, interviews) are done in memory by the
// handler and written back in one shot.
func (r *RecruitmentRepository) SetApplications(ctx context.Context, jobID primitive.ObjectID, applications []models.Application) error {
	update := bson.M{
		"$set": bson.M{
			"applications": applications,
			"updated_at":   time.Now(),
		},
	}
	result, err := r.collection.UpdateByID(ctx, jobID, update)
	if err != nil {
		return fmt.Errorf("failed to update applications: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RecruitmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete job posting: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
