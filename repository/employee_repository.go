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

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *config.Database) *EmployeeRepository {
	return &EmployeeRepository{
		collection: db.Collection(config.EmployeeCollection),
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee by id: %w", err)
	}
	return &employee, nil
}

// FindAll applies the optional department/status filters in the query and
// the free-text search over names, code and email as a case-insensitive
// $or regex, matching the employee listing contract.
func (r *EmployeeRepository) FindAll(ctx context.Context, department, status, search string) ([]models.Employee, error) {
	filter := bson.M{}
	if department != "" {
		filter["department"] = department
	}
	if status != "" {
		filter["status"] = status
	}
	if search != "" {
		regex := primitive.Regex{Pattern: search, Options: "i"}
		filter["$or"] = []bson.M{
			{"first_name": regex},
			{"last_name": regex},
			{"employee_code": regex},
			{"email": regex},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "employee_code", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (r *EmployeeRepository) FindActive(ctx context.Context, department string) ([]models.Employee, error) {
	filter := bson.M{"status": "Active"}
	if department != "" {
		filter["department"] = department
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "employee_code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode active employees: %w", err)
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Employee, error) {
	updateData["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Employee
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateData}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return &updated, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
