package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrms/config"
	"hrms/models"
)

type PayrollRepository interface {
	Create(ctx context.Context, payroll *models.Payroll) error
	Exists(ctx context.Context, employeeID primitive.ObjectID, month, year int) (bool, error)
	FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, year int) ([]models.Payroll, error)
	FindMonthlyWithEmployee(ctx context.Context, month, year int) ([]models.PayrollWithEmployee, error)
	Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Payroll, error)
}

type payrollRepository struct {
	collection *mongo.Collection
}

func NewPayrollRepository(db *config.Database) PayrollRepository {
	return &payrollRepository{
		collection: db.Collection(config.PayrollCollection),
	}
}

// Create inserts one payslip. A concurrent calculation for the same
// (employee, month, year) loses at the unique index and gets ErrDuplicate.
func (r *payrollRepository) Create(ctx context.Context, payroll *models.Payroll) error {
	payroll.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, payroll)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create payroll: %w", err)
	}
	return nil
}

func (r *payrollRepository) Exists(ctx context.Context, employeeID primitive.ObjectID, month, year int) (bool, error) {
	filter := bson.M{"employee_id": employeeID, "month": month, "year": year}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check payroll existence: %w", err)
	}
	return count > 0, nil
}

func (r *payrollRepository) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, year int) ([]models.Payroll, error) {
	filter := bson.M{"employee_id": employeeID}
	if year > 0 {
		filter["year"] = year
	}

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "month", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find payrolls by employee: %w", err)
	}
	defer cursor.Close(ctx)

	var payrolls []models.Payroll
	if err = cursor.All(ctx, &payrolls); err != nil {
		return nil, fmt.Errorf("failed to decode payrolls: %w", err)
	}
	if payrolls == nil {
		payrolls = []models.Payroll{}
	}
	return payrolls, nil
}

func (r *payrollRepository) FindMonthlyWithEmployee(ctx context.Context, month, year int) ([]models.PayrollWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "month", Value: month}, {Key: "year", Value: year}}}},
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
		{{Key: "$sort", Value: bson.D{{Key: "employee.employee_code", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly payrolls: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.PayrollWithEmployee
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode monthly payrolls: %w", err)
	}
	if results == nil {
		results = []models.PayrollWithEmployee{}
	}
	return results, nil
}

func (r *payrollRepository) Update(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Payroll, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Payroll
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateData}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update payroll: %w", err)
	}
	return &updated, nil
}
