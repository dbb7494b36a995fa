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

type AttendanceRepository interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID primitive.ObjectID, date string) (*models.Attendance, error)
	SetCheckOut(ctx context.Context, id primitive.ObjectID, checkOut time.Time, location, notes string, workHours float64, overtime int) error
	FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, startDate, endDate string) ([]models.Attendance, error)
	FindInRange(ctx context.Context, startDate, endDate string, employeeIDs []primitive.ObjectID) ([]models.Attendance, error)

	CreateQRCode(ctx context.Context, qrCode *models.QRCode) error
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID, employeeID primitive.ObjectID) error
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
	qrCodeCollection     *mongo.Collection
}

func NewAttendanceRepository(db *config.Database) AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: db.Collection(config.AttendanceCollection),
		qrCodeCollection:     db.Collection(config.QRCodeCollection),
	}
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	attendance.ID = primitive.NewObjectID()
	attendance.CreatedAt = time.Now()
	attendance.UpdatedAt = time.Now()

	_, err := r.attendanceCollection.InsertOne(ctx, attendance)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID primitive.ObjectID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	filter := bson.M{"employee_id": employeeID, "date": date}
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by employee and date: %w", err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id primitive.ObjectID, checkOut time.Time, location, notes string, workHours float64, overtime int) error {
	update := bson.M{
		"$set": bson.M{
			"check_out_time":     checkOut,
			"check_out_location": location,
			"check_out_notes":    notes,
			"work_hours":         workHours,
			"overtime":           overtime,
			"updated_at":         time.Now(),
		},
	}
	result, err := r.attendanceCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *attendanceRepository) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID, startDate, endDate string) ([]models.Attendance, error) {
	filter := bson.M{"employee_id": employeeID}
	if startDate != "" && endDate != "" {
		filter["date"] = bson.M{"$gte": startDate, "$lte": endDate}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}
	if results == nil {
		results = []models.Attendance{}
	}
	return results, nil
}

// FindInRange fetches every attendance in the date span, optionally
// restricted to the given employees. The report handler groups the rows
// in memory.
func (r *attendanceRepository) FindInRange(ctx context.Context, startDate, endDate string, employeeIDs []primitive.ObjectID) ([]models.Attendance, error) {
	filter := bson.M{}
	if startDate != "" && endDate != "" {
		filter["date"] = bson.M{"$gte": startDate, "$lte": endDate}
	}
	if employeeIDs != nil {
		filter["employee_id"] = bson.M{"$in": employeeIDs}
	}

	cursor, err := r.attendanceCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance in range: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance range: %w", err)
	}
	if results == nil {
		results = []models.Attendance{}
	}
	return results, nil
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	_, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		return fmt.Errorf("failed to create QR code: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": code}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find QR code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	var qrCode models.QRCode
	filter := bson.M{
		"date":       date,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err := r.qrCodeCollection.FindOne(ctx, filter, opts).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active QR code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID, employeeID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"used_by": employeeID},
	}
	_, err := r.qrCodeCollection.UpdateByID(ctx, qrCodeID, update)
	if err != nil {
		return fmt.Errorf("failed to mark QR code as used: %w", err)
	}
	return nil
}
