package export

import (
	"context"
	"errors"
	"time"

	"formdash/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrScheduleNotFound = errors.New("export schedule not found")

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	Get(ctx context.Context, id string) (*Schedule, error)
	FindByUser(ctx context.Context, userID string) ([]Schedule, error)
	FindEnabled(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, id string) error
}

type ScheduleRepositoryImpl struct {
	collection *mongo.Collection
}

func NewScheduleRepository(db *database.MongodbDB) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		collection: db.DB.Collection("export_schedules"),
	}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, schedule *Schedule) error {
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, schedule)
	return err
}

func (r *ScheduleRepositoryImpl) Get(ctx context.Context, id string) (*Schedule, error) {
	var schedule Schedule
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) FindByUser(ctx context.Context, userID string) ([]Schedule, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *ScheduleRepositoryImpl) FindEnabled(ctx context.Context) ([]Schedule, error) {
	return r.find(ctx, bson.M{"enabled": true})
}

func (r *ScheduleRepositoryImpl) find(ctx context.Context, filter bson.M) ([]Schedule, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []Schedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, schedule *Schedule) error {
	schedule.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": schedule.ID}, bson.M{
		"$set": bson.M{
			"spec":       schedule.Spec,
			"format":     schedule.Format,
			"enabled":    schedule.Enabled,
			"last_run":   schedule.LastRun,
			"next_run":   schedule.NextRun,
			"updated_at": schedule.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
