package metrics

import (
	"context"
	"errors"
	"time"

	"formdash/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("metric definition not found")

type MetricsRepository interface {
	Create(ctx context.Context, def *Definition) error
	Get(ctx context.Context, id string) (*Definition, error)
	FindByDashboard(ctx context.Context, dashboardID string) ([]Definition, error)
	Update(ctx context.Context, def *Definition) error
	Delete(ctx context.Context, id string) error
	DeleteByDashboard(ctx context.Context, dashboardID string) error
}

type MetricsRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMetricsRepository(db *database.MongodbDB) MetricsRepository {
	return &MetricsRepositoryImpl{
		collection: db.DB.Collection("metric_definitions"),
	}
}

func (r *MetricsRepositoryImpl) Create(ctx context.Context, def *Definition) error {
	def.CreatedAt = time.Now()
	def.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, def)
	return err
}

func (r *MetricsRepositoryImpl) Get(ctx context.Context, id string) (*Definition, error) {
	var def Definition
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&def)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &def, nil
}

func (r *MetricsRepositoryImpl) FindByDashboard(ctx context.Context, dashboardID string) ([]Definition, error) {
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"dashboard_id": dashboardID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var defs []Definition
	if err = cursor.All(ctx, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *MetricsRepositoryImpl) Update(ctx context.Context, def *Definition) error {
	def.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": def.ID}, bson.M{
		"$set": bson.M{
			"name":       def.Name,
			"formula":    def.Formula,
			"variables":  def.Variables,
			"widget_id":  def.WidgetID,
			"updated_at": def.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MetricsRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MetricsRepositoryImpl) DeleteByDashboard(ctx context.Context, dashboardID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"dashboard_id": dashboardID})
	return err
}
