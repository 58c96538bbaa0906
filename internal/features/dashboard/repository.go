package dashboard

import (
	"context"
	"errors"
	"time"

	"formdash/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound        = errors.New("dashboard not found")
	ErrVersionConflict = errors.New("dashboard was modified by another session")
	ErrAccessDenied    = errors.New("access denied")
)

type DashboardRepository interface {
	Create(ctx context.Context, dashboard *Dashboard) error
	Get(ctx context.Context, id string) (*Dashboard, error)
	FindByUserID(ctx context.Context, userID string) ([]Dashboard, error)
	// Replace writes the full document if the stored version still matches
	// dashboard.Version, then bumps the version.
	Replace(ctx context.Context, dashboard *Dashboard) error
	Delete(ctx context.Context, id string) error
	FindByShareToken(ctx context.Context, token string) (*Dashboard, error)
	SetSharing(ctx context.Context, id string, shared bool, token string) error
	IncrementViewCount(ctx context.Context, id string) error
}

type DashboardRepositoryImpl struct {
	collection *mongo.Collection
}

func NewDashboardRepository(db *database.MongodbDB) DashboardRepository {
	return &DashboardRepositoryImpl{
		collection: db.DB.Collection("dashboards"),
	}
}

func (r *DashboardRepositoryImpl) Create(ctx context.Context, dashboard *Dashboard) error {
	if dashboard.ID == "" {
		dashboard.ID = NewID()
	}
	if dashboard.Version == 0 {
		dashboard.Version = 1
	}
	dashboard.CreatedAt = time.Now()
	dashboard.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, dashboard)
	return err
}

func (r *DashboardRepositoryImpl) Get(ctx context.Context, id string) (*Dashboard, error) {
	var dashboard Dashboard
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&dashboard)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dashboard, nil
}

func (r *DashboardRepositoryImpl) FindByUserID(ctx context.Context, userID string) ([]Dashboard, error) {
	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var dashboards []Dashboard
	if err = cursor.All(ctx, &dashboards); err != nil {
		return nil, err
	}
	return dashboards, nil
}

func (r *DashboardRepositoryImpl) Replace(ctx context.Context, dashboard *Dashboard) error {
	expected := dashboard.Version
	dashboard.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        dashboard.Name,
			"description": dashboard.Description,
			"widgets":     dashboard.Widgets,
			"theme":       dashboard.Theme,
			"layout":      dashboard.Layout,
			"updated_at":  dashboard.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": dashboard.ID, "version": expected}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		// Distinguish a stale version from a missing document.
		if _, err := r.Get(ctx, dashboard.ID); err != nil {
			return err
		}
		return ErrVersionConflict
	}

	dashboard.Version = expected + 1
	return nil
}

func (r *DashboardRepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DashboardRepositoryImpl) FindByShareToken(ctx context.Context, token string) (*Dashboard, error) {
	var dashboard Dashboard
	err := r.collection.FindOne(ctx, bson.M{
		"share_token": token,
		"is_shared":   true,
	}).Decode(&dashboard)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dashboard, nil
}

func (r *DashboardRepositoryImpl) SetSharing(ctx context.Context, id string, shared bool, token string) error {
	set := bson.M{"is_shared": shared, "updated_at": time.Now()}
	if shared {
		set["share_token"] = token
	} else {
		set["share_token"] = ""
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DashboardRepositoryImpl) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}})
	return err
}
