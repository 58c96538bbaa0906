package template

import (
	"context"
	"errors"
	"time"

	"formdash/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("template not found")

// TemplateRepository persists custom templates and the usage counters for
// system templates, which themselves live in code.
type TemplateRepository interface {
	CreateCustom(ctx context.Context, template *Template) error
	GetCustom(ctx context.Context, id string) (*Template, error)
	FindCustomByUser(ctx context.Context, userID string) ([]Template, error)
	FindPublicCustom(ctx context.Context) ([]Template, error)
	DeleteCustom(ctx context.Context, id string) error
	IncrementUsage(ctx context.Context, id string) error
	// UsageCounts returns the recorded usage for system template ids.
	UsageCounts(ctx context.Context, ids []string) (map[string]int64, error)
}

type TemplateRepositoryImpl struct {
	customs *mongo.Collection
	usage   *mongo.Collection
}

func NewTemplateRepository(db *database.MongodbDB) TemplateRepository {
	return &TemplateRepositoryImpl{
		customs: db.DB.Collection("custom_templates"),
		usage:   db.DB.Collection("template_usage"),
	}
}

func (r *TemplateRepositoryImpl) CreateCustom(ctx context.Context, template *Template) error {
	template.CreatedAt = time.Now()
	_, err := r.customs.InsertOne(ctx, template)
	return err
}

func (r *TemplateRepositoryImpl) GetCustom(ctx context.Context, id string) (*Template, error) {
	var template Template
	err := r.customs.FindOne(ctx, bson.M{"_id": id}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) FindCustomByUser(ctx context.Context, userID string) ([]Template, error) {
	return r.findCustom(ctx, bson.M{"user_id": userID})
}

func (r *TemplateRepositoryImpl) FindPublicCustom(ctx context.Context) ([]Template, error) {
	return r.findCustom(ctx, bson.M{"is_public": true})
}

func (r *TemplateRepositoryImpl) findCustom(ctx context.Context, filter bson.M) ([]Template, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.customs.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []Template
	if err = cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepositoryImpl) DeleteCustom(ctx context.Context, id string) error {
	result, err := r.customs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TemplateRepositoryImpl) IncrementUsage(ctx context.Context, id string) error {
	// Custom templates carry their own counter; system templates use the
	// shared usage collection since they are not stored documents.
	res, err := r.customs.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"usage_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	opts := options.Update().SetUpsert(true)
	_, err = r.usage.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"count": 1}}, opts)
	return err
}

func (r *TemplateRepositoryImpl) UsageCounts(ctx context.Context, ids []string) (map[string]int64, error) {
	cursor, err := r.usage.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var doc struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		counts[doc.ID] = doc.Count
	}
	return counts, cursor.Err()
}
