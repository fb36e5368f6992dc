package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewRecommendationParams 新增提案紀錄的欄位
type NewRecommendationParams struct {
	UserID       string
	Meal         string
	Mood         string
	IsFavorite   bool
	Image        string
	Summary      string
	Instructions string
	Ingredients  []string
}

// InsertRecommendation 新增提案紀錄，返回含 id 的文件
func (s *Store) InsertRecommendation(ctx context.Context, params NewRecommendationParams) (*Recommendation, error) {
	userID, err := primitive.ObjectIDFromHex(params.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	rec := Recommendation{
		UserID:       userID,
		Meal:         params.Meal,
		Mood:         params.Mood,
		IsFavorite:   params.IsFavorite,
		Image:        params.Image,
		Summary:      params.Summary,
		Instructions: params.Instructions,
		Ingredients:  params.Ingredients,
		CreatedAt:    time.Now(),
	}

	result, err := s.recommendations.InsertOne(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recommendation: %w", err)
	}

	rec.ID = result.InsertedID.(primitive.ObjectID)
	return &rec, nil
}

// ListRecommendations 列出使用者的提案紀錄，新到舊排序
func (s *Store) ListRecommendations(ctx context.Context, userID string) ([]Recommendation, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []Recommendation{}, nil
	}

	cursor, err := s.recommendations.Find(ctx,
		bson.M{"userId": oid},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer cursor.Close(ctx)

	recs := []Recommendation{}
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return recs, nil
}

// DeleteRecommendation 刪除提案紀錄，不存在時視為成功
func (s *Store) DeleteRecommendation(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	_, err = s.recommendations.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	return nil
}

// InsertHistory 新增心情與餐點配對的履歷
func (s *Store) InsertHistory(ctx context.Context, userID, meal, mood string) (*History, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	history := History{
		UserID:    oid,
		Meal:      meal,
		Mood:      mood,
		CreatedAt: time.Now(),
	}

	result, err := s.histories.InsertOne(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("failed to insert history: %w", err)
	}

	history.ID = result.InsertedID.(primitive.ObjectID)
	return &history, nil
}
