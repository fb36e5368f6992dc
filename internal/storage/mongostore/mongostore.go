package mongostore

import (
	"context"
	"fmt"
	"time"

	"mood-meal/internal/infrastructure/config"
	"mood-meal/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// User 使用者文件
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Age       int                `bson:"age" json:"age"`
	Gender    string             `bson:"gender" json:"gender"`
	Allergy   string             `bson:"allergy" json:"allergy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Recommendation 提案紀錄文件
type Recommendation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Meal         string             `bson:"meal" json:"meal"`
	Mood         string             `bson:"mood" json:"mood"`
	IsFavorite   bool               `bson:"isFavorite" json:"isFavorite"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Summary      string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Ingredients  []string           `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// History 心情與餐點配對的履歷文件
type History struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Meal      string             `bson:"meal" json:"meal"`
	Mood      string             `bson:"mood" json:"mood"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Store 文件儲存層
type Store struct {
	client          *mongo.Client
	users           *mongo.Collection
	recommendations *mongo.Collection
	histories       *mongo.Collection
}

// Connect 連線 MongoDB 並建立儲存層
func Connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	store := &Store{
		client:          client,
		users:           db.Collection("users"),
		recommendations: db.Collection("recommendations"),
		histories:       db.Collection("histories"),
	}

	if err := store.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	common.LogInfo("MongoDB 連線成功",
		zap.String("database", cfg.Mongo.Database),
	)

	return store, nil
}

// ensureIndexes 建立必要索引（email 唯一、履歷排序）
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	_, err = s.recommendations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create recommendation index: %w", err)
	}

	return nil
}

// Ping 檢查 MongoDB 連線狀態
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close 關閉 MongoDB 連線
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
