package mongostore

import (
	"context"
	"fmt"
	"time"

	"mood-meal/internal/pkg/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewUserParams 註冊時的使用者欄位
type NewUserParams struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   string
	Allergy  string
}

// UserUpdate 可更新的使用者欄位，nil 表示不變更
type UserUpdate struct {
	Name    *string
	Email   *string
	Age     *int
	Gender  *string
	Allergy *string
}

// FindUserByEmail 以 email 查詢使用者，不存在時返回 (nil, nil)
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindUserByID 以 id 查詢使用者，不存在時返回 (nil, nil)
func (s *Store) FindUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var user User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// InsertUser 新增使用者，返回含 id 的文件
func (s *Store) InsertUser(ctx context.Context, params NewUserParams) (*User, error) {
	user := User{
		Name:      params.Name,
		Email:     params.Email,
		Password:  params.Password,
		Age:       params.Age,
		Gender:    params.Gender,
		Allergy:   params.Allergy,
		CreatedAt: time.Now(),
	}

	result, err := s.users.InsertOne(ctx, user)
	if err != nil {
		// 唯一索引攔下與預檢並發的重複註冊
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrEmailRegistered
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return &user, nil
}

// UpdateUser 更新使用者並返回更新後的文件，不存在時返回 (nil, nil)
func (s *Store) UpdateUser(ctx context.Context, id string, update UserUpdate) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Allergy != nil {
		set["allergy"] = *update.Allergy
	}
	if len(set) == 0 {
		return s.FindUserByID(ctx, id)
	}

	var user User
	err = s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}
