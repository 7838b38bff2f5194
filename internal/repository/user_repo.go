package repository

import (
	"StreamHub/internal/model"

	"gorm.io/gorm"
)

// 用户仓库接口：按ID/用户名查找、插入、更新、删除
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll() ([]model.User, error)
	Update(user *model.User) error
	Delete(id string) error
}

// 数据库接口封装
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// 用户插入表，用户名重复时返回ErrDuplicateKey
func (r *userRepository) Create(user *model.User) error {
	return translateError(r.db.Create(user).Error)
}

func (r *userRepository) FindByID(id string) (*model.User, error) {
	var result model.User
	if err := r.db.Where("id = ?", id).First(&result).Error; err != nil {
		return nil, err // 如果有错（包括没找到），直接返回
	}
	return &result, nil
}

// 根据用户名找用户
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	if err := r.db.Where("username = ?", username).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.db.Order("created_at asc").Find(&users).Error
	return users, err
}

// Save会更新所有字段，包括零值
func (r *userRepository) Update(user *model.User) error {
	return translateError(r.db.Save(user).Error)
}

func (r *userRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.User{}).Error
}
