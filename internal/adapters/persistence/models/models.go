package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identity Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:256;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Roles     []Role    `gorm:"many2many:user_roles" json:"roles"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RoleNames returns the names of the user's roles
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Roles:     u.RoleNames(),
		CreatedAt: u.CreatedAt,
	}
}

// Role represents roles table
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:64;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// ============================================================
// Catalog Tables
// ============================================================

// Author represents authors table
type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Firstname string         `gorm:"size:50;not null" json:"firstname"`
	Lastname  string         `gorm:"size:50;not null" json:"lastname"`
	Bio       string         `gorm:"size:250" json:"bio"`
	Books     []Book         `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

// Book represents books table. Image is the asset reference: a bare file
// name in the asset store, empty when the book has no cover.
type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:100;not null" json:"title"`
	Year      *int           `json:"year"`
	Isbn      string         `gorm:"size:20;not null" json:"isbn"`
	Summary   string         `gorm:"size:500" json:"summary"`
	Image     string         `gorm:"size:255" json:"image"`
	Price     *float64       `gorm:"type:decimal(10,2)" json:"price"`
	AuthorID  uint           `gorm:"index;not null" json:"author_id"`
	Author    *Author        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Role{},
		&User{},
		&Author{},
		&Book{},
	)
}
