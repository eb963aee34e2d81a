package repository

import (
	"fmt"
	"testing"

	"nabta/internal/models"
	"nabta/internal/testutil"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.NewTestDB(t)
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, circleID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:   userID,
		CircleID: circleID,
		Content:  "test content",
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func createCircle(t *testing.T, db *gorm.DB) *models.Circle {
	t.Helper()
	circle := &models.Circle{
		Name:   "Morning Runners",
		NameAr: "عداؤو الصباح",
		Status: models.CircleStatusActive,
	}
	if err := db.Create(circle).Error; err != nil {
		t.Fatalf("create circle: %v", err)
	}
	return circle
}
