// Package testutil provides an in-memory database and fixtures for tests
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/issue-tracker/database"
	"github.com/issue-tracker/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite database, migrates and seeds it,
// and installs it as database.DB for the duration of the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := database.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := database.SeedReferenceData(testDB); err != nil {
		t.Fatalf("failed to seed test database: %v", err)
	}

	originalDB := database.DB
	database.SetTestDB(testDB)
	t.Cleanup(func() {
		database.SetTestDB(originalDB)
		if sqlDB, err := testDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return testDB
}

// CreateUser inserts a user with the given role
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: role, FirstName: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreateProject inserts a project authored by authorID (nil for none)
func CreateProject(t *testing.T, db *gorm.DB, name, description string, starts time.Time, authorID *string) models.Project {
	t.Helper()
	project := models.Project{Name: name, Description: description, StartsDate: starts, AuthorID: authorID}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

// CreateIssue inserts an issue with status New under projectID
func CreateIssue(t *testing.T, db *gorm.DB, projectID uint, summary, description string, authorID *string) models.Issue {
	t.Helper()
	issue := models.Issue{
		ProjectID:   projectID,
		Summary:     summary,
		Description: description,
		StatusID:    StatusID(t, db, models.StatusNew),
		AuthorID:    authorID,
	}
	if err := db.Create(&issue).Error; err != nil {
		t.Fatalf("failed to create issue: %v", err)
	}
	return issue
}

// CreateProduct inserts a product with the given stock
func CreateProduct(t *testing.T, db *gorm.DB, name string, price float64, amount int) models.Product {
	t.Helper()
	product := models.Product{Name: name, Price: price, Amount: amount}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// StatusID looks up a seeded status
func StatusID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var status models.Status
	if err := db.Where("name = ?", name).First(&status).Error; err != nil {
		t.Fatalf("status %s not seeded: %v", name, err)
	}
	return status.ID
}

// TypeID looks up a seeded type
func TypeID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()
	var typ models.Type
	if err := db.Where("name = ?", name).First(&typ).Error; err != nil {
		t.Fatalf("type %s not seeded: %v", name, err)
	}
	return typ.ID
}

// Day returns midnight UTC of the given date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
