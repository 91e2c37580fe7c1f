package main

import (
	"log"
	"os"
	"time"

	"ai-dashboard-be/internal/constant"
	"ai-dashboard-be/internal/entity"
	"ai-dashboard-be/internal/model"
	"ai-dashboard-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a demo account with a couple of folders and sessions so the
// dashboard has something to show on first run.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	userId := seedUser(db)
	seedFolders(db, userId)

	color.Green("Seeding complete.")
}

func seedUser(db *gorm.DB) uuid.UUID {
	email := "demo@example.com"

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("Demo user already exists (%s), skipping", email)
		return existing.Id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: bcrypt failed: %v", err)
	}
	hashStr := string(hash)

	now := time.Now()
	user := model.User{
		Id:            uuid.New(),
		Email:         email,
		FullName:      "Demo User",
		PasswordHash:  &hashStr,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     now,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: Failed to create demo user: %v", err)
	}

	color.Green("Created demo user %s (password: demo-password)", email)
	return user.Id
}

func seedFolders(db *gorm.DB, userId uuid.UUID) {
	chatFolders := []string{"Work", "Personal"}
	for i, name := range chatFolders {
		folder := model.ChatFolder{
			Id:        uuid.New(),
			Name:      name,
			ColorTag:  constant.FolderPalette[i%len(constant.FolderPalette)],
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := db.Where("user_id = ? AND name = ?", userId, name).FirstOrCreate(&folder).Error; err != nil {
			log.Fatalf("Error: Failed to seed chat folder %q: %v", name, err)
		}
		color.Cyan("Chat folder: %s", name)
	}

	documentFolders := []string{"Reports", "Research"}
	for i, name := range documentFolders {
		folder := model.DocumentFolder{
			Id:        uuid.New(),
			Name:      name,
			ColorTag:  constant.FolderPalette[(i+2)%len(constant.FolderPalette)],
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		if err := db.Where("user_id = ? AND name = ?", userId, name).FirstOrCreate(&folder).Error; err != nil {
			log.Fatalf("Error: Failed to seed document folder %q: %v", name, err)
		}
		color.Cyan("Document folder: %s", name)
	}
}
