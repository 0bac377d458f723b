package main

import (
	"log"
	"os"

	"study-assistant-be/internal/model"
	"study-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

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

	log.Println("Starting GORM migration...")

	models := []interface{}{
		&model.User{},
		&model.PasswordResetToken{},
		&model.Project{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.MessageFeedback{},
		&model.Memo{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: database migration completed.")
}
