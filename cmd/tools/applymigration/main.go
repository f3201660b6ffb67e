package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Brings a pre-favorites deployment up to the current schema.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	addCol := func(sql string) {
		if err := db.Exec(sql).Error; err != nil {
			// 1060: Duplicate column name
			if !strings.Contains(err.Error(), "Error 1060") {
				log.Fatalf("Failed: %v", err)
			}
		}
	}

	addCol(`ALTER TABLE sessions ADD COLUMN last_seen_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) AFTER updated_at`)
	addCol(`ALTER TABLE sessions ADD COLUMN role VARCHAR(32) NOT NULL DEFAULT 'retail' AFTER last_name`)
	addCol(`ALTER TABLE partners ADD COLUMN site_url VARCHAR(512) NOT NULL DEFAULT '' AFTER logo_url`)

	fmt.Println("✓ Migration applied successfully!")
}
