package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

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

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS sessions (
	  id CHAR(36) NOT NULL,
	  account_id BIGINT NOT NULL,
	  token VARCHAR(512) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  first_name VARCHAR(100) NOT NULL DEFAULT '',
	  last_name VARCHAR(100) NOT NULL DEFAULT '',
	  role VARCHAR(32) NOT NULL DEFAULT 'retail',
	  expires_at DATETIME(3) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  last_seen_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_sessions_account_id (account_id),
	  KEY ix_sessions_expires_at (expires_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS favorites (
	  id CHAR(36) NOT NULL,
	  account_id BIGINT NOT NULL,
	  product_id BIGINT NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_favorites_account_product (account_id, product_id),
	  KEY ix_favorites_account_created (account_id, created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS blog_posts (
	  id CHAR(36) NOT NULL,
	  slug VARCHAR(255) NOT NULL,
	  title VARCHAR(255) NOT NULL,
	  body MEDIUMTEXT NOT NULL,
	  cover_url VARCHAR(512) NOT NULL DEFAULT '',
	  published_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_posts_slug (slug),
	  KEY ix_posts_published_at (published_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS partners (
	  id CHAR(36) NOT NULL,
	  slug VARCHAR(255) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  body MEDIUMTEXT NOT NULL,
	  logo_url VARCHAR(512) NOT NULL DEFAULT '',
	  site_url VARCHAR(512) NOT NULL DEFAULT '',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_partners_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("Tables created")
}
