package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/beneaug/dtfstickers/cart"
	"github.com/beneaug/dtfstickers/models"
	"github.com/beneaug/dtfstickers/routes"
	"github.com/beneaug/dtfstickers/storage"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	log := initLogger()
	defer log.Sync()

	log.Infow("starting application")

	// Init DB
	db := initDatabase(log)

	if err := db.AutoMigrate(&models.StickerOrder{}); err != nil {
		log.Fatalw("auto-migrate failed", "error", err)
	}

	// Gin setup
	r := gin.Default()

	// Artwork uploads are capped per file in the handler; this bounds
	// the in-memory part of multipart parsing.
	r.MaxMultipartMemory = 64 << 20

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Artwork storage
	up := initUploader(r, log)

	// Server-side cart with file persistence
	statePath := os.Getenv("CART_STATE_FILE")
	if statePath == "" {
		statePath = "data/cart.json"
	}
	store := cart.NewStore(cart.NewFilePort(statePath), log)

	// Setup routes
	routes.SetupRoutes(r, db, store, up, log)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Infow("server running", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalw("failed to start server", "error", err)
	}
}

func initLogger() *zap.SugaredLogger {
	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}

// initDatabase sets up the GORM DB connection
func initDatabase(log *zap.SugaredLogger) *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalw("db connection failed", "error", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalw("failed to connect db", "error", err)
	}
	return db
}

// initUploader selects artwork storage. STORAGE_MODE=local keeps files
// on disk, serves them under /uploads and backs them up nightly;
// anything else uses the configured cloud bucket.
func initUploader(r *gin.Engine, log *zap.SugaredLogger) storage.Uploader {
	if os.Getenv("STORAGE_MODE") == "local" {
		dir := os.Getenv("UPLOADS_DIR")
		if dir == "" {
			dir = "data/uploads"
		}
		baseURL := os.Getenv("BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8080"
		}
		up := storage.NewLocalUploader(dir, baseURL)

		// Serve uploaded artwork
		r.Static("/uploads", up.Dir())

		// Back up artwork daily at 2 AM, keep 4 days of backups
		backupDir := os.Getenv("UPLOADS_BACKUP_DIR")
		if backupDir == "" {
			backupDir = "data/backup/uploads"
		}
		go startDailyBackupAtFixedTime(up.Dir(), backupDir, 4*24*time.Hour, 2, 0, log)

		return up
	}

	up, err := storage.NewGCSUploader(context.Background(), log)
	if err != nil {
		log.Fatalw("failed to init cloud storage", "error", err)
	}
	return up
}

// startDailyBackupAtFixedTime backs up artwork daily at a fixed hour and removes old backups
func startDailyBackupAtFixedTime(srcDir, backupDir string, retention time.Duration, hour, min int, log *zap.SugaredLogger) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Infow("next artwork backup scheduled", "at", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		timestamp := time.Now().Format("2006-01-02_15-04-05")
		destDir := filepath.Join(backupDir, timestamp)

		if err := copyDir(srcDir, destDir); err != nil {
			log.Errorw("artwork backup failed", "error", err)
		} else {
			log.Infow("artwork backed up", "dest", destDir)
		}

		cleanupOldBackups(backupDir, retention, log)
	}
}

// copyDir recursively copies a folder
func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyFile copies a single file
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return nil
}

// cleanupOldBackups removes backup folders older than the retention window
func cleanupOldBackups(backupDir string, retention time.Duration, log *zap.SugaredLogger) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return
	}
	cutoff := time.Now().Add(-retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(backupDir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				log.Errorw("failed to remove old backup", "path", path, "error", err)
			} else {
				log.Infow("removed old backup", "path", path)
			}
		}
	}
}
