package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"ms-events/internal/config"
	"ms-events/internal/models"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"golang.org/x/crypto/bcrypt"
)

// Development reset tool: drops and recreates the schema from the bun models
// and seeds sample data. Production schema changes go through the SQL
// migrations in ./migrations instead.
func main() {
	seed := flag.Bool("seed", true, "insert sample data after creating tables")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()

	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	log.Println("Dropping tables...")
	dropTables(ctx, db)

	log.Println("Creating tables...")
	createTables(ctx, db)

	if *seed {
		log.Println("Seeding sample data...")
		seedData(ctx, db)
	}

	log.Println("Done.")
}

func dropTables(ctx context.Context, db *bun.DB) {
	tables := []interface{}{(*models.Event)(nil), (*models.User)(nil), (*models.File)(nil)}
	for _, m := range tables {
		_, _ = db.NewDropTable().Model(m).IfExists().Cascade().Exec(ctx)
	}
}

func createTables(ctx context.Context, db *bun.DB) {
	tables := []interface{}{(*models.File)(nil), (*models.User)(nil), (*models.Event)(nil)}
	for _, m := range tables {
		_, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx)
		if err != nil {
			log.Fatalf("Failed to create table for %T: %v", m, err)
		}
	}
}

func seedData(ctx context.Context, db *bun.DB) {
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := []models.User{
		{ID: "user001", Name: "Adriano Souza", Email: "adriano@example.com", PasswordHash: string(hash), CreatedAt: now, UpdatedAt: now},
		{ID: "user002", Name: "João de Deus", Email: "joao@example.com", PasswordHash: string(hash), CreatedAt: now, UpdatedAt: now},
	}
	if _, err := db.NewInsert().Model(&users).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	banners := []models.File{
		{ID: "banner001", Path: "665745fb5f90a3fdf2ef7a3edc2ad419.jpeg", URL: "http://localhost:3333/files/665745fb5f90a3fdf2ef7a3edc2ad419.jpeg", Type: models.FileTypeBanner, CreatedAt: now},
		{ID: "banner002", Path: "07af4515d5c29250d329492a4167b3d0.jpg", URL: "http://localhost:3333/files/07af4515d5c29250d329492a4167b3d0.jpg", Type: models.FileTypeBanner, CreatedAt: now},
	}
	if _, err := db.NewInsert().Model(&banners).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed files: %v", err)
	}

	description := "O Community Challenge é uma competição global criada pelo Developer Circles from Facebook. " +
		"Seu desafio é criar um software que utilize pelo menos uma das três tecnologias: React360, Spark AR ou Jogos em HTML5."
	location := "Av. Paulista, 1234"

	events := []models.Event{
		{ID: "event001", Title: "React 360 - Community Challenge", Description: description, Location: location, Date: mustParse("2020-01-11T18:00:00Z"), OwnerID: "user001", BannerID: "banner001", CreatedAt: now, UpdatedAt: now},
		{ID: "event002", Title: "Vue.js summit 2019", Description: description, Location: location, Date: mustParse("2020-02-12T18:00:00Z"), OwnerID: "user002", BannerID: "banner002", CreatedAt: now, UpdatedAt: now},
		{ID: "event003", Title: "ReactSP36 - Especial Frontend Week", Description: description, Location: location, Date: mustParse("2020-03-13T18:00:00Z"), OwnerID: "user001", BannerID: "banner001", CreatedAt: now, UpdatedAt: now},
		{ID: "event004", Title: "Rocketseat summit 2019", Description: description, Location: location, Date: mustParse("2020-04-14T18:00:00Z"), OwnerID: "user002", BannerID: "banner002", CreatedAt: now, UpdatedAt: now},
		{ID: "event005", Title: "Frontend SP - Especial FrontendWeek!", Description: description, Location: location, Date: mustParse("2019-12-28T18:00:00Z"), OwnerID: "user001", BannerID: "banner001", CreatedAt: now, UpdatedAt: now},
	}
	if _, err := db.NewInsert().Model(&events).Exec(ctx); err != nil {
		log.Fatalf("Failed to seed events: %v", err)
	}
}

func mustParse(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Fatalf("Bad seed date %s: %v", value, err)
	}
	return t
}
