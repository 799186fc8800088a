package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"streakbot/internal/datastore"
	"streakbot/internal/models"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeedConfig(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableUser(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableAttendance(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableChatActivity(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableScoreConfig(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

// insert the default scoring config so the services have something to
// read on a fresh database
func commandSeedConfig() *cli.Command {
	return &cli.Command{
		Name:        "seed-config",
		Description: "Insert the default score config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			cfg := models.DefaultScoreConfig()
			_, err = db.NewInsert().
				Model(cfg).
				On("CONFLICT (id) DO NOTHING").
				Exec(ctx)
			if err != nil {
				log.Println(err)
			}

			fmt.Println("Seed success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
