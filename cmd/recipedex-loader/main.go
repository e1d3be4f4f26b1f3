package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli"

	"recipedex/internal/loader"
	"recipedex/internal/logging"
	"recipedex/internal/storage/mongo"
)

func main() {
	app := cli.NewApp()
	app.Name = "recipedex-loader"
	app.Usage = "Wipe the recipe collection and reload it from JSON source files"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "data-dir",
			Value: "./data",
			Usage: "directory containing *.json recipe files",
		},
		cli.StringFlag{
			Name:   "mongo-uri",
			EnvVar: "MONGODB_URI",
			Usage:  "MongoDB connection string",
		},
		cli.StringFlag{
			Name:  "database",
			Value: "recipedb",
			Usage: "database name",
		},
		cli.StringFlag{
			Name:  "collection",
			Value: "recipes",
			Usage: "collection name",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if err := logging.Initialize(logging.DefaultConfig()); err != nil {
		return err
	}
	defer logging.Shutdown()

	uri := c.String("mongo-uri")
	if uri == "" {
		return cli.NewExitError("MONGODB_URI environment variable is required", 1)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := mongo.NewBackend(connectCtx, uri, c.String("database"), c.String("collection"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer store.Close(context.Background())

	ctx := context.Background()
	summary, err := loader.Run(ctx, store, c.String("data-dir"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	count, err := store.Count(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	slog.Info("Load complete",
		"files", summary.Files,
		"recipes", summary.Recipes,
		"collection_count", count)
	return nil
}
