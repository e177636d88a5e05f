package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/agenticlearn/educator-portal/config"
	"github.com/agenticlearn/educator-portal/internal/infrastructure/mongodb"
	"github.com/agenticlearn/educator-portal/internal/seed"
	"github.com/agenticlearn/educator-portal/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+" seed", cfg.Env)

	strategy, err := seed.ParseStrategy(cfg.SeedStrategy)
	if err != nil {
		log.Fatalf("invalid SEED_STRATEGY: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	helpers.LogInfo(logger, "connected to mongodb", logrus.Fields{"database": cfg.MongoDatabase, "strategy": strategy})

	now := time.Now()
	runner := seed.NewRunner(mongodb.NewSeedStore(db), strategy, logger)
	reports, err := runner.Run(ctx, seed.Fixtures(now))
	if err != nil {
		helpers.LogError(logger, "seeding aborted", err, logrus.Fields{"completed": len(reports)})
		log.Fatal(err)
	}

	// The portal reads this profile; seeded alongside the fixture sets.
	profiles := mongodb.NewProfileRepository(db)
	p, err := profiles.Update(ctx, cfg.PortalEducatorID, seed.DemoProfile(cfg.PortalEducatorID, now))
	if err != nil {
		log.Fatalf("seed educator profile: %v", err)
	}

	total := 0
	for _, r := range reports {
		total += r.Written
	}
	helpers.LogInfo(logger, "database populated", logrus.Fields{
		"collections": len(reports),
		"records":     total,
		"profile":     p.Text("name", ""),
	})
}
