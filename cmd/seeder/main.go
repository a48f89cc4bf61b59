package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"tourism_api/internal/adapters/observability"
	"tourism_api/internal/app"
	"tourism_api/internal/domain"
	"tourism_api/internal/shared"
	mysqlstore "tourism_api/internal/storage/mysql"
)

// The seeder bulk-loads a fixtures file through the domain service, so every
// record passes the same validation and invariant checks as API traffic.
// Conflicts mean the record is already present; they are logged and skipped,
// which makes re-running the seeder safe.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.SeedWorkers).
		Int("rps", cfg.SeedRPS).
		Msg("seeder starting")

	data, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	fx, err := app.ParseFixtures(data)
	if err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	store := mysqlstore.New(db)
	svc := app.NewTourismService(store)
	rl := rate.NewLimiter(rate.Limit(cfg.SeedRPS), cfg.SeedRPS)

	// Attractions and visitors first; reviews and visited lists reference
	// them by name and email.
	attractionIDs := make(map[string]string, len(fx.Attractions))
	for _, a := range fx.Attractions {
		if err := rl.Wait(ctx); err != nil {
			log.Fatal().Err(err).Msg("rate limiter wait failed")
		}
		created, err := svc.CreateAttraction(ctx, a.Name, a.Location, a.EntryFee)
		if errors.Is(err, domain.ErrConflict) {
			existing, ferr := store.FindAttractionByName(ctx, a.Name)
			if ferr != nil {
				log.Fatal().Err(ferr).Str("name", a.Name).Msg("resolve existing attraction failed")
			}
			attractionIDs[a.Name] = existing.ID
			log.Debug().Str("name", a.Name).Msg("attraction already present")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("name", a.Name).Msg("create attraction failed")
		}
		attractionIDs[a.Name] = created.ID
	}

	visitorIDs := make(map[string]string, len(fx.Visitors))
	for _, v := range fx.Visitors {
		if err := rl.Wait(ctx); err != nil {
			log.Fatal().Err(err).Msg("rate limiter wait failed")
		}
		created, err := svc.CreateVisitor(ctx, v.Name, v.Email)
		if errors.Is(err, domain.ErrConflict) {
			existing, ferr := store.FindVisitorByEmail(ctx, v.Email)
			if ferr != nil {
				log.Fatal().Err(ferr).Str("email", v.Email).Msg("resolve existing visitor failed")
			}
			visitorIDs[v.Email] = existing.ID
			log.Debug().Str("email", v.Email).Msg("visitor already present")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", v.Email).Msg("create visitor failed")
		}
		visitorIDs[v.Email] = created.ID
	}

	// Reviews fan out across workers; each create recomputes the rating.
	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup
	for _, r := range fx.Reviews {
		aid, ok := attractionIDs[r.Attraction]
		if !ok {
			log.Warn().Str("attraction", r.Attraction).Msg("review references unknown attraction; skipped")
			continue
		}
		vid, ok := visitorIDs[r.Visitor]
		if !ok {
			log.Warn().Str("visitor", r.Visitor).Msg("review references unknown visitor; skipped")
			continue
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(r app.ReviewSeed, aid, vid string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := rl.Wait(ctx); err != nil {
				log.Warn().Err(err).Msg("rate limiter wait failed")
				return
			}
			_, err := svc.CreateReview(ctx, aid, vid, r.Score, r.Comment)
			switch {
			case errors.Is(err, domain.ErrConflict):
				log.Debug().Str("attraction", r.Attraction).Str("visitor", r.Visitor).Msg("review already present")
			case err != nil:
				log.Warn().Err(err).Str("attraction", r.Attraction).Str("visitor", r.Visitor).Msg("create review failed")
			default:
				log.Info().Str("attraction", r.Attraction).Str("visitor", r.Visitor).Msg("review seeded")
			}
		}(r, aid, vid)
	}
	wg.Wait()

	// Visited lists are appended serially to preserve fixture order.
	for _, v := range fx.Visitors {
		vid := visitorIDs[v.Email]
		for _, name := range v.Visited {
			aid, ok := attractionIDs[name]
			if !ok {
				log.Warn().Str("attraction", name).Msg("visited list references unknown attraction; skipped")
				continue
			}
			if err := rl.Wait(ctx); err != nil {
				log.Fatal().Err(err).Msg("rate limiter wait failed")
			}
			if _, err := svc.MarkAttractionVisited(ctx, vid, aid); err != nil && !errors.Is(err, domain.ErrConflict) {
				log.Warn().Err(err).Str("visitor", v.Email).Str("attraction", name).Msg("mark visited failed")
			}
		}
	}

	log.Info().Msg("seeding completed")
}
