package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/mauv0809/teamboard/internal/club"
	"github.com/mauv0809/teamboard/internal/config"
	"github.com/mauv0809/teamboard/internal/database"
	"github.com/mauv0809/teamboard/internal/match"
	"github.com/mauv0809/teamboard/internal/metrics"
	"github.com/mauv0809/teamboard/internal/notifier/slack"
	"github.com/mauv0809/teamboard/internal/processor"
	"github.com/mauv0809/teamboard/internal/pubsub"
)

const (
	numTeams   = 6
	numMatches = 200
	seed       = 42
)

func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()
	ctx := context.Background()

	var store club.ClubStore
	if cfg.Backend == config.BackendMongo {
		s, err := club.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatalf("Failed to connect to mongo: %s", err)
		}
		defer s.Close(ctx)
		store = s
	} else {
		db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			log.Fatalf("Failed to initialize database: %s", err)
		}
		defer teardown()
		store = club.New(db)
	}

	// Seeded data never reaches Slack or Pub/Sub.
	metricsSvc := metrics.NewMock()
	calc := match.NewCalculator(match.WithGamesPerMatch(cfg.Match.GamesPerMatch), match.WithTiePolicy(cfg.Match.TiePolicy))
	events, err := pubsub.New(ctx, "")
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	proc := processor.New(store, calc, slack.NewNotifier("", "", metricsSvc), metricsSvc, events)

	faker := gofakeit.New(seed)
	teams, err := seedTeams(ctx, proc, faker)
	if err != nil {
		log.Fatalf("Failed to seed teams: %s", err)
	}
	log.Info("Ensured teams exist.", "count", len(teams))

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		entry := randomMatch(faker, teams, calc.GamesPerMatch())
		d, err := proc.BuildDraft(ctx, entry)
		if err != nil {
			log.Fatalf("Failed to build match %d: %s", i+1, err)
		}
		if _, err := proc.RecordMatch(ctx, d, false); err != nil {
			log.Fatalf("Failed to record match %d: %s", i+1, err)
		}
		if (i+1)%50 == 0 {
			log.Info("Recorded matches", "completed", i+1, "total", numMatches)
		}
	}
	log.Info("Successfully inserted all dummy matches.", "duration", time.Since(startTime))
}

func seedTeams(ctx context.Context, proc *processor.Processor, faker *gofakeit.Faker) ([]club.Team, error) {
	for i := 0; i < numTeams; i++ {
		name := fmt.Sprintf("%s %ss", faker.Color(), faker.Animal())
		members := make([]string, faker.Number(2, 4))
		for j := range members {
			members[j] = faker.FirstName()
		}
		_, err := proc.RegisterTeam(ctx, name, members, false)
		if err != nil && !errors.Is(err, club.ErrTeamExists) {
			return nil, err
		}
	}
	return proc.Teams(ctx)
}

func randomMatch(faker *gofakeit.Faker, teams []club.Team, games int) processor.MatchEntry {
	i := faker.Number(0, len(teams)-1)
	j := faker.Number(0, len(teams)-2)
	if j >= i {
		j++
	}
	team1, team2 := teams[i], teams[j]

	entry := processor.MatchEntry{Team1: team1.Name, Team2: team2.Name, Games: make([]match.Game, games)}
	for g := range entry.Games {
		game := &entry.Games[g]
		game.Team1Players = randomPair(faker, team1.Members)
		game.Team2Players = randomPair(faker, team2.Members)
		for s := range game.Score {
			game.Score[s] = match.SetScore{faker.Number(0, 21), faker.Number(0, 21)}
		}
	}
	return entry
}

func randomPair(faker *gofakeit.Faker, members []string) [match.PlayersPerSide]string {
	var pair [match.PlayersPerSide]string
	for k := range pair {
		pair[k] = members[faker.Number(0, len(members)-1)]
	}
	return pair
}
