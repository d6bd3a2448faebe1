package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/elo-better/internal/bot"
	"github.com/yourusername/elo-better/internal/config"
	"github.com/yourusername/elo-better/internal/database"
	"github.com/yourusername/elo-better/internal/datasource"
	"github.com/yourusername/elo-better/internal/health"
	applogger "github.com/yourusername/elo-better/internal/logger"
	"github.com/yourusername/elo-better/internal/metrics"
	"github.com/yourusername/elo-better/internal/models"
	"github.com/yourusername/elo-better/internal/predict"
	"github.com/yourusername/elo-better/internal/rating"
	"github.com/yourusername/elo-better/internal/repository"
	"github.com/yourusername/elo-better/internal/scheduler"
	"github.com/yourusername/elo-better/internal/service"
	"github.com/yourusername/elo-better/internal/staking"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile string
	noDatabase bool

	logger *logrus.Logger
	cfg    *config.Config
	db     *database.DB
	repos  *repository.Repositories
	engine *bot.Engine
	store  *rating.Store
)

var rootCmd = &cobra.Command{
	Use:   "nba",
	Short: "Elo-driven NBA betting engine",
	Long:  `Analyzes NBA moneyline markets against Elo ratings, sizes and tracks bets, and keeps ratings in sync with final results.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd.Context()); err != nil {
			return fmt.Errorf("failed to set up: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&noDatabase, "no-db", false, "Run without a database (in-memory ledger and ratings)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(betCmd)
	rootCmd.AddCommand(settleCmd)
	rootCmd.AddCommand(updateRatingsCmd)
	rootCmd.AddCommand(importRatingsCmd)
	rootCmd.AddCommand(syncResultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listBetsCmd)
	rootCmd.AddCommand(runCmd)

	addContextFlags(analyzeCmd)
	addContextFlags(betCmd)
	analyzeCmd.Flags().Bool("diagnostics", false, "Include model diagnostics in the output")
	betCmd.Flags().String("date", "", "Match date (YYYY-MM-DD) recorded on the bet")
	syncResultsCmd.Flags().String("date", time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"), "Game date to sync (YYYY-MM-DD)")
	listBetsCmd.Flags().Bool("pending", false, "Show only unsettled bets")
}

func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("ml-home", 0, "Home moneyline (e.g. -150)")
	cmd.Flags().Float64("ml-away", 0, "Away moneyline (e.g. +130)")
	cmd.Flags().Float64("dec-home", 0, "Home decimal odds (alternative to moneylines)")
	cmd.Flags().Float64("dec-away", 0, "Away decimal odds (alternative to moneylines)")
	cmd.Flags().Int("rest-diff", 0, "Home rest days minus away rest days")
	cmd.Flags().Bool("home-b2b", false, "Home team on a back-to-back")
	cmd.Flags().Bool("away-b2b", false, "Away team on a back-to-back")
	cmd.Flags().Bool("home-star-out", false, "Home team missing a star player")
	cmd.Flags().Bool("away-star-out", false, "Away team missing a star player")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setup(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger = applogger.NewLogger(cfg.App.LogLevel)

	store = rating.NewStore(cfg.Basketball.Model.InitialElo)

	var betRepo repository.BetRepository
	var ratingRepo repository.RatingRepository
	if !noDatabase {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database (use --no-db to run in memory): %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		repos, err = repository.NewRepositories(db)
		if err != nil {
			return err
		}
		betRepo = repos.Bet
		ratingRepo = repos.Rating

		saved, err := repos.Rating.GetAll(ctx, models.SportBasketball)
		if err != nil {
			return err
		}
		loaded := make(map[string]float64, len(saved))
		for _, row := range saved {
			loaded[row.TeamName] = row.EloRating
		}
		store.Load(loaded)
	}

	engine = bot.NewEngine(engineConfig(), store, betRepo, ratingRepo, logger)
	return nil
}

func engineConfig() bot.Config {
	b := cfg.Basketball
	return bot.Config{
		Sport:           models.SportBasketball,
		KFactor:         b.Model.KFactor,
		InitialBankroll: b.Staking.Bankroll,
		Staking: staking.Params{
			KellyMultiplier:  b.Staking.KellyMultiplier,
			MaxStakePercent:  b.Staking.MaxStakePercent,
			FlatStakePercent: b.Staking.FlatStakePercent,
			UseFlatStaking:   b.Staking.UseFlatStaking,
		},
		Gate: staking.Gate{
			MinFavoriteProb: b.Staking.MinFavoriteProb,
			MinEdge:         b.Staking.MinEdge,
		},
		TwoWayParams: predict.TwoWayParams{
			HomeCourtElo:       b.HomeCourtElo,
			RestEloPerDay:      b.RestEloPerDay,
			B2BPenaltyElo:      b.B2BPenaltyElo,
			StarOutPenaltyElo:  b.StarOutPenalty,
			MarketShrinkFactor: b.Model.CalibrationShrink,
			MinProbability:     b.Model.MinProb,
			MaxProbability:     b.Model.MaxProb,
		},
		ThreeWayParams: predict.DefaultThreeWayParams(),
	}
}

func oddsFromFlags(cmd *cobra.Command) (models.OddsInput, error) {
	mlHome, _ := cmd.Flags().GetFloat64("ml-home")
	mlAway, _ := cmd.Flags().GetFloat64("ml-away")
	decHome, _ := cmd.Flags().GetFloat64("dec-home")
	decAway, _ := cmd.Flags().GetFloat64("dec-away")

	var quote models.OddsInput
	if mlHome != 0 || mlAway != 0 {
		quote.Moneyline = &models.MoneylinePair{Home: mlHome, Away: mlAway}
	}
	if decHome != 0 || decAway != 0 {
		quote.Decimal = &models.DecimalPair{Home: decHome, Away: decAway}
	}
	return quote, quote.Validate()
}

func contextFromFlags(cmd *cobra.Command) models.GameContext {
	restDiff, _ := cmd.Flags().GetInt("rest-diff")
	homeB2B, _ := cmd.Flags().GetBool("home-b2b")
	awayB2B, _ := cmd.Flags().GetBool("away-b2b")
	homeStarOut, _ := cmd.Flags().GetBool("home-star-out")
	awayStarOut, _ := cmd.Flags().GetBool("away-star-out")

	return models.GameContext{
		RestDiff:    restDiff,
		HomeB2B:     homeB2B,
		AwayB2B:     awayB2B,
		HomeStarOut: homeStarOut,
		AwayStarOut: awayStarOut,
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <home-team> <away-team>",
	Short: "Analyze a game against the market without placing a bet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quote, err := oddsFromFlags(cmd)
		if err != nil {
			return err
		}
		withDiag, _ := cmd.Flags().GetBool("diagnostics")

		analysis, err := engine.AnalyzeGame(cmd.Context(), args[0], args[1], quote, contextFromFlags(cmd), withDiag)
		if err != nil {
			return err
		}

		printGameAnalysis(analysis)
		return nil
	},
}

var betCmd = &cobra.Command{
	Use:   "bet <home-team> <away-team>",
	Short: "Analyze a game and place the recommended bet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quote, err := oddsFromFlags(cmd)
		if err != nil {
			return err
		}

		analysis, err := engine.AnalyzeGame(cmd.Context(), args[0], args[1], quote, contextFromFlags(cmd), false)
		if err != nil {
			return err
		}

		printGameAnalysis(analysis)
		if analysis.Recommendation == nil {
			fmt.Println("No bet: the gate rejected every outcome.")
			return nil
		}

		var matchDate *string
		if date, _ := cmd.Flags().GetString("date"); date != "" {
			matchDate = &date
		}

		bet, err := engine.PlaceBet(cmd.Context(), args[0], args[1], analysis.Recommendation, matchDate)
		if err != nil {
			return err
		}

		fmt.Printf("\nBet placed: %s\n", bet.ID)
		fmt.Printf("  %s @ %.2f, stake %.2f (bankroll %.2f)\n", bet.BetType, bet.Odds, bet.Stake, engine.Bankroll())
		return nil
	},
}

var settleCmd = &cobra.Command{
	Use:   "settle <bet-id> <win|loss|push>",
	Short: "Settle a pending bet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid bet id %q: %w", args[0], err)
		}

		bet, err := engine.SettleBet(cmd.Context(), id, models.BetResult(strings.ToLower(args[1])))
		if err != nil {
			return err
		}

		fmt.Printf("Bet %s settled: %s, P/L %.2f, bankroll %.2f\n", bet.ID, *bet.Result, bet.GetProfitLoss(), engine.Bankroll())
		return nil
	},
}

var updateRatingsCmd = &cobra.Command{
	Use:   "update-ratings <home-team> <away-team> <home-score> <away-score>",
	Short: "Apply a final score to the Elo ratings",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var homeScore, awayScore int
		if _, err := fmt.Sscanf(args[2]+" "+args[3], "%d %d", &homeScore, &awayScore); err != nil {
			return fmt.Errorf("scores must be integers: %w", err)
		}

		result := &models.GameResult{
			GameDate:  time.Now().UTC().Format("2006-01-02"),
			HomeTeam:  args[0],
			AwayTeam:  args[1],
			HomeScore: homeScore,
			AwayScore: awayScore,
		}
		if err := engine.UpdateRatingsFromResult(cmd.Context(), result); err != nil {
			return err
		}

		home := rating.CanonicalTeamName(args[0])
		away := rating.CanonicalTeamName(args[1])
		fmt.Printf("%s: %.1f\n%s: %.1f\n", home, store.Rating(home), away, store.Rating(away))
		return nil
	},
}

var importRatingsCmd = &cobra.Command{
	Use:   "import-ratings <csv-path>",
	Short: "Seed Elo ratings from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		importer := service.NewRatingsImporter(store, cfg.Basketball.CurrentTeamOnly, log.New(os.Stderr, "", log.LstdFlags))
		stats, err := importer.ImportFile(args[0])
		if err != nil {
			return err
		}

		if repos != nil {
			for team, elo := range store.Snapshot() {
				tr := &models.TeamRating{TeamName: team, EloRating: elo, LastUpdated: time.Now().UTC()}
				if err := repos.Rating.Upsert(cmd.Context(), models.SportBasketball, tr); err != nil {
					return err
				}
			}
		}

		fmt.Printf("Imported %d ratings (%d rows skipped)\n", stats.Imported, stats.Skipped)
		return nil
	},
}

var syncResultsCmd = &cobra.Command{
	Use:   "sync-results",
	Short: "Pull final games from the provider and update ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")

		syncer := newSyncer()
		stats, err := syncer.Sync(cmd.Context(), date)
		if err != nil {
			return err
		}

		fmt.Printf("Synced %s: %d fetched, %d applied, %d skipped\n", date, stats.Fetched, stats.Applied, stats.Skipped)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show betting performance statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := engine.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Bets:        %d total, %d settled, %d pending\n", stats.TotalBets, stats.SettledBets, stats.PendingBets)
		fmt.Printf("Record:      %d-%d (%.1f%%)\n", stats.Wins, stats.Losses, stats.WinRate)
		fmt.Printf("Staked:      %.2f\n", stats.TotalStaked)
		fmt.Printf("P/L:         %+.2f (ROI %.1f%%)\n", stats.TotalProfitLoss, stats.ROI)
		fmt.Printf("Bankroll:    %.2f\n", stats.CurrentBankroll)
		return nil
	},
}

var listBetsCmd = &cobra.Command{
	Use:   "list-bets",
	Short: "List recorded bets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if repos == nil {
			return fmt.Errorf("list-bets requires a database")
		}

		pendingOnly, _ := cmd.Flags().GetBool("pending")
		var bets []*models.Bet
		var err error
		if pendingOnly {
			bets, err = repos.Bet.GetPending(cmd.Context(), models.SportBasketball)
		} else {
			bets, err = repos.Bet.GetAll(cmd.Context(), models.SportBasketball)
		}
		if err != nil {
			return err
		}

		for _, bet := range bets {
			status := "pending"
			if bet.IsSettled() {
				status = string(*bet.Result)
			}
			fmt.Printf("%s  %s vs %s  %s @ %.2f  stake %.2f  %s\n",
				bet.ID, bet.HomeTeam, bet.AwayTeam, bet.BetType, bet.Odds, bet.Stake, status)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daemon: scheduled results sync plus health and metrics endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		healthCfg := health.Config{
			ServiceName: "elo-better-nba",
			Version:     Version,
			Logger:      logger,
		}
		if db != nil {
			healthCfg.DB = db
		}
		healthServer := health.NewServer(healthCfg)
		if err := healthServer.Start(ctx); err != nil {
			return err
		}

		if cfg.Metrics.Enabled {
			go func() {
				mux := http.NewServeMux()
				mux.Handle(cfg.Metrics.Path, metrics.Handler())
				addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
				logger.WithField("addr", addr).Info("Metrics server starting")
				if err := http.ListenAndServe(addr, mux); err != nil {
					logger.WithError(err).Error("Metrics server error")
				}
			}()
		}

		sched := scheduler.NewScheduler(log.New(os.Stderr, "", log.LstdFlags))
		if cfg.Scheduler.Enabled {
			if err := sched.ScheduleResultsSync(cfg.Scheduler.ResultsSyncCron, newSyncer(), string(models.SportBasketball)); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
		}

		healthServer.SetReady(true)
		logger.Info("NBA engine running; waiting for shutdown signal")
		<-sigChan
		logger.Info("Shutting down")
		return nil
	},
}

func newSyncer() *service.ResultsSyncer {
	provider := cfg.Providers.BallDontLie
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(provider.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = provider.RetryAttempts
	httpCfg.RateLimit = provider.RequestsPerSecond

	stdLogger := log.New(os.Stderr, "", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, stdLogger)
	source := datasource.NewBallDontLieClient(httpClient, provider.BaseURL, provider.APIKey,
		time.Duration(provider.CacheTTLSeconds)*time.Second, stdLogger)

	var ratingRepo repository.RatingRepository
	var resultRepo repository.ResultRepository
	if repos != nil {
		ratingRepo = repos.Rating
		resultRepo = repos.Result
	}

	return service.NewResultsSyncer(source, store, ratingRepo, resultRepo,
		models.SportBasketball, cfg.Basketball.Model.KFactor, stdLogger)
}

func printGameAnalysis(a *models.GameAnalysis) {
	fmt.Printf("%s (%.0f) vs %s (%.0f)\n", a.HomeTeam, a.HomeRating, a.AwayTeam, a.AwayRating)
	fmt.Printf("  home: model %.1f%%  market %.1f%%  edge %+.1f\n", a.Home.TrueProbability, a.Home.MarketProbability, a.Home.Edge)
	fmt.Printf("  away: model %.1f%%  market %.1f%%  edge %+.1f\n", a.Away.TrueProbability, a.Away.MarketProbability, a.Away.Edge)

	if a.Diagnostics != nil {
		d := a.Diagnostics
		fmt.Printf("  adj ratings: %.1f / %.1f (diff %+.1f, raw home p %.3f)\n", d.AdjHomeRating, d.AdjAwayRating, d.EloDiff, d.RawHomeWinP)
	}

	if rec := a.Recommendation; rec != nil {
		fmt.Printf("  RECOMMEND: %s @ %.2f, stake %.2f (edge %+.1f, potential profit %.2f)\n",
			rec.BetType, rec.Odds, rec.Stake, rec.Edge, rec.PotentialProfit)
	} else {
		fmt.Println("  no recommendation")
	}
}
