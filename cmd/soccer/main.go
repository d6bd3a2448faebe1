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
	Use:   "soccer",
	Short: "Elo-driven soccer betting engine",
	Long:  `Analyzes 1X2 soccer markets against Elo ratings, sizes and tracks bets, and keeps ratings in sync with finished matches.`,
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
	rootCmd.AddCommand(syncResultsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listBetsCmd)
	rootCmd.AddCommand(runCmd)

	addMatchFlags(analyzeCmd)
	addMatchFlags(betCmd)
	analyzeCmd.Flags().Bool("diagnostics", false, "Include model diagnostics in the output")
	betCmd.Flags().String("date", "", "Match date (YYYY-MM-DD) recorded on the bet")
	syncResultsCmd.Flags().String("date", time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"), "Match date to sync (YYYY-MM-DD)")
	listBetsCmd.Flags().Bool("pending", false, "Show only unsettled bets")
}

func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("home", 0, "Home decimal odds")
	cmd.Flags().Float64("draw", 0, "Draw decimal odds")
	cmd.Flags().Float64("away", 0, "Away decimal odds")
	cmd.Flags().Float64("home-form", 0, "Home recent form in [-1, 1]")
	cmd.Flags().Float64("away-form", 0, "Away recent form in [-1, 1]")
	cmd.Flags().Int("home-gd", 0, "Home season goal differential")
	cmd.Flags().Int("away-gd", 0, "Away season goal differential")
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

	store = rating.NewStore(cfg.Soccer.Model.InitialElo)

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

		saved, err := repos.Rating.GetAll(ctx, models.SportSoccer)
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
	s := cfg.Soccer
	return bot.Config{
		Sport:           models.SportSoccer,
		KFactor:         s.Model.KFactor,
		InitialBankroll: s.Staking.Bankroll,
		Staking: staking.Params{
			KellyMultiplier:  s.Staking.KellyMultiplier,
			MaxStakePercent:  s.Staking.MaxStakePercent,
			FlatStakePercent: s.Staking.FlatStakePercent,
			UseFlatStaking:   s.Staking.UseFlatStaking,
		},
		Gate: staking.Gate{
			MinFavoriteProb: s.Staking.MinFavoriteProb,
			MinEdge:         s.Staking.MinEdge,
			MinEloGap:       s.MinEloGap,
		},
		TwoWayParams: predict.DefaultTwoWayParams(),
		ThreeWayParams: predict.ThreeWayParams{
			HomeAdvantage:      s.HomeAdvantage,
			FormEloScale:       s.FormWeight,
			GoalDiffEloPerGoal: s.GoalDiffWeight,
			GoalDiffCap:        s.MaxGoalDiff,
			DrawBase:           s.DrawBase,
			MarketShrinkFactor: s.Model.CalibrationShrink,
			MinProbability:     s.Model.MinProb,
			MaxProbability:     s.Model.MaxProb,
			MinDrawProbability: s.MinDrawProb,
			MaxDrawProbability: s.MaxDrawProb,
		},
	}
}

func quoteFromFlags(cmd *cobra.Command) (models.DecimalTriple, error) {
	home, _ := cmd.Flags().GetFloat64("home")
	draw, _ := cmd.Flags().GetFloat64("draw")
	away, _ := cmd.Flags().GetFloat64("away")

	quote := models.DecimalTriple{Home: home, Draw: draw, Away: away}
	if home <= 1.0 || draw <= 1.0 || away <= 1.0 {
		return quote, models.ErrInvalidOddsInput
	}
	return quote, nil
}

func contextFromFlags(cmd *cobra.Command) models.MatchContext {
	homeForm, _ := cmd.Flags().GetFloat64("home-form")
	awayForm, _ := cmd.Flags().GetFloat64("away-form")
	homeGD, _ := cmd.Flags().GetInt("home-gd")
	awayGD, _ := cmd.Flags().GetInt("away-gd")

	return models.MatchContext{
		HomeForm:     homeForm,
		AwayForm:     awayForm,
		HomeGoalDiff: homeGD,
		AwayGoalDiff: awayGD,
	}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <home-team> <away-team>",
	Short: "Analyze a match against the 1X2 market without placing a bet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quote, err := quoteFromFlags(cmd)
		if err != nil {
			return err
		}
		withDiag, _ := cmd.Flags().GetBool("diagnostics")

		analysis, err := engine.AnalyzeMatch(cmd.Context(), args[0], args[1], quote, contextFromFlags(cmd), withDiag)
		if err != nil {
			return err
		}

		printMatchAnalysis(analysis)
		return nil
	},
}

var betCmd = &cobra.Command{
	Use:   "bet <home-team> <away-team>",
	Short: "Analyze a match and place the recommended bet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quote, err := quoteFromFlags(cmd)
		if err != nil {
			return err
		}

		analysis, err := engine.AnalyzeMatch(cmd.Context(), args[0], args[1], quote, contextFromFlags(cmd), false)
		if err != nil {
			return err
		}

		printMatchAnalysis(analysis)
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
	Short: "Apply a full-time score to the Elo ratings",
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

var syncResultsCmd = &cobra.Command{
	Use:   "sync-results",
	Short: "Pull finished matches from the provider and update ratings",
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
			bets, err = repos.Bet.GetPending(cmd.Context(), models.SportSoccer)
		} else {
			bets, err = repos.Bet.GetAll(cmd.Context(), models.SportSoccer)
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
			ServiceName: "elo-better-soccer",
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
			if err := sched.ScheduleResultsSync(cfg.Scheduler.ResultsSyncCron, newSyncer(), string(models.SportSoccer)); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
		}

		healthServer.SetReady(true)
		logger.Info("Soccer engine running; waiting for shutdown signal")
		<-sigChan
		logger.Info("Shutting down")
		return nil
	},
}

func newSyncer() *service.ResultsSyncer {
	provider := cfg.Providers.FootballData
	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(provider.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = provider.RetryAttempts
	httpCfg.RateLimit = provider.RequestsPerSecond

	stdLogger := log.New(os.Stderr, "", log.LstdFlags)
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, stdLogger)
	source := datasource.NewFootballDataClient(httpClient, provider.BaseURL, provider.APIKey,
		cfg.Soccer.CompetitionCode, time.Duration(provider.CacheTTLSeconds)*time.Second, stdLogger)

	var ratingRepo repository.RatingRepository
	var resultRepo repository.ResultRepository
	if repos != nil {
		ratingRepo = repos.Rating
		resultRepo = repos.Result
	}

	return service.NewResultsSyncer(source, store, ratingRepo, resultRepo,
		models.SportSoccer, cfg.Soccer.Model.KFactor, stdLogger)
}

func printMatchAnalysis(a *models.MatchAnalysis) {
	fmt.Printf("%s (%.0f) vs %s (%.0f)\n", a.HomeTeam, a.HomeRating, a.AwayTeam, a.AwayRating)
	fmt.Printf("  home: model %.1f%%  market %.1f%%  edge %+.1f\n", a.Home.TrueProbability, a.Home.MarketProbability, a.Home.Edge)
	fmt.Printf("  draw: model %.1f%%  market %.1f%%  edge %+.1f\n", a.Draw.TrueProbability, a.Draw.MarketProbability, a.Draw.Edge)
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
