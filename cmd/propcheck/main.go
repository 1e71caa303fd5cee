package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"nba-prop-checker/internal/analysis"
	"nba-prop-checker/internal/api"
	"nba-prop-checker/internal/auth"
	"nba-prop-checker/internal/config"
	"nba-prop-checker/internal/gamelog"
	"nba-prop-checker/internal/logger"
)

const commandTimeout = 2 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "propcheck",
		Short:         "Check NBA player prop lines against recent box scores",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newPlayerCmd(), newEvalCmd(), newTokenCmd())
	return root
}

func loadProviderConfig() (config.Config, error) {
	cfg := config.Load()
	if err := config.ValidateProvider(cfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newPlayerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <name>",
		Short: "Look up a player by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProviderConfig()
			if err != nil {
				return err
			}
			client := api.NewBallDontLieClient(cfg.APIKey, cfg.RequestsPerMinute)

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			p, err := client.FindPlayer(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n", p.ID, p.FullName(), p.Position, p.Team.FullName)
			return nil
		},
	}
}

func newEvalCmd() *cobra.Command {
	var (
		player string
		stat   string
		line   float64
		n      int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a prop line over a player's last n games",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate before touching the network.
			if _, err := analysis.ParseStat(stat); err != nil {
				return err
			}
			if err := analysis.ValidateLine(line); err != nil {
				return err
			}
			if n <= 0 {
				return fmt.Errorf("%w: %d", analysis.ErrInvalidWindowSize, n)
			}

			cfg, err := loadProviderConfig()
			if err != nil {
				return err
			}
			log := logger.New(cfg.Env)
			defer log.Sync()

			client := api.NewBallDontLieClient(cfg.APIKey, cfg.RequestsPerMinute)
			store, err := gamelog.NewStore(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()
			games := gamelog.NewCachedSource(store, client, cfg.GameCacheTTL, log)

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			p, err := client.FindPlayer(ctx, player)
			if err != nil {
				return err
			}
			history, err := games.RecentGames(ctx, p.ID, n)
			if err != nil {
				return err
			}

			summary, err := analysis.Evaluate(stat, line, history, n)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(cmd.OutOrStdout(), p, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "player name")
	cmd.Flags().StringVar(&stat, "stat", "pts", "stat token, e.g. pts or pts+reb+ast")
	cmd.Flags().Float64Var(&line, "line", 0, "prop line")
	cmd.Flags().IntVarP(&n, "n", "n", 10, "number of recent games")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.MarkFlagRequired("player")
	cmd.MarkFlagRequired("line")
	return cmd
}

func printSummary(w io.Writer, p api.Player, s analysis.Summary) {
	fmt.Fprintf(w, "%s  %s  line %.1f  last %d (requested %d)\n\n", p.FullName(), s.Stat.Label, s.Line, s.WindowSize, s.Requested)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tGAME\tVALUE\tRESULT")
	for _, r := range s.Results {
		fmt.Fprintf(tw, "%s\t%d\t%g\t%s\n", r.Game.Date.Format("2006-01-02"), r.Game.GameID, r.Value, strings.ToUpper(string(r.Outcome)))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nover %d  under %d  push %d\n", s.Hits, s.Misses, s.Pushes)
	if s.HitRate != nil {
		fmt.Fprintf(w, "hit rate %.1f%%\n", *s.HitRate*100)
	} else {
		fmt.Fprintln(w, "hit rate n/a")
	}
	if s.CurrentStreak != nil {
		fmt.Fprintf(w, "current streak %d %s\n", s.CurrentStreak.Length, s.CurrentStreak.Outcome)
	}
	if s.LongestStreak != nil {
		fmt.Fprintf(w, "longest streak %d %s\n", s.LongestStreak.Length, s.LongestStreak.Outcome)
	}
	fmt.Fprintf(w, "mean %.1f  median %.1f  min %g  max %g\n", s.Values.Mean, s.Values.Median, s.Values.Min, s.Values.Max)
}

func newTokenCmd() *cobra.Command {
	var userID, name string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if len(cfg.JWTSecret) < config.MinJWTSecretLength {
				return fmt.Errorf("JWT_SECRET must be at least %d characters", config.MinJWTSecretLength)
			}

			token, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL).Issue(userID, name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user id stored in the token")
	cmd.Flags().StringVar(&name, "name", "", "display name stored in the token")
	cmd.MarkFlagRequired("user-id")
	return cmd
}
