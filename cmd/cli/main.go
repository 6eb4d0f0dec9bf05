package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhalland/barvakt/internal/config"
	"github.com/mhalland/barvakt/internal/logging"
	"github.com/mhalland/barvakt/pkg/clients/rosterclient"
	"github.com/mhalland/barvakt/pkg/clients/surveyclient"
	"github.com/mhalland/barvakt/pkg/core/scheduler"
	"github.com/mhalland/barvakt/pkg/core/services"
	"github.com/mhalland/barvakt/pkg/render"
)

// App holds the application dependencies
type App struct {
	cfg          *config.Config
	rosterClient *rosterclient.Client
	surveyClient *surveyclient.Client
	logger       *zap.Logger
	ctx          context.Context
}

var (
	env        string
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "barvakt",
		Short: "Barvakt CLI - Generate monthly bar shift schedules",
		Long:  `A CLI tool that matches availability survey responses against the member roster and generates a colored monthly shift schedule.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name used for log file prefixes")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: barvakt_config.yaml)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(listMembersCmd())
	rootCmd.AddCommand(viewResponsesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and file clients
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.rosterClient = rosterclient.NewClient(app.cfg.MembersFile)
	app.surveyClient = surveyclient.NewClient(app.cfg.SurveyFile, time.Month(app.cfg.Month), app.logger)

	return nil
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the monthly schedule from the survey export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetInt64("seed")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			outPath, _ := cmd.Flags().GetString("out")

			result, err := services.GenerateSchedule(
				app.ctx,
				app.rosterClient,
				app.surveyClient,
				app.cfg,
				app.logger,
				services.GenerateOptions{Seed: seed},
			)
			if err != nil {
				return err
			}

			printSummary(result)

			if dryRun {
				fmt.Println("Dry run - no workbook written.")
				return nil
			}

			if outPath == "" {
				fileName := fmt.Sprintf("%s_schedule_%d.xlsx",
					strings.ToLower(scheduler.MonthName(result.Month)), result.Year)
				outPath = filepath.Join(app.cfg.OutputDir, fileName)
			}

			if err := render.WriteSchedule(outPath, result); err != nil {
				return fmt.Errorf("failed to write schedule: %w", err)
			}

			fmt.Printf("Saved schedule to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Seed for the assignment shuffles (0 = seed from clock)")
	cmd.Flags().Bool("dry-run", false, "Generate without writing the workbook")
	cmd.Flags().String("out", "", "Output path for the workbook")

	return cmd
}

func listMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listMembers",
		Short: "List the canonical member roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.rosterClient.ListMembers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			fmt.Printf("\nFound %d members:\n\n", len(members))
			for _, member := range members {
				fmt.Printf("- %s\n", member)
			}
			return nil
		},
	}
}

func viewResponsesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewResponses",
		Short: "Show parsed survey responses without assigning shifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ViewResponses(app.ctx, app.rosterClient, app.surveyClient, app.cfg, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nResponses (%d):\n", len(result.Responses))
			for _, response := range result.Responses {
				fmt.Printf("\n  %s\n", response.Member)
				for _, entry := range response.Availability {
					kinds := make([]string, len(entry.Shifts))
					for i, kind := range entry.Shifts {
						kinds[i] = string(kind)
					}
					fmt.Printf("    %-8s %s\n", scheduler.DateLabel(entry.Day, result.Month), strings.Join(kinds, ", "))
				}
			}

			if len(result.NoReply) > 0 {
				fmt.Printf("\nNo reply (%d):\n", len(result.NoReply))
				for _, member := range result.NoReply {
					fmt.Printf("  - %s\n", member)
				}
			}

			if len(result.Review) > 0 {
				fmt.Printf("\nManual review (%d):\n", len(result.Review))
				for _, record := range result.Review {
					fmt.Printf("  %q -> %s (confidence %s)\n", record.InputName, record.PossibleMatch, record.Confidence)
				}
			}

			return nil
		},
	}
}

func printSummary(result *services.GenerateScheduleResult) {
	fmt.Printf("\n✓ Schedule generated (run %s, seed %d)\n\n", result.RunID, result.Seed)

	unfilled := 0
	for _, totals := range result.Totals {
		marker := ""
		if totals.NoReply {
			marker = " (no reply)"
		}
		fmt.Printf("  %-30s %d shifts, %d available days%s\n",
			totals.Name, totals.Assigned, totals.AvailableDays, marker)
		if totals.Assigned == 0 {
			unfilled++
		}
	}

	if unfilled > 0 {
		fmt.Printf("\n⚠️  %d members received no shifts\n", unfilled)
	}
	if len(result.Review) > 0 {
		fmt.Printf("\n%d names need manual review (see the Manual Review sheet)\n", len(result.Review))
	}
	fmt.Println()
}
