package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/advisorhq/planengine/internal/calculation"
	"github.com/advisorhq/planengine/internal/cas"
	"github.com/advisorhq/planengine/internal/config"
	"github.com/advisorhq/planengine/internal/output"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log = logrus.New()

// logrusAdapter bridges logrus to the engine's Logger interface.
type logrusAdapter struct {
	log *logrus.Logger
}

func (a logrusAdapter) Debugf(format string, args ...any) { a.log.Debugf(format, args...) }
func (a logrusAdapter) Infof(format string, args ...any)  { a.log.Infof(format, args...) }
func (a logrusAdapter) Warnf(format string, args ...any)  { a.log.Warnf(format, args...) }
func (a logrusAdapter) Errorf(format string, args ...any) { a.log.Errorf(format, args...) }

var rootCmd = &cobra.Command{
	Use:   "planengine",
	Short: "Financial planning calculation and plan-comparison engine",
	Long:  "Deterministic financial planning calculators and the plan-comparison decision workflow for advisory use",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "planengine %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [profile-file]",
	Short: "Run all calculators for a client profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(args[0])
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd)
		if err != nil {
			return err
		}

		if statementFile, _ := cmd.Flags().GetString("statement"); statementFile != "" {
			statement, err := loadStatement(statementFile)
			if err != nil {
				return err
			}
			cas.SeedAssets(&profile.Client, statement)
			log.Infof("seeded assets from statement %s", statementFile)
		}

		now := time.Now()
		summary := engine.FinancialSummary(&profile.Client)
		netWorth := engine.NetWorth(&profile.Client)
		retirement := engine.RetirementProjection(
			profile.Client.Age(now), profile.RetirementAge, summary.MonthlyIncome)

		capacity := profile.MonthlyInvestmentCapacity
		if capacity.IsZero() && summary.MonthlySavings.GreaterThan(decimal.Zero) {
			capacity = summary.MonthlySavings
		}

		report := output.HealthReport{
			ClientName:  profile.Client.Name,
			Summary:     summary,
			NetWorth:    netWorth,
			Retirement:  retirement,
			HealthScore: engine.HealthScore(&profile.Client),
		}
		for _, goal := range profile.Goals {
			report.Goals = append(report.Goals, output.GoalLine{
				Goal:        goal,
				Feasibility: engine.GoalFeasibility(goal, capacity, now.Year()),
			})
		}

		fmt.Fprintln(os.Stdout, output.RenderHealthReport(report))
		return nil
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [profile-file]",
	Short: "Compute the financial health score for a client profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := config.NewInputParser().LoadProfile(args[0])
		if err != nil {
			return err
		}
		engine, err := buildEngine(cmd)
		if err != nil {
			return err
		}

		score := engine.HealthScore(&profile.Client)
		fmt.Fprintf(os.Stdout, "savings rate     %d / 30\n", score.SavingsRatePoints)
		fmt.Fprintf(os.Stdout, "net worth        %d / 25\n", score.NetWorthPoints)
		fmt.Fprintf(os.Stdout, "diversification  %d / 20\n", score.DiversificationPoints)
		fmt.Fprintf(os.Stdout, "debt management  %d / 25\n", score.DebtManagementPoints)
		fmt.Fprintf(os.Stdout, "total            %d / 100\n", score.Total)
		return nil
	},
}

func buildEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	assumptionsFile, _ := cmd.Flags().GetString("assumptions")
	engine := calculation.NewCalculationEngine()
	if assumptionsFile != "" {
		assumptions, scoreCfg, err := config.NewInputParser().LoadAssumptions(assumptionsFile)
		if err != nil {
			return nil, err
		}
		engine = calculation.NewCalculationEngineWithConfig(assumptions, scoreCfg)
	}
	engine.SetLogger(logrusAdapter{log: log})
	return engine, nil
}

func main() {
	viper.SetEnvPrefix("PLANENGINE")
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "info")
	viper.SetDefault("db_dsn", "")

	calculateCmd.Flags().String("assumptions", "", "YAML file overriding planning assumptions")
	calculateCmd.Flags().String("statement", "", "JSON account-statement payload to seed investment assets")
	scoreCmd.Flags().String("assumptions", "", "YAML file overriding planning assumptions")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
