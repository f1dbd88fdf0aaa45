package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/advisorhq/planengine/internal/cas"
	"github.com/advisorhq/planengine/internal/compare"
	"github.com/advisorhq/planengine/internal/config"
	"github.com/advisorhq/planengine/internal/domain"
	"github.com/advisorhq/planengine/internal/output"
	"github.com/advisorhq/planengine/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// openStore picks the Postgres store when PLANENGINE_DB_DSN is set and falls
// back to an ephemeral in-memory store otherwise.
func openStore() (compare.Store, error) {
	dsn := viper.GetString("db_dsn")
	if dsn == "" {
		log.Warn("no database configured; using ephemeral in-memory store")
		return storage.NewMemoryStore(), nil
	}
	db, err := storage.Open(dsn)
	if err != nil {
		return nil, err
	}
	return storage.NewPostgresStore(db, log), nil
}

func openDecisionEngine() (*compare.DecisionEngine, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	engine := compare.NewDecisionEngine(store)
	engine.SetLogger(logrusAdapter{log: log})
	return engine, nil
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plan snapshots",
	}

	snapshot := &cobra.Command{
		Use:   "snapshot [profile-file]",
		Short: "Capture an immutable plan snapshot from a client profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.NewInputParser().LoadProfile(args[0])
			if err != nil {
				return err
			}

			calcEngine, err := buildEngine(cmd)
			if err != nil {
				return err
			}

			planID, _ := cmd.Flags().GetString("plan-id")
			comparisonType, _ := cmd.Flags().GetString("type")
			versionNum, _ := cmd.Flags().GetInt("version")
			summary, _ := cmd.Flags().GetString("summary")

			snap := calcEngine.BuildSnapshot(&profile.Client, planID, comparisonType, versionNum, summary, time.Now().UTC())

			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.SavePlan(context.Background(), snap); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "saved plan snapshot %s v%d (%s)\n", snap.PlanID, snap.Version, snap.ComparisonType)
			return nil
		},
	}
	snapshot.Flags().String("plan-id", "", "plan identifier")
	snapshot.Flags().String("type", "cash_flow", "plan comparison type")
	snapshot.Flags().Int("version", 1, "plan version")
	snapshot.Flags().String("summary", "", "free-text snapshot summary")
	snapshot.Flags().String("assumptions", "", "YAML file overriding planning assumptions")
	_ = snapshot.MarkFlagRequired("plan-id")

	cmd.AddCommand(snapshot)
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Manage plan comparisons and decisions",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a comparison from two plan snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			planA, _ := cmd.Flags().GetString("plan-a")
			planB, _ := cmd.Flags().GetString("plan-b")

			engine, err := openDecisionEngine()
			if err != nil {
				return err
			}
			c, err := engine.CreateComparison(context.Background(), planA, planB)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, output.RenderComparison(c))
			return nil
		},
	}
	create.Flags().String("plan-a", "", "plan A snapshot id")
	create.Flags().String("plan-b", "", "plan B snapshot id")
	_ = create.MarkFlagRequired("plan-a")
	_ = create.MarkFlagRequired("plan-b")

	analyze := &cobra.Command{
		Use:   "analyze [comparison-id]",
		Short: "Attach an externally produced analysis payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payloadFile, _ := cmd.Flags().GetString("payload")
			data, err := os.ReadFile(payloadFile)
			if err != nil {
				return fmt.Errorf("failed to read payload %s: %w", payloadFile, err)
			}
			var analysis domain.AIAnalysis
			if err := json.Unmarshal(data, &analysis); err != nil {
				return fmt.Errorf("failed to parse payload: %w", err)
			}

			engine, err := openDecisionEngine()
			if err != nil {
				return err
			}
			c, err := engine.AttachAnalysis(context.Background(), args[0], &analysis)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, output.RenderComparison(c))
			return nil
		},
	}
	analyze.Flags().String("payload", "", "JSON analysis payload file")
	_ = analyze.MarkFlagRequired("payload")

	decide := &cobra.Command{
		Use:   "decide [comparison-id]",
		Short: "Record the advisor's final decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			winner, _ := cmd.Flags().GetString("winner")
			reason, _ := cmd.Flags().GetString("reason")

			engine, err := openDecisionEngine()
			if err != nil {
				return err
			}
			c, err := engine.RecordDecision(context.Background(), args[0], domain.WinnerPlan(winner), reason)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, output.RenderComparison(c))
			return nil
		},
	}
	decide.Flags().String("winner", "", "planA, planB, both or neither")
	decide.Flags().String("reason", "", "decision reason")
	_ = decide.MarkFlagRequired("winner")
	_ = decide.MarkFlagRequired("reason")

	history := &cobra.Command{
		Use:   "history",
		Short: "List a client's comparison history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, _ := cmd.Flags().GetString("client")

			engine, err := openDecisionEngine()
			if err != nil {
				return err
			}
			records, err := engine.ListHistory(context.Background(), clientID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(os.Stdout, "no comparisons found")
				return nil
			}
			for i := range records {
				fmt.Fprintln(os.Stdout, output.RenderComparison(&records[i]))
			}
			return nil
		},
	}
	history.Flags().String("client", "", "client id")
	_ = history.MarkFlagRequired("client")

	cmd.AddCommand(create, analyze, decide, history)
	return cmd
}

func loadStatement(filename string) (*cas.Statement, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement %s: %w", filename, err)
	}
	var statement cas.Statement
	if err := json.Unmarshal(data, &statement); err != nil {
		return nil, fmt.Errorf("failed to parse statement: %w", err)
	}
	return &statement, nil
}
