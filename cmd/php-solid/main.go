package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tivins/php-solid/internal/analyzer"
	"github.com/tivins/php-solid/internal/config"
	"github.com/tivins/php-solid/internal/crawler"
	"github.com/tivins/php-solid/internal/extractor"
	"github.com/tivins/php-solid/internal/report"
	"github.com/tivins/php-solid/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "php-solid",
		Short: "Static LSP/ISP contract checker for PHP codebases",
	}
	cfgPath   string
	format    string
	threshold int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}

// fatalf reports a run-level failure. Exit code 2 keeps it distinct from
// "violations found" (1).
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "php-solid.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format: text or json")
	rootCmd.PersistentFlags().IntVarP(&threshold, "threshold", "t", 0, "Fat interface method threshold")

	checkCmd.Flags().Bool("baseline", false, "Suppress violations recorded in the baseline database")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(ispCmd)
	rootCmd.AddCommand(baselineCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if threshold > 0 {
		cfg.Analysis.FatInterfaceThreshold = threshold
	}
	return cfg
}

// buildIndex discovers and parses every class under root.
func buildIndex(cfg *config.Config, root string) (*crawler.Index, []crawler.LoadError) {
	if root == "" {
		root = cfg.Project.Root
	}
	fmt.Fprintf(os.Stderr, "📂 Scanning %s\n", root)
	start := time.Now()

	idx, loadErrs, err := crawler.BuildIndex(root, extractor.NewParser(), cfg.Project.Exclude...)
	if err != nil {
		fatalf("Scan failed: %v", err)
	}
	fmt.Fprintf(os.Stderr, "   Found %d classes in %v\n", len(idx.Classes()), time.Since(start).Round(time.Millisecond))
	return idx, loadErrs
}

func runProject(cfg *config.Config, root string) *report.Report {
	idx, loadErrs := buildIndex(cfg, root)
	a := analyzer.New(idx, analyzer.Options{FatInterfaceThreshold: cfg.Analysis.FatInterfaceThreshold})
	return report.FromResult(a.CheckProject(idx.Classes()), loadErrs)
}

func writeReport(cfg *config.Config, r *report.Report) {
	var err error
	if cfg.Output.Format == "json" {
		err = report.WriteJSON(os.Stdout, r)
	} else {
		err = report.WriteText(os.Stdout, r)
	}
	if err != nil {
		fatalf("Failed to write report: %v", err)
	}
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check every class under the given path for LSP and ISP violations",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := ""
		if len(args) > 0 {
			root = args[0]
		}

		r := runProject(cfg, root)

		useBaseline, _ := cmd.Flags().GetBool("baseline")
		if useBaseline {
			store, err := storage.NewBaselineStore(cfg.Baseline.Path)
			if err != nil {
				fatalf("Failed to open baseline: %v", err)
			}
			defer store.Close()
			r, err = store.Filter(context.Background(), r)
			if err != nil {
				fatalf("Failed to apply baseline: %v", err)
			}
		}

		writeReport(cfg, r)
		if r.Total() > 0 {
			os.Exit(1)
		}
	},
}

var baselineCmd = &cobra.Command{
	Use:   "baseline [path]",
	Short: "Record the current violations as the accepted baseline",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		root := ""
		if len(args) > 0 {
			root = args[0]
		}

		r := runProject(cfg, root)

		store, err := storage.NewBaselineStore(cfg.Baseline.Path)
		if err != nil {
			fatalf("Failed to open baseline: %v", err)
		}
		defer store.Close()
		if err := store.SaveReport(context.Background(), r); err != nil {
			fatalf("Failed to save baseline: %v", err)
		}
		fmt.Printf("✅ Recorded %d violations in %s\n", r.Total(), cfg.Baseline.Path)
	},
}

var lspCmd = &cobra.Command{
	Use:   "lsp <class>",
	Short: "Check a single class against the Liskov Substitution Principle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSingle(args[0], true)
	},
}

var ispCmd = &cobra.Command{
	Use:   "isp <class>",
	Short: "Check a single class against the Interface Segregation Principle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSingle(args[0], false)
	},
}

func runSingle(class string, lsp bool) {
	cfg := loadConfig()
	idx, loadErrs := buildIndex(cfg, "")
	a := analyzer.New(idx, analyzer.Options{FatInterfaceThreshold: cfg.Analysis.FatInterfaceThreshold})

	r := report.FromResult(&analyzer.Result{ClassesChecked: 1}, loadErrs)
	var err error
	if lsp {
		r.Lsp, err = a.CheckLsp(class)
	} else {
		r.Isp, err = a.CheckIsp(class)
	}
	if err != nil {
		r.Errors = append(r.Errors, report.ClassError{Class: class, Message: err.Error()})
		r.FailedClasses++
	}

	writeReport(cfg, r)
	if r.Total() > 0 {
		os.Exit(1)
	}
}
