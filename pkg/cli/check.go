package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/packcheck/packcheck/internal/bundle"
	reportpkg "github.com/packcheck/packcheck/internal/report"
	"github.com/packcheck/packcheck/internal/rules"
	"github.com/packcheck/packcheck/internal/schema"
	"github.com/packcheck/packcheck/internal/score"
	"github.com/packcheck/packcheck/internal/scripts"
	"github.com/packcheck/packcheck/pkg/utils"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check <pack-path>",
		Short:   "Validate a pack and generate a quality report",
		Example: "packcheck check ./my-pack --semantic-metadata ./semantic.json",
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}

	cmd.Flags().Bool("no-semantic", false, "Skip the semantic-analysis metadata export")
	cmd.Flags().String("semantic-metadata", "", "Path to write the semantic-analysis metadata export")

	_ = viper.BindPFlag("check.no_semantic", cmd.Flags().Lookup("no-semantic"))
	_ = viper.BindPFlag("check.semantic_metadata", cmd.Flags().Lookup("semantic-metadata"))
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	packPath := args[0]

	// Pre-flight fatals: no report is produced for these.
	if _, err := os.Stat(packPath); err != nil {
		return fmt.Errorf("pack path not found: %s", packPath)
	}
	if _, err := os.Stat(filepath.Join(packPath, bundle.MetadataFile)); err != nil {
		return fmt.Errorf("%s not found in: %s", bundle.MetadataFile, packPath)
	}

	start := time.Now()

	pack, err := bundle.Load(packPath)
	if err != nil {
		return err
	}

	fmt.Printf("🚀 Validating pack %s\n", pack.Name)

	limits := rules.Limits{
		MaxNameLength:        viper.GetInt("limits.max_name_length"),
		MaxBodyLines:         viper.GetInt("limits.max_body_lines"),
		MaxReferenceLines:    viper.GetInt("limits.max_reference_lines"),
		MinDescriptionLength: viper.GetInt("limits.min_description_length"),
	}
	registry := scripts.NewRegistry(scripts.Config{
		ProbeTimeout: viper.GetDuration("limits.probe_timeout"),
		HelpTimeout:  viper.GetDuration("limits.help_timeout"),
	})

	engine := rules.New(limits, registry)
	findings := engine.Run(cmd.Context(), pack)

	res := schema.RunResult{
		Pack:            pack.Name,
		Path:            pack.Path,
		Timestamp:       start,
		DurationSeconds: time.Since(start).Seconds(),
		Findings:        findings,
	}

	runDir, err := utils.SaveResult(res, viper.GetString("output"))
	if err != nil {
		return err
	}

	reportPath := filepath.Join(runDir, "report.md")
	if err := reportpkg.WriteMarkdown(res, reportPath); err != nil {
		return err
	}

	printSummary(res, reportPath)

	line, err := reportpkg.MachineSummary(res, reportPath)
	if err != nil {
		return err
	}
	fmt.Println(line)

	if !viper.GetBool("check.no_semantic") {
		if exportPath := viper.GetString("check.semantic_metadata"); exportPath != "" {
			if err := reportpkg.WriteSemanticExport(pack, res, reportPath, exportPath); err != nil {
				return err
			}
			fmt.Printf("%s::%s\n", reportpkg.SemanticToken, filepath.ToSlash(exportPath))
		}
	}

	if schema.OverallStatus(res.Findings) == schema.StatusFail {
		os.Exit(1)
	}
	return nil
}

func printSummary(res schema.RunResult, reportPath string) {
	status := schema.OverallStatus(res.Findings)
	counts := schema.CountFindings(res.Findings)
	s := score.Score(res.Findings)

	fmt.Printf("\n%s Status: %s\n", reportpkg.StatusIcon(status), status)
	fmt.Printf("📊 Score: %d/100 (%s)\n", s, score.Grade(s))
	fmt.Printf("📋 Issues: %d Critical, %d Warnings, %d Suggestions\n",
		counts.Critical, counts.Warnings, counts.Suggestions)
	fmt.Printf("📁 Report: %s\n", reportPath)

	if counts.Critical > 0 || counts.Warnings > 0 {
		fmt.Println("\nTop Issues:")
		shown := 0
		for _, f := range res.Findings {
			if f.Severity != schema.SeverityCritical && f.Severity != schema.SeverityWarning {
				continue
			}
			fmt.Printf("  %s %s\n", reportpkg.SeverityIcon(f.Severity), f.Message)
			if shown++; shown == 5 {
				break
			}
		}
	}
	fmt.Println()
}
