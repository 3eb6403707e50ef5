package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	reportpkg "github.com/packcheck/packcheck/internal/report"
	"github.com/packcheck/packcheck/pkg/utils"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Re-render reports from a saved run directory",
		Example: "packcheck report --from ./reports/my-pack_20260825_120000 --format md,html,pdf",
		RunE:    runReport,
	}

	cmd.Flags().String("from", "", "Run directory (must contain results.json)")
	cmd.Flags().String("format", "md", "Output formats: md,html,pdf,json (json just points to results.json)")

	_ = viper.BindPFlag("report.from", cmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("report.format", cmd.Flags().Lookup("format"))
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	from := viper.GetString("report.from")
	if from == "" {
		return errors.New("please provide --from pointing to the run directory (with results.json)")
	}

	formats := strings.Split(viper.GetString("report.format"), ",")
	for i := range formats {
		formats[i] = strings.TrimSpace(strings.ToLower(formats[i]))
	}

	res, err := utils.LoadResult(from)
	if err != nil {
		return err
	}

	if contains(formats, "md") {
		mdPath := filepath.Join(from, "report.md")
		if err := reportpkg.WriteMarkdown(res, mdPath); err != nil {
			return err
		}
		fmt.Printf("📝 Markdown report: %s\n", mdPath)
	}

	if contains(formats, "html") || contains(formats, "pdf") {
		htmlPath, err := reportpkg.GenerateHTML(res, from)
		if err != nil {
			return err
		}
		fmt.Printf("📝 HTML report: %s\n", htmlPath)

		// Optional PDF (chromedp-based)
		if contains(formats, "pdf") {
			pdfPath, err := reportpkg.GeneratePDF(cmd.Context(), htmlPath)
			if err != nil {
				fmt.Printf("⚠️  PDF generation failed: %v\n", err)
			} else {
				fmt.Printf("📄 PDF report:  %s\n", pdfPath)
			}
		}
	}

	if contains(formats, "json") {
		fmt.Printf("📦 JSON already exists at: %s\n", filepath.Join(from, "results.json"))
	}

	return nil
}

func contains(arr []string, v string) bool {
	for _, x := range arr {
		if x == v {
			return true
		}
	}
	return false
}
