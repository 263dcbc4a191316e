package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"robo-advisor/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an answers file offline",
	Long: `Scores a YAML file that maps questionnaire categories to answers and
prints the derived metrics and the recommended portfolio.

Example answers.yaml:

  income_regularity: Regular monthly income
  strategy: moderate growth
  investing_amount: 10000`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("file", "", "path to the answers YAML file")
	f.Bool("legacy-dependents", false, "reproduce the historical has_dependents mapping")
	f.String("format", "text", "output format (text, json)")
	_ = scoreCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(scoreCmd)
}

type scoreReport struct {
	Metrics        scoring.Metrics        `json:"metrics"`
	Classification scoring.Classification `json:"classification"`
	Unrecognized   []scoring.Answer       `json:"unrecognized,omitempty"`
	Ignored        []string               `json:"ignored,omitempty"`
}

func runScore(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	legacy, _ := cmd.Flags().GetBool("legacy-dependents")
	format, _ := cmd.Flags().GetString("format")

	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read %s", path)
	}
	report, err := scoreAnswers(data, scoring.Options{LegacyDependents: legacy})
	if err != nil {
		return err
	}
	for _, u := range report.Unrecognized {
		logger.Warn("unrecognized answer scored as zero", zap.String("category", string(u.Category)), zap.String("response", u.Response))
	}
	for _, k := range report.Ignored {
		logger.Warn("unknown category ignored", zap.String("category", k))
	}
	return writeReport(cmd.OutOrStdout(), report, format)
}

// scoreAnswers puntua un mapa categoria -> respuesta en orden de cuestionario.
func scoreAnswers(data []byte, opts scoring.Options) (scoreReport, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return scoreReport{}, eris.Wrap(err, "parse answers")
	}

	var answers []scoring.Answer
	for _, c := range scoring.Categories() {
		if v, ok := raw[string(c)]; ok {
			answers = append(answers, scoring.Answer{Category: c, Response: v})
		}
	}
	var ignored []string
	for k := range raw {
		if !scoring.Category(k).Known() {
			ignored = append(ignored, k)
		}
	}
	sort.Strings(ignored)

	result, err := scoring.NewScorer(opts).ScoreBatch(answers)
	if err != nil {
		return scoreReport{}, err
	}
	return scoreReport{
		Metrics:        result.Metrics,
		Classification: scoring.Classify(result.Metrics),
		Unrecognized:   result.Unrecognized,
		Ignored:        ignored,
	}, nil
}

func writeReport(w io.Writer, r scoreReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "text":
		m := r.Metrics
		fmt.Fprintf(w, "risk_capacity:            %v\n", m.RiskCapacity)
		fmt.Fprintf(w, "risk_tolerance:           %v\n", m.RiskTolerance)
		fmt.Fprintf(w, "investing_potential:      %v\n", m.InvestingPotential)
		fmt.Fprintf(w, "liquidity_ratio:          %v\n", m.LiquidityRatio)
		fmt.Fprintf(w, "debt_to_income_ratio:     %v\n", m.DebtToIncomeRatio)
		fmt.Fprintf(w, "investment_horizon_score: %v\n", m.InvestmentHorizonScore)
		fmt.Fprintf(w, "final_score:              %s\n", r.Classification.FinalScore)
		fmt.Fprintf(w, "portfolio:                %s (equity %d%%, fixed income %d%%)\n",
			r.Classification.Type, r.Classification.Equity, r.Classification.FixedIncome)
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
