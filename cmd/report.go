package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gitscout/gitscout/internal/engine"
)

const maxTableSkills = 4

var (
	strongColor = color.New(color.FgGreen, color.Bold) // 80 and above
	goodColor   = color.New(color.FgYellow)            // 50 to 79
	weakColor   = color.New(color.FgRed)               // below 50
)

func colorScore(score int) string {
	text := strconv.Itoa(score)
	switch {
	case score >= 80:
		return strongColor.Sprint(text)
	case score >= 50:
		return goodColor.Sprint(text)
	default:
		return weakColor.Sprint(text)
	}
}

// renderRanking prints the candidate leaderboard, best profile score first.
func renderRanking(analyses []*engine.ProfileAnalysis) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{
		"Rank", "Candidate", "Profile", "Technical", "Relevance", "Quality", "Activity", "Top Language", "Matched Skills",
	})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, a := range analyses {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			a.Handle,
			colorScore(a.Scores.Profile),
			colorScore(a.Scores.Technical),
			colorScore(a.Scores.Relevance),
			colorScore(a.Scores.CodeQuality),
			colorScore(a.Scores.Activity),
			a.Insights.PrimaryLanguage,
			joinLimited(a.SkillsMatch, maxTableSkills),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderBreakdown prints one candidate's per-repository detail.
func renderBreakdown(a *engine.ProfileAnalysis) error {
	fmt.Printf("\n%s  activity: %s  popularity: %s\n\n",
		a.Handle, a.Insights.ActivityLevel, a.Insights.PopularityLevel)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{
		"Repository", "Language", "Files", "LOC", "Quality", "Security", "Tests", "Relevance", "Similarity",
	})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range a.Repositories {
		similarity := "-"
		if r.Similarity != nil {
			similarity = colorScore(r.Similarity.SimilarityScore)
		}
		data = append(data, []string{
			r.Name,
			r.Language,
			strconv.Itoa(r.FilesAnalyzed),
			strconv.Itoa(r.LinesOfCode),
			colorScore(r.Quality.OverallScore),
			colorScore(r.Quality.SecurityScore),
			colorScore(r.Quality.TestingScore),
			colorScore(r.RelevanceScore),
			similarity,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, s := range a.Skipped {
		fmt.Printf("skipped %s: %s\n", s.Name, s.Reason)
	}
	return nil
}

// dumpToTmpFile writes the full analyses as JSON and returns the filename.
func dumpToTmpFile(analyses []*engine.ProfileAnalysis) (string, error) {
	file, err := os.CreateTemp("", app+"-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(analyses); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + fmt.Sprintf(" +%d", len(items)-limit)
}
