package render

import (
	"fmt"
	"io"
	"strings"

	"steam-analysis/internal/domain"
	"steam-analysis/internal/service"
)

const (
	recommendedLabel    = "👍 Recommended"
	notRecommendedLabel = "👎 Not Recommended"
)

// Text печатает модель отображения в виде текста для терминала.
func Text(w io.Writer, m service.DisplayModel) error {
	var b strings.Builder

	if m.Prompt != "" {
		fmt.Fprintf(&b, "> %s\n\n", m.Prompt)
	}

	switch m.Status {
	case domain.StatusIdle:
		b.WriteString("Describe your game idea to get started.\n")
	case domain.StatusLoading:
		b.WriteString("Analyzing...\n")
	case domain.StatusError:
		fmt.Fprintf(&b, "Error: %s\n", m.Error)
	case domain.StatusSuccess:
		if m.Result != nil {
			writeResult(&b, m.Result)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeResult(b *strings.Builder, r *service.ResultView) {
	writeHeading(b, "Uniqueness Score")
	fmt.Fprintf(b, "%s\n\n", r.UniqueScoreLabel)

	if len(r.PredictedTags) > 0 {
		writeHeading(b, "Predicted Tags")
		tags := make([]string, len(r.PredictedTags))
		for i, t := range r.PredictedTags {
			tags[i] = fmt.Sprintf("%s (%s)", t.Name, service.FormatPercent(t.Score))
		}
		fmt.Fprintf(b, "%s\n\n", strings.Join(tags, ", "))
	}

	writeHeading(b, "AI Review Summary")
	b.WriteString("Common Challenges & Criticisms:\n")
	writeBullets(b, r.Challenges)
	b.WriteString("Common Likes & Praises:\n")
	writeBullets(b, r.Likes)
	b.WriteString("\n")

	writeHeading(b, "Most Similar Games")
	for _, g := range r.SimilarGames {
		marker := " "
		if g.Selected {
			marker = "*"
		}
		fmt.Fprintf(b, "%s [%d] %s - %s\n      %s\n", marker, g.ID, g.Name, g.MatchLabel, g.StorePageURL)
	}
	b.WriteString("\n")

	title := "Raw Reviews"
	if r.SelectedGame != nil && r.SelectedGame.Name != "" {
		title += ": " + r.SelectedGame.Name
	}
	writeHeading(b, title)
	if len(r.Reviews) == 0 {
		fmt.Fprintf(b, "%s\n", r.NoReviewsMessage)
		return
	}
	for _, rv := range r.Reviews {
		label := notRecommendedLabel
		if rv.Recommended {
			label = recommendedLabel
		}
		fmt.Fprintf(b, "%s\n  %s\n", label, rv.ReviewText)
	}
}

func writeHeading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("=", len([]rune(title))))
}

func writeBullets(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}
