package service_test

import (
	"fmt"

	"steam-analysis/internal/domain"
)

// sampleRaw возвращает ответ сервиса с gamesCount играми и reviewsCount отзывами.
func sampleRaw(gamesCount, reviewsCount int) domain.RawAnalysisResult {
	raw := domain.RawAnalysisResult{
		UniqueScore: 0.8734,
		PredictedTags: []domain.Tag{
			{Name: "Roguelike", Score: 0.91},
			{Name: "Farming Sim", Score: 0.42},
		},
		ReviewSummary: domain.ReviewSummary{
			Challenges: "* Repetitive late game\n* Steep learning curve\n",
			Likes:      "* Charming art\n* Great soundtrack\n",
		},
	}
	for i := 0; i < gamesCount; i++ {
		raw.SimilarGames = append(raw.SimilarGames, domain.RawGame{
			Name:           fmt.Sprintf("Game %d", i),
			Score:          0.9 - float64(i)*0.1,
			HeaderImageURL: fmt.Sprintf("https://cdn.akamai.steamstatic.com/steam/apps/%d/header.jpg", 1000+i),
			StorePageURL:   fmt.Sprintf("https://store.steampowered.com/app/%d", 1000+i),
		})
	}
	for i := 0; i < reviewsCount; i++ {
		raw.Reviews = append(raw.Reviews, domain.RawReview{
			ID:          fmt.Sprintf("r-%d", i),
			Name:        fmt.Sprintf("player%d", i),
			ReviewText:  fmt.Sprintf("Review text %d", i),
			Recommended: i%2 == 0,
		})
	}
	return raw
}

func intPtr(v int) *int {
	return &v
}
