package service

import "steam-analysis/internal/domain"

// Augment строит модель для отображения из сырого ответа сервиса.
//
// Игре присваивается ID, равный ее позиции в similar_games.
// Отзыву присваивается GameID = индекс отзыва mod число игр. Это заглушка:
// сервис не сообщает, к какой игре относится отзыв, поэтому связь условная
// и не отражает реальную принадлежность отзыва. Если сервис прислал
// game_index в допустимом диапазоне, он используется как есть.
// Без похожих игр все отзывы получают UnassignedGameID.
//
// Вход не модифицируется.
func Augment(raw domain.RawAnalysisResult) domain.AnalysisResult {
	gamesCount := len(raw.SimilarGames)

	games := make([]domain.Game, gamesCount)
	for i, g := range raw.SimilarGames {
		games[i] = domain.Game{
			ID:             i,
			Name:           g.Name,
			Score:          g.Score,
			HeaderImageURL: g.HeaderImageURL,
			StorePageURL:   g.StorePageURL,
		}
	}

	reviews := make([]domain.Review, len(raw.Reviews))
	for i, r := range raw.Reviews {
		reviews[i] = domain.Review{
			ID:          r.ID,
			Name:        r.Name,
			ReviewText:  r.ReviewText,
			Recommended: r.Recommended,
			GameID:      reviewGameID(i, r.GameIndex, gamesCount),
		}
	}

	tags := make([]domain.Tag, len(raw.PredictedTags))
	copy(tags, raw.PredictedTags)

	return domain.AnalysisResult{
		UniqueScore:   raw.UniqueScore,
		SimilarGames:  games,
		PredictedTags: tags,
		Reviews:       reviews,
		ReviewSummary: raw.ReviewSummary,
	}
}

func reviewGameID(reviewIndex int, explicit *int, gamesCount int) int {
	if gamesCount == 0 {
		return domain.UnassignedGameID
	}
	if explicit != nil && *explicit >= 0 && *explicit < gamesCount {
		return *explicit
	}
	return reviewIndex % gamesCount
}
