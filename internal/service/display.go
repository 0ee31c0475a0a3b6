package service

import "steam-analysis/internal/domain"

// DisplayModel - готовая к отображению модель страницы. Рендереры
// (веб-представление, CLI) читают только ее. Version растет с каждым
// изменением, клиент может отбрасывать модели старше уже показанной.
type DisplayModel struct {
	Version      uint64               `json:"version"`
	Status       domain.RequestStatus `json:"status"`
	Prompt       string               `json:"prompt,omitempty"`
	RequestID    string               `json:"request_id,omitempty"`
	Error        string               `json:"error,omitempty"`
	HasSubmitted bool                 `json:"has_submitted"`
	Result       *ResultView          `json:"result,omitempty"`
}

// ResultView - часть модели, которая есть только в success.
type ResultView struct {
	UniqueScore      float64         `json:"unique_score"`
	UniqueScoreLabel string          `json:"unique_score_label"`
	SimilarGames     []GameView      `json:"similar_games"`
	PredictedTags    []domain.Tag    `json:"predicted_tags"`
	Challenges       []string        `json:"challenges"`
	Likes            []string        `json:"likes"`
	SelectedGame     *domain.Game    `json:"selected_game,omitempty"`
	Reviews          []domain.Review `json:"reviews"`
	NoReviewsMessage string          `json:"no_reviews_message,omitempty"`
}

// GameView - похожая игра с подписью совпадения и флагом выбора.
type GameView struct {
	domain.Game
	MatchLabel string `json:"match_label"`
	Selected   bool   `json:"selected"`
}

// BuildDisplay собирает DisplayModel. view может быть nil.
func BuildDisplay(state domain.RequestState, view *ReviewFilterView) DisplayModel {
	m := DisplayModel{
		Status:       state.Status,
		Prompt:       state.Prompt,
		Error:        state.Error,
		HasSubmitted: state.HasSubmitted(),
	}
	if state.HasSubmitted() {
		m.RequestID = state.RequestID.String()
	}
	if state.Status != domain.StatusSuccess || state.Result == nil {
		return m
	}
	if view == nil {
		view = NewReviewFilterView(state.Result)
	}

	result := state.Result
	selected := view.Selected()

	games := make([]GameView, len(result.SimilarGames))
	for i, g := range result.SimilarGames {
		games[i] = GameView{
			Game:       g,
			MatchLabel: FormatPercent(g.Score) + " match",
			Selected:   selected != nil && selected.ID == g.ID && selected.Name == g.Name,
		}
	}

	m.Result = &ResultView{
		UniqueScore:      result.UniqueScore,
		UniqueScoreLabel: FormatPercent(result.UniqueScore),
		SimilarGames:     games,
		PredictedTags:    result.PredictedTags,
		Challenges:       FormatSummary(result.ReviewSummary.Challenges),
		Likes:            FormatSummary(result.ReviewSummary.Likes),
		SelectedGame:     selected,
		Reviews:          view.FilteredReviews(),
		NoReviewsMessage: view.EmptyMessage(),
	}
	return m
}
