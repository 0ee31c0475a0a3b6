package service

import (
	"fmt"

	"steam-analysis/internal/domain"
)

const unnamedGameLabel = "this game"

// ReviewFilterView хранит выбранную игру и отдает только ее отзывы.
// Сопоставление идет только по синтетическому ID игры.
// Не потокобезопасен: владелец (RequestController) защищает его своим мьютексом.
type ReviewFilterView struct {
	games    []domain.Game
	reviews  []domain.Review
	selected *domain.Game
}

// NewReviewFilterView создает представление для результата.
// По умолчанию выбрана первая игра, либо ничего, если игр нет.
func NewReviewFilterView(result *domain.AnalysisResult) *ReviewFilterView {
	v := &ReviewFilterView{}
	if result == nil {
		return v
	}
	v.games = result.SimilarGames
	v.reviews = result.Reviews
	if len(v.games) > 0 {
		first := v.games[0]
		v.selected = &first
	}
	return v
}

// Selected возвращает выбранную игру или nil.
func (v *ReviewFilterView) Selected() *domain.Game {
	if v.selected == nil {
		return nil
	}
	g := *v.selected
	return &g
}

// SelectGame делает игру выбранной. Игра может отсутствовать в списке,
// тогда список отзывов будет пустым.
func (v *ReviewFilterView) SelectGame(game domain.Game) {
	v.selected = &game
}

// Games возвращает известные игры.
func (v *ReviewFilterView) Games() []domain.Game {
	return v.games
}

// FilteredReviews - отзывы выбранной игры в исходном порядке.
func (v *ReviewFilterView) FilteredReviews() []domain.Review {
	filtered := make([]domain.Review, 0)
	if !v.isKnown(v.selected) {
		return filtered
	}
	for _, r := range v.reviews {
		if r.GameID == v.selected.ID {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// EmptyMessage - текст, который показывается вместо пустого списка отзывов.
// Возвращает "" если отзывы есть.
func (v *ReviewFilterView) EmptyMessage() string {
	if len(v.FilteredReviews()) > 0 {
		return ""
	}
	name := unnamedGameLabel
	if v.selected != nil && v.selected.Name != "" {
		name = v.selected.Name
	}
	return fmt.Sprintf("No reviews for %s yet.", name)
}

// isKnown проверяет игру по списку: совпасть должны и ID, и имя.
func (v *ReviewFilterView) isKnown(game *domain.Game) bool {
	if game == nil || game.ID < 0 || game.ID >= len(v.games) {
		return false
	}
	return v.games[game.ID].Name == game.Name
}
