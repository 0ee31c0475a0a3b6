package domain

// UnassignedGameID означает, что отзыв не привязан ни к одной игре
// (в ответе сервиса нет похожих игр).
const UnassignedGameID = -1

// Game - похожая игра в том виде, в котором ее показывает клиент.
// ID назначается клиентом (позиция в similar_games), сервис его не присылает.
type Game struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	HeaderImageURL string  `json:"header_image_url"`
	StorePageURL   string  `json:"store_page_url"`
}

// Review - отзыв, связанный с игрой через GameID.
type Review struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReviewText  string `json:"review_text"`
	Recommended bool   `json:"recommended"`
	GameID      int    `json:"gameId"`
}

// Tag - предсказанный тег концепта.
type Tag struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// ReviewSummary - сгенерированная сервисом сводка по отзывам.
// Оба поля - свободный текст с маркерами "* ".
type ReviewSummary struct {
	Challenges string `json:"challenges"`
	Likes      string `json:"likes"`
}

// AnalysisResult - ответ сервиса после аугментации. После создания не меняется.
type AnalysisResult struct {
	UniqueScore   float64       `json:"unique_score"`
	SimilarGames  []Game        `json:"similar_games"`
	PredictedTags []Tag         `json:"predicted_tags"`
	Reviews       []Review      `json:"reviews"`
	ReviewSummary ReviewSummary `json:"review_summary"`
}

// GameByID возвращает игру с указанным синтетическим ID.
func (r *AnalysisResult) GameByID(id int) (Game, bool) {
	if r == nil || id < 0 || id >= len(r.SimilarGames) {
		return Game{}, false
	}
	return r.SimilarGames[id], true
}

// --- Сырые структуры ответа сервиса анализа ---

// RawGame - игра в ответе сервиса (без id).
type RawGame struct {
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	HeaderImageURL string  `json:"header_image_url"`
	StorePageURL   string  `json:"store_page_url"`
}

// RawReview - отзыв в ответе сервиса (без gameId).
// GameIndex заполняется только если сервис сам указывает игру отзыва.
type RawReview struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReviewText  string `json:"review_text"`
	Recommended bool   `json:"recommended"`
	GameIndex   *int   `json:"game_index,omitempty"`
}

// RawAnalysisResult - тело успешного ответа POST /analyze.
type RawAnalysisResult struct {
	UniqueScore   float64       `json:"unique_score"`
	SimilarGames  []RawGame     `json:"similar_games"`
	PredictedTags []Tag         `json:"predicted_tags"`
	Reviews       []RawReview   `json:"reviews"`
	ReviewSummary ReviewSummary `json:"review_summary"`
}

// AnalyzeRequest - тело запроса к сервису анализа.
type AnalyzeRequest struct {
	Description string `json:"description"`
}
