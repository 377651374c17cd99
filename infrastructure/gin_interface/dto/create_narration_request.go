package dto

type CreateNarrationRequest struct {
	ArticleText string `json:"article_text" binding:"required"`
	Voice       string `json:"voice"`
}

type CreateNarrationResponse struct {
	NarrationID     string  `json:"narration_id"`
	Summary         string  `json:"summary"`
	AudioBase64     string  `json:"audio_base64"`
	MediaType       string  `json:"media_type"`
	SampleRate      int     `json:"sample_rate"`
	DurationSeconds float64 `json:"duration_seconds"`
}
