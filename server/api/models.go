package api

type NarrateRequest struct {
	Guide string `json:"guide,omitempty"`

	Landmark string `json:"landmark,omitempty"`
	Context  string `json:"context,omitempty"`
	Language string `json:"language,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Photo is base64-encoded image data.
	Photo       string `json:"photo,omitempty"`
	ContentType string `json:"content_type,omitempty"`

	Illustrate bool `json:"illustrate,omitempty"`
}

type NarrateResponse struct {
	ID string `json:"id,omitempty"`

	Text string `json:"text"`

	Citations []Citation `json:"citations,omitempty"`

	Illustration *Illustration `json:"illustration,omitempty"`
}

type Citation struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri,omitempty"`
}

type Illustration struct {
	// Content is base64-encoded image data.
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
}

type TranslateRequest struct {
	Translator string `json:"translator,omitempty"`

	Text string `json:"text"`

	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	Context string `json:"context,omitempty"`
}

type TranslateResponse struct {
	Text string `json:"text"`
}

type ChatRequest struct {
	Guide string `json:"guide,omitempty"`

	Messages []ChatMessage `json:"messages"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Text string `json:"text"`
}

type SpeechRequest struct {
	Model string `json:"model,omitempty"`

	Text string `json:"text"`

	Voice        string `json:"voice,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type SpeechResponse struct {
	// Payload is base64-encoded 16-bit little-endian PCM.
	Payload string `json:"payload"`

	SampleRate int `json:"sample_rate"`
	Channels   int `json:"channels"`

	// Frames is the decoded per-channel sample count.
	Frames int `json:"frames"`
}
