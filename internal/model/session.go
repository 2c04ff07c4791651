package model

// UploadedFile is the decoded upload. Text is guaranteed to be valid UTF-8.
type UploadedFile struct {
	Name     string `json:"name"`
	RawBytes []byte `json:"-"`
	Text     string `json:"text"`
}

type CleaningResult struct {
	CleanedText    string  `json:"cleaned_text"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	IsError        bool    `json:"is_error"`
	Error          string  `json:"error,omitempty"`
}

type ExplanationResult struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
	Error   string `json:"error,omitempty"`
}
