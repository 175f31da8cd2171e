package bridge

// GenerateRequest - POST /api/generate 요청 바디
type GenerateRequest struct {
	Prompt string     `json:"prompt"`
	APIKey Credential `json:"apiKey"`
}

// GenerateResponse - 성공 응답
type GenerateResponse struct {
	VideoURL string `json:"videoUrl"`
	Message  string `json:"message"`
}

// ErrorResponse - 실패 응답 (details 는 production 이 아닐 때만)
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Result is a successful bridge call.
type Result struct {
	VideoURL string
	Source   VideoSource
}

const SuccessMessage = "Video generated successfully"

// Response is the upstream generateContent payload. Every field is optional:
// the service does not guarantee its shape.
type Response struct {
	Candidates []*Candidate `json:"candidates,omitempty"`
}

type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type Content struct {
	Role  string  `json:"role,omitempty"`
	Parts []*Part `json:"parts,omitempty"`
}

// Part - 응답 part. 영상은 videoUrl / fileData / inlineData 중 하나로 올 수 있음
type Part struct {
	Text       *string     `json:"text,omitempty"`
	VideoURL   *string     `json:"videoUrl,omitempty"`
	FileData   *FileData   `json:"fileData,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type FileData struct {
	FileURI  string `json:"fileUri"`
	MimeType string `json:"mimeType,omitempty"`
}

// InlineData carries base64 encoded bytes exactly as the REST API returns them.
type InlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}
