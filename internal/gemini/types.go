package gemini

// binary payload submitted alongside a text prompt for multimodal input
type Attachment struct {
	Data     []byte
	MimeType string
}

// wire types for the generateContent endpoint

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64-encoded bytes
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type requestContent struct {
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []requestContent `json:"contents"`
}

type candidateContent struct {
	Parts []part `json:"parts"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

// wire types for the predict (image generation) endpoint

type imageInstance struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	SampleCount    int    `json:"sampleCount"`
	OutputMimeType string `json:"outputMimeType"`
	AspectRatio    string `json:"aspectRatio"`
}

type predictRequest struct {
	Instances  []imageInstance `json:"instances"`
	Parameters imageParameters `json:"parameters"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
	Error       *apiError    `json:"error,omitempty"`
}

// error envelope returned by both endpoints on failure statuses
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type apiErrorEnvelope struct {
	Error *apiError `json:"error"`
}
