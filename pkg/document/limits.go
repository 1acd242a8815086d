package document

const (
	MaxFileSize        = 10 * 1024 * 1024
	MaxTextLength      = 50000
	MaxSynthesisLength = 200
)

type Limits struct {
	MaxFileSize        int64 `json:"maxFileSize"`
	MaxTextLength      int   `json:"maxTextLength"`
	MaxSynthesisLength int   `json:"maxSynthesisLength"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxFileSize:        MaxFileSize,
		MaxTextLength:      MaxTextLength,
		MaxSynthesisLength: MaxSynthesisLength,
	}
}
