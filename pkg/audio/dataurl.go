package audio

import (
	"github.com/vincent-petithory/dataurl"
)

// DataURL embeds audio in a base64 data URL, e.g. "data:audio/wav;base64,...".
func DataURL(data []byte, contentType string) string {
	return dataurl.New(data, contentType).String()
}

func DecodeDataURL(s string) ([]byte, string, error) {
	u, err := dataurl.DecodeString(s)

	if err != nil {
		return nil, "", err
	}

	return u.Data, u.ContentType(), nil
}
