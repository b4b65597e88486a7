package ai

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Image is a fully buffered upload handed to a vision model.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL renders the image as data:<mime>;base64,<payload>.
func (i Image) DataURL() string {
	return EncodeDataURL(i.MIMEType, i.Data)
}

var errMalformedDataURL = errors.New("malformed data URL")

func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL is the inverse of EncodeDataURL.
func DecodeDataURL(url string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, errMalformedDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errMalformedDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errMalformedDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}
