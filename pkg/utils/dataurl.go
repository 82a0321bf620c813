package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrMissingSeparator = errors.New("data url has no comma separator")

// SplitDataURL splits "data:<mime>;base64,<payload>" at the first comma.
// Anything after the first comma, including further commas, is payload.
func SplitDataURL(data string) (header, payload string, err error) {
	header, payload, found := strings.Cut(data, ",")
	if !found {
		return "", "", ErrMissingSeparator
	}
	return header, payload, nil
}

// DecodeBase64 decodes standard, padded Base64.
func DecodeBase64(payload string) ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return decoded, nil
}

func ParseDataURL(data string) (string, []byte, error) {
	header, payload, err := SplitDataURL(data)
	if err != nil {
		return "", nil, err
	}
	decoded, err := DecodeBase64(payload)
	if err != nil {
		return "", nil, err
	}
	return header, decoded, nil
}

func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
