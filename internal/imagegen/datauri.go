package imagegen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var errMalformedDataURI = errors.New("malformed data uri")

// EncodeDataURI composes a self-contained data URI for an image payload.
func EncodeDataURI(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURI splits a base64 data URI back into its MIME type and bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errMalformedDataURI
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errMalformedDataURI
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", errMalformedDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", errMalformedDataURI, err)
	}
	return mime, data, nil
}
