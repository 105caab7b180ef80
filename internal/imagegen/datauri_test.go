package imagegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDataURI(t *testing.T) {
	got := EncodeDataURI("image/png", []byte("png-bytes"))
	require.Equal(t, "data:image/png;base64,cG5nLWJ5dGVz", got)

	mime, data, err := DecodeDataURI(got)
	require.NoError(t, err)
	require.Equal(t, "image/png", mime)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestDecodeDataURIRejectsMalformed(t *testing.T) {
	for _, uri := range []string{
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:image/png;base64,***",
	} {
		_, _, err := DecodeDataURI(uri)
		require.ErrorIs(t, err, errMalformedDataURI, uri)
	}
}

func TestIsImageMIME(t *testing.T) {
	require.True(t, IsImageMIME("image/png"))
	require.True(t, IsImageMIME(" Image/JPEG"))
	require.False(t, IsImageMIME("application/pdf"))
	require.False(t, IsImageMIME(""))
	require.False(t, IsImageMIME("text/image/png"))
}

func TestClassify(t *testing.T) {
	require.Equal(t, KindNone, Classify(nil))
	require.Equal(t, KindConfiguration, Classify(fmt.Errorf("genai: %w", ErrMissingAPIKey)))
	require.Equal(t, KindEmptyResult, Classify(fmt.Errorf("genai: %w", ErrNoImage)))
	require.Equal(t, KindTransport, Classify(fmt.Errorf("%w: dial tcp", ErrTransport)))
	require.Equal(t, KindTransport, Classify(errors.New("boom")))
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "Please upload a valid image file.", UserMessage(KindInvalidInput))
	require.Contains(t, UserMessage(KindConfiguration), "API_KEY")
	require.Contains(t, UserMessage(KindEmptyResult), "No image was generated")
	require.Contains(t, UserMessage(KindTransport), "Failed to generate image.")
	require.Empty(t, UserMessage(KindNone))
}
