package ner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPersonName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain name", "John Smith", true},
		{"middle initial", "John Q. Smith", true},
		{"too short", "Jo", false},
		{"single token", "Smith", false},
		{"all caps heading", "ELECTION OF DIRECTORS", false},
		{"organization suffix", "Acme Corporation", false},
		{"university", "Boston University", false},
		{"commission", "Securities Exchange Commission", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validPersonName(tt.input))
		})
	}
}

func TestPatternExtractor_Available(t *testing.T) {
	assert.True(t, NewPatternExtractor().Available())
}

func TestPatternExtractor_FindsNames(t *testing.T) {
	e := NewPatternExtractor()

	text := "The board nominated John Smith and later Jane Q. Doe as directors."
	persons, err := e.ExtractPersonNames(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, persons, 2)

	assert.Equal(t, "John Smith", persons[0].Name)
	assert.Equal(t, "Jane Q. Doe", persons[1].Name)
	for _, p := range persons {
		assert.Equal(t, p.Name, text[p.Start:p.End])
	}
}

func TestPatternExtractor_FiltersOrganizations(t *testing.T) {
	e := NewPatternExtractor()

	persons, err := e.ExtractPersonNames(context.Background(),
		"Shares of Acme Corporation trade on the Nasdaq Exchange in dollars.")
	require.NoError(t, err)
	assert.Empty(t, persons)
}

func TestPatternExtractor_EmptyText(t *testing.T) {
	e := NewPatternExtractor()

	persons, err := e.ExtractPersonNames(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, persons)
}

// fakeClient satisfies llm.Client with canned output.
type fakeClient struct {
	response string
	err      error
	closed   bool
}

func (f *fakeClient) GenerateJSON(context.Context, string) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestGeminiExtractor_ResolvesOffsets(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{response: `["John Smith"]`})

	text := "John Smith is a director. John Smith also chairs the committee."
	persons, err := e.ExtractPersonNames(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, persons, 2)

	for _, p := range persons {
		assert.Equal(t, "John Smith", p.Name)
		assert.Equal(t, p.Name, text[p.Start:p.End])
	}
	assert.Less(t, persons[0].Start, persons[1].Start)
}

func TestGeminiExtractor_DropsInventedNames(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{response: `["John Smith", "Jane Doe"]`})

	persons, err := e.ExtractPersonNames(context.Background(), "Only John Smith appears here.")
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "John Smith", persons[0].Name)
}

func TestGeminiExtractor_FiltersInvalidNames(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{response: `["Boston University", "John Smith"]`})

	persons, err := e.ExtractPersonNames(context.Background(),
		"John Smith attended Boston University.")
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "John Smith", persons[0].Name)
}

func TestGeminiExtractor_FencedResponse(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{response: "```json\n[\"John Smith\"]\n```"})

	persons, err := e.ExtractPersonNames(context.Background(), "John Smith is a nominee.")
	require.NoError(t, err)
	assert.Len(t, persons, 1)
}

func TestGeminiExtractor_EmptyArray(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{response: `[]`})

	persons, err := e.ExtractPersonNames(context.Background(), "Nobody is named in this text.")
	require.NoError(t, err)
	assert.Empty(t, persons)
}

func TestGeminiExtractor_ClientError(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{err: errors.New("quota exceeded")})

	_, err := e.ExtractPersonNames(context.Background(), "John Smith")
	assert.Error(t, err)
}

func TestGeminiExtractor_MalformedResponse(t *testing.T) {
	e := NewGeminiExtractorWithClient(&fakeClient{response: `{"not": "an array"}`})

	_, err := e.ExtractPersonNames(context.Background(), "John Smith")
	assert.Error(t, err)
}

func TestGeminiExtractor_Availability(t *testing.T) {
	assert.True(t, NewGeminiExtractorWithClient(&fakeClient{}).Available())
	assert.False(t, NewGeminiExtractorWithClient(nil).Available())
}

func TestGeminiExtractor_Close(t *testing.T) {
	client := &fakeClient{}
	e := NewGeminiExtractorWithClient(client)

	require.NoError(t, e.Close())
	assert.True(t, client.closed)
}
