package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractionText(t *testing.T) {
	t.Run("解析纯JSON成功", func(t *testing.T) {
		text := `{
			"sender": "EDF France",
			"recipient": "Jean Dupont",
			"subject": "Facture d'électricité",
			"reference": "2024-FACT-001",
			"date": "12/03/2024",
			"isUrgent": true,
			"summary": "Facture à régler sous 15 jours."
		}`

		result, err := parseExtractionText(text)

		require.NoError(t, err)
		assert.Equal(t, "EDF France", result.Sender)
		assert.Equal(t, "Jean Dupont", result.Recipient)
		assert.Equal(t, "Facture d'électricité", result.Subject)
		assert.Equal(t, "2024-FACT-001", result.Reference)
		assert.Equal(t, "12/03/2024", result.Date)
		assert.True(t, result.IsUrgent)
		assert.Equal(t, "Facture à régler sous 15 jours.", result.Summary)
	})

	t.Run("剥离markdown代码块围栏", func(t *testing.T) {
		text := "```json\n{\"sender\": \"CPAM\", \"isUrgent\": false}\n```"

		result, err := parseExtractionText(text)

		require.NoError(t, err)
		assert.Equal(t, "CPAM", result.Sender)
		assert.False(t, result.IsUrgent)
	})

	t.Run("缺失字段取零值", func(t *testing.T) {
		result, err := parseExtractionText(`{"subject": "Courrier"}`)

		require.NoError(t, err)
		assert.Equal(t, "Courrier", result.Subject)
		assert.Empty(t, result.Sender)
		assert.Empty(t, result.Reference)
		assert.False(t, result.IsUrgent)
	})

	t.Run("非JSON文本失败", func(t *testing.T) {
		_, err := parseExtractionText("désolé, je ne peux pas analyser ce document")

		assert.Error(t, err)
	})

	t.Run("空文本失败", func(t *testing.T) {
		_, err := parseExtractionText("")

		assert.Error(t, err)
	})
}

func TestStubClient(t *testing.T) {
	client := NewStubClient()
	defer client.Close()

	_, err := client.Extract(context.Background(), nil)

	assert.ErrorIs(t, err, ErrExtractionFailed)
}
