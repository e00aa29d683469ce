package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/spf13/viper"
)

type transcribeResponse struct {
	Text string `json:"text"`
}

// Transcribe sends an audio recording to the transcription endpoint
// and returns the recognized text. A failed call surfaces as an error
// which callers turn into "no text produced", there is no retry
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to buffer audio upload, %w", err)
	}

	if err := w.WriteField("model", viper.GetString("openai.transcribe_model")); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.Key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription returned status %d", resp.StatusCode)
	}

	var data transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode transcription response, %w", err)
	}

	return data.Text, nil
}
