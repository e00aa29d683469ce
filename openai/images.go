package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/viper"
)

type imageRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

var ErrNoImage = errors.New("no image generated")

// GenerateImage asks the API for a single illustration of the prompt
// and returns the remote URL of the result
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(imageRequest{
		Prompt: prompt,
		N:      1,
		Size:   viper.GetString("openai.image_size"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize image request, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Key)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("image generation request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image generation returned status %d", resp.StatusCode)
	}

	var data imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode image response, %w", err)
	}

	if len(data.Data) == 0 || data.Data[0].URL == "" {
		return "", ErrNoImage
	}

	return data.Data[0].URL, nil
}
