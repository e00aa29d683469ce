// Package huggingface calls the hosted inference API for emotion
// classification of dream transcripts
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"dreamcatcher/dream-api/model"

	"github.com/spf13/viper"
)

var ErrNoScores = errors.New("classifier returned no scores")

type Client struct {
	HTTP     *http.Client
	ModelURL string
	Key      string
}

func New() *Client {
	return &Client{
		HTTP:     http.DefaultClient,
		ModelURL: viper.GetString("huggingface.model_url"),
		Key:      viper.GetString("huggingface.api_key"),
	}
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// Classify scores the emotional content of text. The result is the
// full label list ordered by descending score
func (c *Client) Classify(ctx context.Context, text string) (model.MoodScores, error) {
	body, err := json.Marshal(classifyRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize classify request, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ModelURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Key != "" {
		req.Header.Set("Authorization", "Bearer "+c.Key)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classification request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classification returned status %d", resp.StatusCode)
	}

	// The inference API wraps the result in one outer array per input
	var data []model.MoodScores
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode classification response, %w", err)
	}

	if len(data) == 0 || len(data[0]) == 0 {
		return nil, ErrNoScores
	}

	scores := data[0]

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores, nil
}
