// Package openai defines the clients used to talk to the OpenAI API
// for image generation and audio transcription
package openai

import (
	"net/http"

	"github.com/spf13/viper"
)

type Client struct {
	HTTP    *http.Client
	BaseURL string
	Key     string
}

// New builds a client from the openai.* config section. No timeout is
// set on top of the default transport, calls are fire-once per user
// action and rely on the context they're given
func New() *Client {
	return &Client{
		HTTP:    http.DefaultClient,
		BaseURL: viper.GetString("openai.base_url"),
		Key:     viper.GetString("openai.api_key"),
	}
}
