package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mentorbot/internal/config"
)

// maxMessageLength is the Bot API limit minus headroom for formatting.
const maxMessageLength = 4000

// Client is a minimal Telegram Bot API client covering what the bot needs:
// long polling, text messages with keyboards, chat actions, callback acks
// and voice uploads.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	debug      bool
}

// NewClient creates a Bot API client from the config.
func NewClient(cfg *config.BotConfig) *Client {
	if cfg.Token == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	return &Client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			// Long poll requests stay open up to the poll timeout.
			Timeout: time.Duration(cfg.PollTimeout+10) * time.Second,
		},
		debug: cfg.Debug,
	}
}

func (c *Client) methodURL(method string) string {
	return c.baseURL + "/bot" + c.token + "/" + method
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if c.debug {
		log.Printf("[Telegram] %s %s", method, jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.methodURL(method), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("%s: bad response: %w", method, err)
	}
	if !api.OK {
		return nil, fmt.Errorf("%s: api error %d: %s", method, api.ErrorCode, api.Description)
	}
	return api.Result, nil
}

// GetUpdates long-polls for new updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error) {
	result, err := c.call(ctx, "getUpdates", map[string]interface{}{
		"offset":          offset,
		"timeout":         timeout,
		"allowed_updates": []string{"message", "callback_query"},
	})
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage sends text to a chat, splitting it at the API length limit.
// replyMarkup may be nil, a keyboard or a keyboard removal.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyMarkup interface{}) error {
	parts := SplitMessage(text, maxMessageLength)
	for i, part := range parts {
		payload := map[string]interface{}{
			"chat_id": chatID,
			"text":    part,
		}
		// Keyboard goes on the last part only.
		if replyMarkup != nil && i == len(parts)-1 {
			payload["reply_markup"] = replyMarkup
		}
		if _, err := c.call(ctx, "sendMessage", payload); err != nil {
			return err
		}
	}
	return nil
}

// EditMessageText rewrites a previously sent message, dropping any inline
// keyboard it carried.
func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string) error {
	_, err := c.call(ctx, "editMessageText", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	})
	return err
}

// SendChatAction shows a "typing..." style indicator.
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action string) error {
	_, err := c.call(ctx, "sendChatAction", map[string]interface{}{
		"chat_id": chatID,
		"action":  action,
	})
	return err
}

// AnswerCallbackQuery acknowledges an inline button press.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	_, err := c.call(ctx, "answerCallbackQuery", map[string]interface{}{
		"callback_query_id": callbackID,
	})
	return err
}

// SendVoice uploads a voice note via multipart form data.
func (c *Client) SendVoice(ctx context.Context, chatID int64, audio []byte, caption string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return err
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return err
		}
	}
	part, err := writer.CreateFormFile("voice", "meditation.ogg")
	if err != nil {
		return err
	}
	if _, err := part.Write(audio); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.methodURL("sendVoice"), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return fmt.Errorf("sendVoice: bad response: %w", err)
	}
	if !api.OK {
		return fmt.Errorf("sendVoice: api error %d: %s", api.ErrorCode, api.Description)
	}
	return nil
}

// SplitMessage cuts text into chunks of at most limit runes, preferring
// paragraph breaks, then line breaks, then spaces, over hard cuts.
func SplitMessage(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	var parts []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		window := string(runes[:limit])
		for _, sep := range []string{"\n\n", "\n", " "} {
			if idx := strings.LastIndex(window, sep); idx > 0 {
				cut = len([]rune(window[:idx]))
				break
			}
		}
		parts = append(parts, strings.TrimSpace(string(runes[:cut])))
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
