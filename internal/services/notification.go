package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ismaelfarah/studenttrack/internal/models"
	"github.com/ismaelfarah/studenttrack/internal/storage"
	"github.com/ismaelfarah/studenttrack/pkg/logger"
)

// Notifier delivers project lifecycle notifications. Implementations are
// best-effort: Dispatch never returns an error and must not panic the
// caller.
type Notifier interface {
	Dispatch(event models.NotificationEvent, project *models.Project, ctx *DispatchContext)
}

// TelegramService sends notifications through the Telegram Bot API and
// manages the stored bot configuration.
type TelegramService struct {
	store   storage.Store
	client  *http.Client
	apiBase string
}

// NewTelegramService creates a Telegram notifier backed by store.
// apiBase defaults to the public Bot API endpoint and exists so tests
// can point the service at a local server.
func NewTelegramService(store storage.Store, apiBase string) *TelegramService {
	if apiBase == "" {
		apiBase = "https://api.telegram.org"
	}
	return &TelegramService{
		store:   store,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiBase: strings.TrimSuffix(apiBase, "/"),
	}
}

// Config loads the stored bot configuration with defaults applied.
// A missing configuration returns (nil, nil); an unreadable one is
// discarded so the admin can reconfigure from scratch.
func (s *TelegramService) Config() (*models.NotificationConfig, error) {
	data, ok, err := s.store.Get(storage.KeyTelegramConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load telegram config: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var cfg models.NotificationConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.Warn().Err(err).Msg("discarding unreadable telegram config")
		if delErr := s.store.Delete(storage.KeyTelegramConfig); delErr != nil {
			logger.Error().Err(delErr).Msg("failed to delete unreadable telegram config")
		}
		return nil, nil
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// SaveConfig persists the bot configuration, filling missing per-event
// toggles with their enabled default first.
func (s *TelegramService) SaveConfig(cfg *models.NotificationConfig) error {
	cfg.ApplyDefaults()
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode telegram config: %w", err)
	}
	if err := s.store.Set(storage.KeyTelegramConfig, data); err != nil {
		return fmt.Errorf("failed to save telegram config: %w", err)
	}
	return nil
}

// Dispatch composes and delivers the notification for a lifecycle event.
// It is a silent no-op when the bot is not configured, when the event's
// toggle is off, or when there is nothing to say; delivery failures are
// logged and swallowed so notification problems never fail the mutation
// that triggered them.
func (s *TelegramService) Dispatch(event models.NotificationEvent, project *models.Project, ctx *DispatchContext) {
	cfg, err := s.Config()
	if err != nil {
		logger.Warn().Err(err).Str("event", string(event)).Msg("skipping notification")
		return
	}
	if !cfg.Configured() {
		logger.Debug().Str("event", string(event)).Msg("telegram not configured, skipping notification")
		return
	}
	if !cfg.Enabled(event) {
		logger.Debug().Str("event", string(event)).Msg("notification disabled for event")
		return
	}
	if event == models.EventDetailsUpdated && (ctx == nil || ctx.Changes == nil || ctx.Changes.Empty()) {
		return
	}

	text := ComposeMessage(event, project, ctx)
	if text == "" {
		return
	}

	// Detail updates can get long; they skip the keyboard so the message
	// body stays the focus.
	var keyboard [][]InlineButton
	if event != models.EventDetailsUpdated {
		keyboard = BuildKeyboard(project)
	}

	if err := s.send(cfg.Token, cfg.ChatID, text, keyboard); err != nil {
		logger.Error().Err(err).
			Str("event", string(event)).
			Str("project_id", project.ID).
			Msg("failed to send telegram notification")
		return
	}
	logger.Info().Str("event", string(event)).Str("project_id", project.ID).Msg("telegram notification sent")
}

// Send delivers an arbitrary MarkdownV2 message with the stored
// configuration, used by the deadline reminder sweep.
func (s *TelegramService) Send(text string, keyboard [][]InlineButton) error {
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	if !cfg.Configured() {
		return fmt.Errorf("telegram is not configured")
	}
	return s.send(cfg.Token, cfg.ChatID, text, keyboard)
}

// TestConnection sends a canned message with the given credentials,
// bypassing the stored configuration, so the admin can verify a token
// and chat id before saving them.
func (s *TelegramService) TestConnection(token, chatID string) error {
	if token == "" || chatID == "" {
		return fmt.Errorf("bot token and chat id are required")
	}
	text := "👋 This is a test message from StudentTrack\\.\n*Connection successful\\!*"
	return s.send(token, chatID, text, nil)
}

type sendMessageRequest struct {
	ChatID      string        `json:"chat_id"`
	Text        string        `json:"text"`
	ParseMode   string        `json:"parse_mode"`
	ReplyMarkup *inlineMarkup `json:"reply_markup,omitempty"`
}

type inlineMarkup struct {
	InlineKeyboard [][]InlineButton `json:"inline_keyboard"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *TelegramService) send(token, chatID, text string, keyboard [][]InlineButton) error {
	payload := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "MarkdownV2",
	}
	if len(keyboard) > 0 {
		payload.ReplyMarkup = &inlineMarkup{InlineKeyboard: keyboard}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode telegram request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, token)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiResp sendMessageResponse
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &apiResp) == nil && apiResp.Description != "" {
			return fmt.Errorf("telegram api error: %s (status %d)", apiResp.Description, resp.StatusCode)
		}
		return fmt.Errorf("telegram api returned status %d", resp.StatusCode)
	}
	return nil
}

type asyncNotifier struct {
	inner Notifier
}

// NewAsyncNotifier wraps a notifier so Dispatch returns immediately and
// the delivery runs on a background goroutine. Panics in the wrapped
// notifier are contained and logged.
func NewAsyncNotifier(n Notifier) Notifier {
	return &asyncNotifier{inner: n}
}

func (a *asyncNotifier) Dispatch(event models.NotificationEvent, project *models.Project, ctx *DispatchContext) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().Interface("panic", r).Str("event", string(event)).Msg("notification dispatch panicked")
			}
		}()
		a.inner.Dispatch(event, project, ctx)
	}()
}
