package models

import (
	"encoding/json"
	"testing"
)

func TestApplyDefaultsFillsMissingToggles(t *testing.T) {
	// A legacy config saved before onDelete existed.
	data := []byte(`{"token":"t","chatId":"c","notifications":{"onAdd":false}}`)

	var cfg NotificationConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	cfg.ApplyDefaults()

	if cfg.Enabled(EventProjectCreated) {
		t.Error("explicit false must be preserved")
	}
	for _, ev := range []NotificationEvent{EventStatusChanged, EventDetailsUpdated, EventProjectDeleted} {
		if !cfg.Enabled(ev) {
			t.Errorf("missing toggle %s must default to enabled", ev)
		}
	}
}

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  *NotificationConfig
		want bool
	}{
		{"nil", nil, false},
		{"empty", &NotificationConfig{}, false},
		{"token only", &NotificationConfig{Token: "t"}, false},
		{"chat only", &NotificationConfig{ChatID: "c"}, false},
		{"complete", &NotificationConfig{Token: "t", ChatID: "c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}
