package models

import (
	"reflect"
	"testing"
)

func TestTaskInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		taskType string
		value    string
		want     map[string]string
	}{
		{TaskTypeKeywordSearch, "iPhone 15 Pro", map[string]string{"keyword": "iPhone 15 Pro"}},
		{TaskTypeURLScrape, "https://shopee.co.id/x", map[string]string{"url": "https://shopee.co.id/x"}},
		{"shop_monitor", "https://tokopedia.com/shop/1", map[string]string{"url": "https://tokopedia.com/shop/1"}},
	}

	for _, tt := range tests {
		if got := TaskInput(tt.taskType, tt.value); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TaskInput(%q, %q) = %v, want %v", tt.taskType, tt.value, got, tt.want)
		}
	}
}

func TestPlatformValid(t *testing.T) {
	t.Parallel()

	for _, p := range Platforms() {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	for _, p := range []Platform{"", "amazon", "Shopee"} {
		if p.Valid() {
			t.Errorf("%q should not be valid", p)
		}
	}
}

func TestTaskStatusTerminal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   TaskStatus
		terminal bool
	}{
		{TaskPending, false},
		{TaskRunning, false},
		{TaskCompleted, true},
		{TaskFailed, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Errorf("%q.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}
