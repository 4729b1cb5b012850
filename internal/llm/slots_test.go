package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockGenerator returns canned responses by prompt substring.
type mockGenerator struct {
	responses map[string]string
	err       error
	lastOpts  Options
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, opts Options) (string, error) {
	m.lastOpts = opts
	if m.err != nil {
		return "", m.err
	}
	for key, response := range m.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return "default response", nil
}

func (m *mockGenerator) ModelName() string { return "mock-model" }

func TestGenerateFieldCleansArtifacts(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"write the intro": "June Newsletter Intro: Summer is here!",
	}}

	field, err := GenerateField(context.Background(), mock, "intro", "please write the intro for June")
	if err != nil {
		t.Fatalf("GenerateField: %v", err)
	}

	if field.Text != "Summer is here!" {
		t.Errorf("Text = %q, want label stripped", field.Text)
	}
	if field.Slot != "intro" || field.MaxWords != 40 || field.Model != "mock-model" {
		t.Errorf("unexpected field metadata: %+v", field)
	}
	if field.ID == "" {
		t.Error("expected a generated id")
	}

	if mock.lastOpts.MaxTokens != 150 {
		t.Errorf("MaxTokens = %d, want the intro slot budget", mock.lastOpts.MaxTokens)
	}
	if mock.lastOpts.Temperature != 0.8 {
		t.Errorf("Temperature = %v", mock.lastOpts.Temperature)
	}
}

func TestGenerateFieldEnforcesWordLimit(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("teaser word ", 20))
	mock := &mockGenerator{responses: map[string]string{"question": long}}

	field, err := GenerateField(context.Background(), mock, "gtp_question", "write the question")
	if err != nil {
		t.Fatalf("GenerateField: %v", err)
	}

	words := strings.Fields(strings.TrimSuffix(field.Text, "..."))
	if len(words) > 15 {
		t.Errorf("word count = %d, want <= 15: %q", len(words), field.Text)
	}
	if !strings.HasSuffix(field.Text, "...") {
		t.Errorf("truncated text should end with ellipsis: %q", field.Text)
	}
}

func TestGenerateFieldPropagatesError(t *testing.T) {
	mock := &mockGenerator{err: errors.New("model down")}
	if _, err := GenerateField(context.Background(), mock, "intro", "anything"); err == nil {
		t.Fatal("expected error from failing generator")
	}
}

func TestSlotForUnknownName(t *testing.T) {
	slot := SlotFor("brand-new-slot")
	if slot.Name != "brand-new-slot" {
		t.Errorf("Name = %q", slot.Name)
	}
	if slot.MaxTokens != 300 || slot.MaxWords != 0 {
		t.Errorf("unexpected default contract: %+v", slot)
	}
}
