package prompt

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestSurveyDriverHonoursCancelledContext(t *testing.T) {
	driver := NewSurveyDriver(&bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := driver.Input(ctx, InputConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("input: expected context.Canceled, got %v", err)
	}
	if _, err := driver.Confirm(ctx, ConfirmConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("confirm: expected context.Canceled, got %v", err)
	}
	if _, err := driver.Select(ctx, SelectConfig{Message: "x", Options: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("select: expected context.Canceled, got %v", err)
	}
	if _, err := driver.TextArea(ctx, TextAreaConfig{Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("textarea: expected context.Canceled, got %v", err)
	}
	if err := driver.Info(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("info: expected context.Canceled, got %v", err)
	}
}

func TestSurveyDriverInfoAndEmptySelect(t *testing.T) {
	var buf bytes.Buffer
	driver := NewSurveyDriver(&buf)

	if err := driver.Info(context.Background(), "overlay"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if got := buf.String(); got != "overlay\n" {
		t.Fatalf("info output: %q", got)
	}
	if _, err := driver.Select(context.Background(), SelectConfig{Message: "empty"}); err == nil {
		t.Fatalf("expected error for select without options")
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(terminal.InterruptErr); !errors.Is(err, ErrAborted) {
		t.Fatalf("interrupt should map to ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); !errors.Is(err, other) {
		t.Fatalf("other errors should pass through, got %v", err)
	}
}

func TestIndexOf(t *testing.T) {
	options := []string{"code", "plain"}
	if IndexOf(options, "plain") != 1 || IndexOf(options, "missing") != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
}
