// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestTriggerCtxKey(t *testing.T) {
	if TriggerCtxKey.String() != "syncTrigger" {
		t.Errorf("expected 'syncTrigger', got '%s'", TriggerCtxKey.String())
	}
}

func TestTriggerFromContext_Success(t *testing.T) {
	ctx := WithTrigger(context.Background(), TriggerScheduler)

	if got := TriggerFromContext(ctx); got != TriggerScheduler {
		t.Errorf("expected %q, got %q", TriggerScheduler, got)
	}
}

func TestTriggerFromContext_Missing(t *testing.T) {
	if got := TriggerFromContext(context.Background()); got != TriggerManual {
		t.Errorf("expected %q, got %q", TriggerManual, got)
	}
}

func TestTriggerFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TriggerCtxKey, 42)

	if got := TriggerFromContext(ctx); got != TriggerManual {
		t.Errorf("expected fallback %q for wrong type, got %q", TriggerManual, got)
	}
}

func TestTriggerFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), TriggerAPI)

	if got := TriggerFromContext(ctx); got != TriggerManual {
		t.Errorf("expected %q for different key, got %q", TriggerManual, got)
	}
}
