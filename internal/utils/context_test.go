// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-lead-keeper/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestUserCtxKey(t *testing.T) {
	if UserCtxKey.String() != "user" {
		t.Errorf("expected 'user', got '%s'", UserCtxKey.String())
	}
}

func TestGetUserFromContext_Success(t *testing.T) {
	ctx := WithUser(context.Background(), models.User{ID: 42, Username: "alice"})

	user, ok := GetUserFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if user.ID != 42 || user.Username != "alice" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestGetUserFromContext_Missing(t *testing.T) {
	user, ok := GetUserFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if user.ID != 0 {
		t.Errorf("expected zero user, got %+v", user)
	}
}

func TestGetUserFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserCtxKey, "not-a-user")

	_, ok := GetUserFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetUserFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.User{ID: 99})

	_, ok := GetUserFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
