package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewSweet(t *testing.T) {
	name := SweetName("Ladoo")

	t.Run("returns sweet with non-zero ID", func(t *testing.T) {
		sweet := NewSweet(name, "traditional", 2.50, 10)
		if sweet.ID == (uuid.UUID{}) {
			t.Fatal("expected non-zero UUID for ID")
		}
	})

	t.Run("sets fields correctly", func(t *testing.T) {
		sweet := NewSweet(name, "traditional", 2.50, 10)
		if sweet.Name != name {
			t.Fatalf("expected Name %v, got %v", name, sweet.Name)
		}
		if sweet.Category != "traditional" {
			t.Fatalf("expected Category %q, got %q", "traditional", sweet.Category)
		}
		if sweet.Price != 2.50 {
			t.Fatalf("expected Price 2.50, got %v", sweet.Price)
		}
		if sweet.Quantity != 10 {
			t.Fatalf("expected Quantity 10, got %d", sweet.Quantity)
		}
	})

	t.Run("sets CreatedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		sweet := NewSweet(name, "traditional", 2.50, 10)
		after := time.Now().UTC()
		if sweet.CreatedAt.IsZero() {
			t.Fatal("expected non-zero CreatedAt")
		}
		if sweet.CreatedAt.Before(before) || sweet.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", sweet.CreatedAt, before, after)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		sweet1 := NewSweet(name, "traditional", 2.50, 10)
		sweet2 := NewSweet(name, "traditional", 2.50, 10)
		if sweet1.ID == sweet2.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}
