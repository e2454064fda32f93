package menu

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.json")
	doc := `[{"id":"m1","name":"Mac & Cheese","price":"8.99","description":"Creamy cheddar","image":"images/mac-and-cheese.jpg"}]`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	meals, err := FileSource{Path: path}.Meals(context.Background())
	if err != nil {
		t.Fatalf("meals: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal, got %d", len(meals))
	}
	if meals[0].Name != "Mac & Cheese" || meals[0].Price != "8.99" {
		t.Fatalf("unexpected meal: %+v", meals[0])
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "none.json")}.Meals(context.Background())
	if err == nil {
		t.Fatal("expected error for missing menu")
	}
}

func TestFileSourceMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meals.json")
	if err := os.WriteFile(path, []byte(`{"id":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (FileSource{Path: path}).Meals(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
