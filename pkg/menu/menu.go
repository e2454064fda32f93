// Package menu reads the list of available meals.
package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Meal is a dish offered on the menu.
type Meal struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Source provides the current menu.
type Source interface {
	Meals(ctx context.Context) ([]Meal, error)
}

// FileSource reads meals from a JSON array on disk. The file is read on
// every call so edits are picked up without a restart.
type FileSource struct {
	Path string
}

// Meals returns the meals listed in the file.
func (s FileSource) Meals(ctx context.Context) ([]Meal, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}

	var meals []Meal
	if err := json.Unmarshal(data, &meals); err != nil {
		return nil, fmt.Errorf("decode menu %s: %w", s.Path, err)
	}
	if meals == nil {
		meals = []Meal{}
	}
	return meals, nil
}
