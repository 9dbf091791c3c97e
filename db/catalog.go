// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/prayer-wall/models"
)

//go:embed topics.yaml
var defaultCatalog []byte

type catalogFile struct {
	Topics []catalogEntry `yaml:"topics"`
}

type catalogEntry struct {
	ID            int64          `yaml:"id"`
	Title         string         `yaml:"title"`
	Category      string         `yaml:"category"`
	Subcategories []catalogEntry `yaml:"subcategories"`
}

// DefaultTopics returns the built-in topic catalog, parents before children.
func DefaultTopics() ([]models.Topic, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog flattens a YAML catalog into topics. Nesting in the file is
// limited to one level, which is how depth <= 1 is guaranteed.
func ParseCatalog(data []byte) ([]models.Topic, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse topic catalog: %w", err)
	}

	seen := make(map[int64]bool)
	var topics []models.Topic
	add := func(e catalogEntry, category string, parent *int64) error {
		if e.ID <= 0 {
			return fmt.Errorf("topic %q: id must be positive", e.Title)
		}
		if e.Title == "" {
			return fmt.Errorf("topic %d: title is required", e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("topic %d: duplicate id", e.ID)
		}
		seen[e.ID] = true
		topics = append(topics, models.Topic{
			ID:       e.ID,
			Title:    e.Title,
			Category: category,
			ParentID: parent,
		})
		return nil
	}

	for _, group := range file.Topics {
		if group.Category == "" {
			return nil, fmt.Errorf("topic %d: category is required", group.ID)
		}
		if err := add(group, group.Category, nil); err != nil {
			return nil, err
		}
		parentID := group.ID
		for _, sub := range group.Subcategories {
			if len(sub.Subcategories) > 0 {
				return nil, fmt.Errorf("topic %d: subcategories cannot be nested", sub.ID)
			}
			category := sub.Category
			if category == "" {
				category = group.Category
			}
			if err := add(sub, category, &parentID); err != nil {
				return nil, err
			}
		}
	}

	return topics, nil
}
