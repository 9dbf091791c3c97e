// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/danielhkuo/prayer-wall/models"
)

// SeedResult counts what SeedTopics did.
type SeedResult struct {
	Inserted int
	Ignored  int
}

// Topics returns the catalog grouped as main categories with nested
// subcategories, ordered by id.
func (s *Store) Topics(ctx context.Context) ([]models.TopicGroup, error) {
	var topics []models.Topic
	err := s.db.SelectContext(ctx, &topics, `SELECT id, title, category, parent_id FROM topic ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return GroupTopics(topics), nil
}

// Topic returns a single topic by id.
func (s *Store) Topic(ctx context.Context, id int64) (models.Topic, error) {
	var topic models.Topic
	err := s.db.GetContext(ctx, &topic, `SELECT id, title, category, parent_id FROM topic WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Topic{}, notFound("topic", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return models.Topic{}, fmt.Errorf("failed to get topic: %w", err)
	}
	return topic, nil
}

// GroupTopics nests subcategories under their main category. Input order is
// kept; subcategories whose parent is missing are dropped.
func GroupTopics(topics []models.Topic) []models.TopicGroup {
	groups := []models.TopicGroup{}
	index := make(map[int64]int)

	for _, t := range topics {
		if t.ParentID != nil {
			continue
		}
		index[t.ID] = len(groups)
		groups = append(groups, models.TopicGroup{
			ID:            t.ID,
			Title:         t.Title,
			Category:      t.Category,
			Subcategories: []models.Subcategory{},
		})
	}

	for _, t := range topics {
		if t.ParentID == nil {
			continue
		}
		i, ok := index[*t.ParentID]
		if !ok {
			slog.Warn("subcategory without main category", "topic_id", t.ID, "parent_id", *t.ParentID)
			continue
		}
		groups[i].Subcategories = append(groups[i].Subcategories, models.Subcategory{
			ID:    t.ID,
			Title: t.Title,
		})
	}

	return groups
}

// SeedTopics inserts catalog entries that are not present yet. Existing ids
// are left untouched. Parents must come before their subcategories.
func (s *Store) SeedTopics(ctx context.Context, topics []models.Topic) (SeedResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var result SeedResult
	for _, t := range topics {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO topic (id, title, category, parent_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, t.ID, t.Title, t.Category, t.ParentID)
		if err != nil {
			return SeedResult{}, fmt.Errorf("failed to seed topic %d: %w", t.ID, err)
		}

		switch outcomeOf(res, Inserted) {
		case Inserted:
			result.Inserted++
		default:
			result.Ignored++
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// outcomeOf maps a conditional write's affected row count to an outcome.
func outcomeOf(res sql.Result, onWrite WriteOutcome) WriteOutcome {
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		return Ignored
	}
	return onWrite
}
