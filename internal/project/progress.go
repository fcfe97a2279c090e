package project

import (
	"errors"
	"math"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// taskPageSize bounds each page of the task fetch. The fetch loops until
// a short page, so counts stay exact past any store-side result limit.
// Package var so tests can exercise multi-page fetches cheaply.
var taskPageSize = 500

// Stats summarizes task progress for one project.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// TaskStats computes task counts and the completion percentage for a
// project without writing anything.
func TaskStats(s *store.Store, projectID string) (*Stats, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	if err := requireProject(db, projectID); err != nil {
		return nil, err
	}
	return countTasks(db, projectID)
}

// RecomputeCompletion recomputes the project's completion percentage
// from its tasks and persists it. The write is a compare-and-swap on the
// project's version token, retried once with fresh reads; the returned
// value is read back from the store after the write so a concurrent
// writer's result is what the caller sees.
func RecomputeCompletion(s *store.Store, projectID string) (int, error) {
	db, err := s.DB()
	if err != nil {
		return 0, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		var p models.Project
		if err := db.Where("id = ?", projectID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, store.NotFound("project", projectID)
			}
			return 0, store.Wrap("project: get "+projectID, err)
		}

		stats, err := countTasks(db, projectID)
		if err != nil {
			return 0, err
		}

		res := db.Model(&models.Project{}).
			Where("id = ? AND version = ?", projectID, p.Version).
			Updates(map[string]interface{}{
				"completion": stats.Percentage,
				"version":    p.Version + 1,
			})
		if res.Error != nil {
			return 0, store.Wrap("project: persist completion for "+projectID, res.Error)
		}
		if res.RowsAffected == 0 {
			continue // lost the CAS; re-read and retry once
		}

		var persisted models.Project
		if err := db.Where("id = ?", projectID).First(&persisted).Error; err != nil {
			return 0, store.Wrap("project: read back "+projectID, err)
		}
		return persisted.Completion, nil
	}
	return 0, store.Conflict("project", projectID, "completion write lost to concurrent updates")
}

// countTasks performs the explicitly paginated full fetch of task
// statuses and derives the percentage.
func countTasks(db *gorm.DB, projectID string) (*Stats, error) {
	stats := &Stats{}
	for offset := 0; ; offset += taskPageSize {
		var statuses []string
		err := db.Model(&models.Task{}).
			Where("project_id = ?", projectID).
			Order("id ASC").
			Limit(taskPageSize).
			Offset(offset).
			Pluck("status", &statuses).Error
		if err != nil {
			return nil, store.Wrap("project: fetch tasks for "+projectID, err)
		}
		stats.Total += len(statuses)
		for _, st := range statuses {
			if st == models.TaskCompleted {
				stats.Completed++
			}
		}
		if len(statuses) < taskPageSize {
			break
		}
	}
	stats.Percentage = Percentage(stats.Completed, stats.Total)
	return stats, nil
}

// Percentage returns round-half-up(100 * completed / total), or 0 when
// the project has no tasks. Both the read-only and persisting paths use
// this one function, so the two can never drift.
func Percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(completed)*100/float64(total) + 0.5))
}

func requireProject(db *gorm.DB, projectID string) error {
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return store.Wrap("project: check "+projectID, err)
	}
	if count == 0 {
		return store.NotFound("project", projectID)
	}
	return nil
}
