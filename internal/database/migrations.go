package database

import (
	"fmt"

	"github.com/workhive/workhive-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes beyond what AutoMigrate
// derives from struct tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		// Task indexes for filtering and sorting
		{&models.Task{}, "tasks", "idx_tasks_organization_id", "organization_id"},
		{&models.Task{}, "tasks", "idx_tasks_creator_id", "creator_id"},
		{&models.Task{}, "tasks", "idx_tasks_status", "status"},
		{&models.Task{}, "tasks", "idx_tasks_due_date", "due_date"},

		// Organization members indexes
		{&models.OrganizationMember{}, "organization_members", "idx_org_members_user_id", "user_id"},

		// Task assignments indexes
		{&models.TaskAssignment{}, "task_assignments", "idx_task_assignments_user_id", "user_id"},

		// Library indexes
		{&models.Resource{}, "resources", "idx_resources_organization_id", "organization_id"},
		{&models.Resource{}, "resources", "idx_resources_category_id", "category_id"},
		{&models.Category{}, "categories", "idx_categories_organization_id", "organization_id"},
		{&models.Prompt{}, "prompts", "idx_prompts_organization_id", "organization_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		zap.L().Info("created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
		)
	}

	return nil
}
