package query

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/anuban-lab/sarabun/dao/model"
)

// Migrate applies the schema migrations. New migrations are appended to the
// list; ids are date-prefixed and never reused.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250810-add-personnel-email",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.Personnel{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropColumn(&model.Personnel{}, "email")
			},
		},
		{
			ID: "20250818-add-document-version",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&model.WorkflowDocument{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropColumn(&model.WorkflowDocument{}, "version")
			},
		},
	})

	m.InitSchema(func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&model.User{},
			&model.Personnel{},
			&model.WorkflowDocument{},
			&model.WorkflowStep{},
		)
	})

	if err := m.Migrate(); err != nil {
		return err
	}
	klog.Info("database migration completed")
	return nil
}
