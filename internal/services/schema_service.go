package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"ecommerce-analytics/internal/models"
)

// SchemaService materializes the declared entities as tables.
type SchemaService struct {
	db     *gorm.DB
	tables []interface{}
}

// NewSchemaService creates a SchemaService for every entity in models.Tables.
func NewSchemaService(db *gorm.DB) *SchemaService {
	return &SchemaService{
		db:     db,
		tables: models.Tables(),
	}
}

// CreateTables creates, in dependency order, the tables that do not exist yet and
// returns their names. Existing tables are left untouched, so a second call
// creates nothing.
func (s *SchemaService) CreateTables(ctx context.Context) ([]string, error) {
	migrator := s.db.WithContext(ctx).Migrator()
	created := make([]string, 0, len(s.tables))

	for _, model := range s.tables {
		name, err := s.tableName(model)
		if err != nil {
			return created, err
		}
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			log.Printf("Error creating table %s: %v", name, err)
			return created, fmt.Errorf("failed to create table %s: %w", name, err)
		}
		log.Printf("Created table %s", name)
		created = append(created, name)
	}
	return created, nil
}

func (s *SchemaService) tableName(model interface{}) (string, error) {
	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(model); err != nil {
		return "", fmt.Errorf("failed to parse model %T: %w", model, err)
	}
	return stmt.Schema.Table, nil
}
