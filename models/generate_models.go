package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

/*
Schema tooling.

Migrate creates or updates the projects, technologies, types and project_technology tables.
It runs on startup when AUTO_MIGRATE=true.

GenerateModels migrates and then writes typed query helpers to ./generated with gorm/gen.
It runs instead of the server when GENERATE_MODELS=true.

GenerateColumnMismatchReport lists database columns that no model field maps to.
It runs instead of the server when GENERATE_COLUMN_REPORT=true.

Example report:

	=== COLUMN MISMATCH REPORT ===
	--- Table: projects ---
	Found 1 columns not accounted for in model:
	  - legacy_url
	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// All returns every persisted model, join table last.
func All() []any {
	return []any{
		&Type{},
		&Technology{},
		&Project{},
		&ProjectTechnology{},
	}
}

// Migrate runs AutoMigrate for every model and registers the custom join table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Project{}, "Technologies", &ProjectTechnology{}); err != nil {
		return fmt.Errorf("setup project_technology join table: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// GenerateModels migrates the schema and generates query helpers under outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	log.Info().Msg("Starting database migration...")
	if err := Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("Database migration completed successfully")

	GenerateColumnMismatchReport(db)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(
		Project{},
		Technology{},
		Type{},
		ProjectTechnology{},
	)
	g.Execute()

	log.Info().Str("outPath", outPath).Msg("Model generation complete")
	return nil
}

// GenerateColumnMismatchReport prints the columns each table has that no model field maps to.
func GenerateColumnMismatchReport(db *gorm.DB) int {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	mappings := tableMappings(db.NamingStrategy)
	tables := make([]string, 0, len(mappings))
	for table := range mappings {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	totalMismatches := 0
	for _, tableName := range tables {
		fmt.Printf("\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Println("Table does not exist yet (will be created during migration)")
			} else {
				fmt.Printf("Error getting columns for table %s: %v\n", tableName, err)
			}
			continue
		}

		mismatches := findColumnMismatches(dbColumns, getModelColumns(mappings[tableName], db.NamingStrategy))
		if len(mismatches) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Printf("  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Println("All columns are accounted for in the model.")
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches
}

func tableMappings(namer schema.Namer) map[string]any {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	return map[string]any{
		namer.TableName("Project"):    Project{},
		namer.TableName("Technology"): Technology{},
		namer.TableName("Type"):       Type{},
		ProjectTechnology{}.TableName(): ProjectTechnology{},
	}
}

// getTableColumns retrieves column names from a database table
func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	if !db.Migrator().HasTable(tableName) {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}

	columnTypes, err := db.Migrator().ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	columns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		columns = append(columns, ct.Name())
	}
	return columns, nil
}

// getModelColumns derives column names from a model's exported, non-relation fields.
func getModelColumns(model any, namer schema.Namer) []string {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}

	var columns []string
	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		gormTag := field.Tag.Get("gorm")
		if strings.Contains(gormTag, "many2many") || strings.Contains(gormTag, "foreignKey") {
			continue
		}
		if name := extractColumnNameFromGormTag(gormTag); name != "" {
			columns = append(columns, name)
			continue
		}
		columns = append(columns, namer.ColumnName("", field.Name))
	}
	return columns
}

// extractColumnNameFromGormTag extracts the column name from a GORM tag
func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelColumns []string) []string {
	known := make(map[string]bool, len(modelColumns))
	for _, c := range modelColumns {
		known[c] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
