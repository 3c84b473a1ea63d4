// Command schema-check prints diagnostic information about the database
// schema in use by the fulfillment engine. Adapted from the teacher's
// diagnostic tool onto gorm.io/gorm instead of the jinzhu/gorm +
// hand-rolled SQL migration system the teacher's cmd/schema-check used.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/RodolfoBonis/spooliq/core/config"
	"github.com/RodolfoBonis/spooliq/core/db"
	"github.com/RodolfoBonis/spooliq/core/logger"
)

type schemaInfo struct {
	TableName      string
	ConstraintName string
	ConstraintType string
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	log := logger.NewLogger()
	ctx := context.Background()
	cfg := config.NewAppConfig()

	conn, err := db.Open(log, cfg)
	if err != nil {
		log.LogError(ctx, "failed to connect to database", err)
		os.Exit(1)
	}

	switch command {
	case "constraints":
		checkConstraints(ctx, log, conn)
	case "tables":
		checkTables(ctx, log, conn)
	case "full":
		fmt.Println("Full Schema Diagnostic Report")
		fmt.Println("==============================")
		checkTables(ctx, log, conn)
		fmt.Println()
		checkConstraints(ctx, log, conn)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func checkConstraints(ctx context.Context, log logger.Logger, conn *db.Connection) {
	fmt.Println("Foreign Key Constraints")
	fmt.Println("=======================")

	query := `
		SELECT tc.table_name, tc.constraint_name, tc.constraint_type
		FROM information_schema.table_constraints tc
		WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = 'public'
		ORDER BY tc.table_name, tc.constraint_name;
	`

	rows, err := conn.DB.Raw(query).Rows()
	if err != nil {
		log.Error(ctx, "failed to query constraints", map[string]interface{}{"error": err.Error()})
		return
	}
	defer rows.Close()

	count := 0
	currentTable := ""
	for rows.Next() {
		var info schemaInfo
		if err := rows.Scan(&info.TableName, &info.ConstraintName, &info.ConstraintType); err != nil {
			log.Error(ctx, "failed to scan constraint row", map[string]interface{}{"error": err.Error()})
			continue
		}
		if currentTable != info.TableName {
			if currentTable != "" {
				fmt.Println()
			}
			fmt.Printf("table: %s\n", info.TableName)
			currentTable = info.TableName
		}
		fmt.Printf("  %s (%s)\n", info.ConstraintName, info.ConstraintType)
		count++
	}
	fmt.Printf("\ntotal foreign key constraints: %d\n", count)
}

func checkTables(ctx context.Context, log logger.Logger, conn *db.Connection) {
	fmt.Println("Database Tables")
	fmt.Println("===============")

	query := `
		SELECT table_name,
			(SELECT COUNT(*) FROM information_schema.columns WHERE table_name = t.table_name) AS column_count
		FROM information_schema.tables t
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name;
	`

	rows, err := conn.DB.Raw(query).Rows()
	if err != nil {
		log.Error(ctx, "failed to query tables", map[string]interface{}{"error": err.Error()})
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var tableName string
		var columnCount int
		if err := rows.Scan(&tableName, &columnCount); err != nil {
			log.Error(ctx, "failed to scan table row", map[string]interface{}{"error": err.Error()})
			continue
		}
		fmt.Printf("%s (%d columns)\n", tableName, columnCount)
		count++
	}
	fmt.Printf("\ntotal tables: %d\n", count)
}

func printUsage() {
	fmt.Println("schema-check: database schema diagnostic tool")
	fmt.Println()
	fmt.Println("Usage: schema-check <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  constraints  - show all foreign key constraints")
	fmt.Println("  tables       - show all database tables")
	fmt.Println("  full         - complete diagnostic report")
}
