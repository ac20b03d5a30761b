package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/GuiaBolso/darwin"
	_ "github.com/mattn/go-sqlite3"
)

// ApplicationID is the SQLite application_id for appmachineid databases.
// "APMI" in ASCII: A=0x41, P=0x50, M=0x4D, I=0x49
const ApplicationID = 0x41504D49

// ErrInvalidDatabase is returned when the database is not an appmachineid database.
var ErrInvalidDatabase = errors.New("not a valid 'appmachineid' database")

// defineMigrations returns the registry schema, one step per entry.
// Comments may only follow sql on a line (they are stripped before the checksum).
// *NEVER* change/remove a step once released, darwin stores its checksum.
func defineMigrations() []darwin.Migration {
	return []darwin.Migration{

		// Major version per release (1.xx), minor per step. Versions must ascend.

		{Version: 1.00, Description: "Set application_id", Script: `
		PRAGMA application_id = 0x41504D49;`},

		{Version: 1.01, Description: "Create Table 'application'", Script: `
		CREATE TABLE IF NOT EXISTS application (
			application_id INTEGER PRIMARY KEY AUTOINCREMENT,
			app_name VARCHAR(255) NOT NULL UNIQUE COLLATE NOCASE,
			app_uuid CHAR(36) NOT NULL UNIQUE COLLATE NOCASE,
			description TEXT NOT NULL DEFAULT '',
			created_date VARCHAR(10) NOT NULL DEFAULT (DATE('now'))
		);`},

		{Version: 1.02, Description: "Create Index 'idx_application_uuid'", Script: `
		CREATE INDEX IF NOT EXISTS idx_application_uuid ON application (app_uuid ASC);`},
	}
}

func changes(v1, v2 float64) string {
	if v1 != v2 {
		return fmt.Sprintf("DB Version: %.2f (migrated from %.2f to %.2f)", v2, v1, v2)
	}
	return fmt.Sprintf("DB Version: %.2f", v1)
}

// currentVersion reports how many darwin steps were applied and the highest version.
func currentVersion(db *sql.DB) (count int, ver float64, err error) {
	s := `select count(*) as n from sqlite_master where tbl_name = 'darwin_migrations';`
	err = db.QueryRow(s).Scan(&count)
	if err != nil || count == 0 {
		return 0, 0, err
	}

	s = `select count(*) as n, max(version) as ver from darwin_migrations;`
	err = db.QueryRow(s).Scan(&count, &ver)
	return count, ver, err
}

func minifiedMigrations() []darwin.Migration {
	migrations := defineMigrations()
	for i := range migrations {
		migrations[i].Script = minify(migrations[i].Script)
	}
	return migrations
}

// minify normalises whitespace, case and comments so cosmetic edits keep the checksum.
func minify(script string) string {
	s := strings.ToLower(strings.ReplaceAll(script, "/*", "--"))

	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if i := strings.Index(line, "--"); i != -1 {
			line = line[:i]
		}
		b.WriteString(strings.TrimSpace(line))
		b.WriteString("\n")
	}

	out := strings.TrimSpace(strings.ReplaceAll(b.String(), "\t", " "))
	for strings.Contains(out, "  ") {
		out = strings.ReplaceAll(out, "  ", " ")
	}
	return out
}

func progress(ch <-chan darwin.MigrationInfo) string {
	var b strings.Builder
	for info := range ch {
		_, _ = fmt.Fprintf(&b, "v%.2f: \"%s\" (%s) Error: %v\n",
			info.Migration.Version, info.Migration.Description, info.Status.String(), info.Error)
	}
	return b.String()
}

// Schema returns the migration scripts for display.
func Schema() string {
	var b strings.Builder
	for _, m := range defineMigrations() {
		_, _ = fmt.Fprintf(&b, "-- %s (%.2f)\n%s\n\n", m.Description, m.Version, m.Script)
	}
	return b.String()
}

// VerifyApplicationID rejects databases owned by another application.
// An empty database (application_id 0, no tables) is accepted.
func VerifyApplicationID(db *sql.DB) error {
	var appID int
	if err := db.QueryRow("PRAGMA application_id;").Scan(&appID); err != nil {
		return fmt.Errorf("read application_id: %w", err)
	}

	if appID == ApplicationID {
		return nil
	}
	if appID != 0 {
		return fmt.Errorf("%w (application_id 0x%X)", ErrInvalidDatabase, appID)
	}

	var tableCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`).Scan(&tableCount)
	if err != nil {
		return fmt.Errorf("check tables: %w", err)
	}
	if tableCount > 0 {
		return fmt.Errorf("%w (has tables but no application_id)", ErrInvalidDatabase)
	}

	return nil
}

// RunMigrations brings an open database up to the current schema.
func RunMigrations(db *sql.DB) error {
	if err := VerifyApplicationID(db); err != nil {
		return err
	}

	count, v1, err := currentVersion(db)
	if err != nil {
		return err
	}

	migrations := minifiedMigrations()
	if count == len(migrations) && v1 == migrations[count-1].Version {
		log.Printf("Database version %.2f is current, no migrations needed", v1)
		return nil
	}

	driver := darwin.NewGenericDriver(db, darwin.SqliteDialect{})
	infoChan := make(chan darwin.MigrationInfo, len(migrations))
	d := darwin.New(driver, migrations, infoChan)

	var v2 float64
	if err := d.Migrate(); err != nil {
		close(infoChan)
		_, v2, _ = currentVersion(db)
		prog := progress(infoChan)
		log.Printf("migration (was v%.2f now v%.2f): %v (%s)", v1, v2, err, prog)
		return fmt.Errorf("migration error: %w\n%s", err, prog)
	}
	close(infoChan)

	_, v2, err = currentVersion(db)
	if err != nil {
		return err
	}

	log.Print(changes(v1, v2))
	return nil
}
