package migrations

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB) *Migrator {
	db.AutoMigrate(&Migration{})
	return &Migrator{
		db:         db,
		migrations: []MigrationDefinition{},
	}
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate runs every pending migration in order, each in its own
// transaction, and records it under the next batch number.
func (m *Migrator) Migrate() error {
	fmt.Println("Running database migrations...")

	batch := m.latestBatch() + 1

	for _, migration := range m.migrations {
		if m.hasRun(migration.Name) {
			continue
		}

		fmt.Printf("Migrating: %s\n", migration.Name)

		tx := m.db.Begin()

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		record := Migration{Name: migration.Name, Batch: batch}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
		}

		tx.Commit()
		fmt.Printf("Migrated: %s\n", migration.Name)
	}

	fmt.Println("Migration completed successfully")
	return nil
}

// Rollback reverts the given number of batches, newest first.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	fmt.Printf("Rolling back %d migration batch(es)...\n", steps)

	batch := m.latestBatch()

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		m.db.Where("batch = ?", batch).Order("id DESC").Find(&records)

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			fmt.Printf("Rolling back: %s\n", record.Name)

			tx := m.db.Begin()

			if err := migration.Down(tx); err != nil {
				tx.Rollback()
				return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
			}

			if err := tx.Delete(&record).Error; err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to remove migration record %s: %w", record.Name, err)
			}

			tx.Commit()
			fmt.Printf("Rolled back: %s\n", record.Name)
		}

		batch--
	}

	fmt.Println("Rollback completed successfully")
	return nil
}

func (m *Migrator) hasRun(name string) bool {
	var count int64
	m.db.Model(&Migration{}).Where("name = ?", name).Count(&count)
	return count > 0
}

func (m *Migrator) latestBatch() int {
	var migration Migration
	m.db.Order("batch DESC").First(&migration)
	return migration.Batch
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
