package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_07_01_000000_create_core_tables",
			Up: func(db *gorm.DB) error {
				// Create players table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_players_deleted_at ON players(deleted_at);
				`).Error; err != nil {
					return err
				}

				// Create teams and squads tables
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						slug VARCHAR(255) NOT NULL UNIQUE,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL
					);
					CREATE INDEX IF NOT EXISTS idx_teams_deleted_at ON teams(deleted_at);

					CREATE TABLE IF NOT EXISTS squads (
						id BIGSERIAL PRIMARY KEY,
						team_id BIGINT NOT NULL,
						name VARCHAR(255) NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_squads_deleted_at ON squads(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_squads_team_id ON squads(team_id);
				`).Error; err != nil {
					return err
				}

				// Create player_team_ratings table (live rating rows)
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS player_team_ratings (
						id BIGSERIAL PRIMARY KEY,
						player_id BIGINT NOT NULL,
						team_id BIGINT NOT NULL,
						mu DOUBLE PRECISION NOT NULL,
						sigma DOUBLE PRECISION NOT NULL,
						elo INT NOT NULL,
						elo_change INT NOT NULL,
						wins INT NOT NULL,
						losses INT NOT NULL,
						win_streak INT NOT NULL,
						loss_streak INT NOT NULL,
						longest_win_streak INT NOT NULL,
						highest_elo INT NOT NULL,
						win_percent DOUBLE PRECISION NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_player_team ON player_team_ratings(player_id, team_id);
					CREATE INDEX IF NOT EXISTS idx_player_team_ratings_deleted_at ON player_team_ratings(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_player_team_ratings_elo ON player_team_ratings(team_id, elo DESC);
				`).Error; err != nil {
					return err
				}

				// Create matches table
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS matches (
						id BIGSERIAL PRIMARY KEY,
						team_id BIGINT NOT NULL,
						squad_a_id BIGINT NOT NULL,
						squad_b_id BIGINT NOT NULL,
						score_a INT NOT NULL,
						score_b INT NOT NULL,
						weight VARCHAR(20) DEFAULT 'standard',
						match_date TIMESTAMP NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE,
						FOREIGN KEY (squad_a_id) REFERENCES squads(id) ON DELETE CASCADE,
						FOREIGN KEY (squad_b_id) REFERENCES squads(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_matches_deleted_at ON matches(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_matches_team_id ON matches(team_id);
					CREATE INDEX IF NOT EXISTS idx_matches_match_date ON matches(match_date);
					CREATE INDEX IF NOT EXISTS idx_matches_replay_order ON matches(team_id, match_date, id);
				`).Error; err != nil {
					return err
				}

				// Create match_participations table (the snapshot ledger)
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS match_participations (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						team_id BIGINT NOT NULL,
						squad_id BIGINT NOT NULL,
						is_winner BOOLEAN NOT NULL,
						before_mu DOUBLE PRECISION NOT NULL,
						before_sigma DOUBLE PRECISION NOT NULL,
						before_elo INT NOT NULL,
						before_elo_change INT NOT NULL,
						before_wins INT NOT NULL,
						before_losses INT NOT NULL,
						before_win_streak INT NOT NULL,
						before_loss_streak INT NOT NULL,
						before_longest_win_streak INT NOT NULL,
						before_highest_elo INT NOT NULL,
						before_win_percent DOUBLE PRECISION NOT NULL,
						after_mu DOUBLE PRECISION NOT NULL,
						after_sigma DOUBLE PRECISION NOT NULL,
						after_elo INT NOT NULL,
						after_elo_change INT NOT NULL,
						after_wins INT NOT NULL,
						after_losses INT NOT NULL,
						after_win_streak INT NOT NULL,
						after_loss_streak INT NOT NULL,
						after_longest_win_streak INT NOT NULL,
						after_highest_elo INT NOT NULL,
						after_win_percent DOUBLE PRECISION NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW(),
						deleted_at TIMESTAMP NULL,
						FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						FOREIGN KEY (squad_id) REFERENCES squads(id) ON DELETE CASCADE
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_match_player ON match_participations(match_id, player_id);
					CREATE INDEX IF NOT EXISTS idx_match_participations_deleted_at ON match_participations(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_match_participations_team_id ON match_participations(team_id);
					CREATE INDEX IF NOT EXISTS idx_match_participations_player_id ON match_participations(player_id);
				`).Error; err != nil {
					return err
				}

				// Create edit record tables (audit trail)
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS match_edit_records (
						id BIGSERIAL PRIMARY KEY,
						match_id BIGINT NOT NULL,
						team_id BIGINT NOT NULL,
						action VARCHAR(20) NOT NULL,
						prev_squad_a_id BIGINT NOT NULL,
						prev_squad_b_id BIGINT NOT NULL,
						prev_score_a INT NOT NULL,
						prev_score_b INT NOT NULL,
						prev_weight VARCHAR(20) NOT NULL,
						prev_match_date TIMESTAMP NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_match_edit_records_match_id ON match_edit_records(match_id);
					CREATE INDEX IF NOT EXISTS idx_match_edit_records_team_id ON match_edit_records(team_id);

					CREATE TABLE IF NOT EXISTS match_edit_record_players (
						id BIGSERIAL PRIMARY KEY,
						edit_record_id BIGINT NOT NULL,
						player_id BIGINT NOT NULL,
						squad_id BIGINT NOT NULL,
						is_winner BOOLEAN NOT NULL,
						before_mu DOUBLE PRECISION NOT NULL,
						before_sigma DOUBLE PRECISION NOT NULL,
						before_elo INT NOT NULL,
						before_elo_change INT NOT NULL,
						before_wins INT NOT NULL,
						before_losses INT NOT NULL,
						before_win_streak INT NOT NULL,
						before_loss_streak INT NOT NULL,
						before_longest_win_streak INT NOT NULL,
						before_highest_elo INT NOT NULL,
						before_win_percent DOUBLE PRECISION NOT NULL,
						after_mu DOUBLE PRECISION NOT NULL,
						after_sigma DOUBLE PRECISION NOT NULL,
						after_elo INT NOT NULL,
						after_elo_change INT NOT NULL,
						after_wins INT NOT NULL,
						after_losses INT NOT NULL,
						after_win_streak INT NOT NULL,
						after_loss_streak INT NOT NULL,
						after_longest_win_streak INT NOT NULL,
						after_highest_elo INT NOT NULL,
						after_win_percent DOUBLE PRECISION NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						FOREIGN KEY (edit_record_id) REFERENCES match_edit_records(id) ON DELETE CASCADE,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_match_edit_record_players_edit_record_id ON match_edit_record_players(edit_record_id);
					CREATE INDEX IF NOT EXISTS idx_match_edit_record_players_player_id ON match_edit_record_players(player_id);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				// Drop tables in reverse order (because of foreign keys)
				for _, table := range []string{
					"match_edit_record_players",
					"match_edit_records",
					"match_participations",
					"matches",
					"player_team_ratings",
					"squads",
					"teams",
					"players",
				} {
					if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
