package services

import (
	"fmt"
	"log"

	"core/models"

	"gorm.io/gorm"
)

// IntegrityService audits the snapshot chain: for every player the after
// state of match N must equal the before state of match N+1, the latest
// after must equal the live rating row, streaks must stay exclusive and
// the stored win percent must match the win/loss record.
type IntegrityService struct {
	db *gorm.DB
}

func NewIntegrityService(db *gorm.DB) *IntegrityService {
	return &IntegrityService{
		db: db,
	}
}

type ChainViolation struct {
	PlayerID uint   `json:"player_id"`
	MatchID  uint   `json:"match_id,omitempty"`
	Detail   string `json:"detail"`
}

type IntegrityReport struct {
	TeamID         uint             `json:"team_id"`
	PlayersChecked int              `json:"players_checked"`
	Violations     []ChainViolation `json:"violations"`
}

func (r *IntegrityReport) OK() bool {
	return len(r.Violations) == 0
}

// AuditTeam walks the team's full participation ledger in chronological
// order and reports every chain violation.
func (s *IntegrityService) AuditTeam(teamID uint) (*IntegrityReport, error) {
	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, models.NewNotFoundError("team", teamID)
	}

	var parts []models.MatchParticipation
	err := s.db.
		Joins("JOIN matches ON matches.id = match_participations.match_id AND matches.deleted_at IS NULL").
		Where("match_participations.team_id = ?", teamID).
		Order("matches.match_date ASC, matches.id ASC").
		Find(&parts).Error
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[uint][]models.MatchParticipation)
	for _, p := range parts {
		byPlayer[p.PlayerID] = append(byPlayer[p.PlayerID], p)
	}

	report := &IntegrityReport{TeamID: teamID, PlayersChecked: len(byPlayer)}

	for playerID, chain := range byPlayer {
		for i := range chain {
			p := chain[i]
			if p.After.WinStreak != 0 && p.After.LossStreak != 0 {
				report.Violations = append(report.Violations, ChainViolation{
					PlayerID: playerID,
					MatchID:  p.MatchID,
					Detail:   "win and loss streak both non-zero",
				})
			}
			if p.After.WinPercent != models.WinPercentFor(p.After.Wins, p.After.Losses) {
				report.Violations = append(report.Violations, ChainViolation{
					PlayerID: playerID,
					MatchID:  p.MatchID,
					Detail:   "win percent does not match the win/loss record",
				})
			}
			if i+1 < len(chain) && chain[i].After != chain[i+1].Before {
				report.Violations = append(report.Violations, ChainViolation{
					PlayerID: playerID,
					MatchID:  chain[i+1].MatchID,
					Detail:   fmt.Sprintf("before state does not match the after state of match %d", chain[i].MatchID),
				})
			}
		}

		var row models.PlayerTeamRating
		err := s.db.Where("player_id = ? AND team_id = ?", playerID, teamID).First(&row).Error
		if err != nil {
			report.Violations = append(report.Violations, ChainViolation{
				PlayerID: playerID,
				Detail:   "live rating row missing",
			})
			continue
		}
		last := chain[len(chain)-1]
		if row.RatingSnapshot != last.After {
			report.Violations = append(report.Violations, ChainViolation{
				PlayerID: playerID,
				MatchID:  last.MatchID,
				Detail:   "live rating row does not match the latest after snapshot",
			})
		}
	}

	return report, nil
}

// AuditAllTeams runs the chain audit over every team and logs violations.
// Used by the scheduler.
func (s *IntegrityService) AuditAllTeams() ([]IntegrityReport, error) {
	var teams []models.Team
	if err := s.db.Find(&teams).Error; err != nil {
		return nil, err
	}

	reports := make([]IntegrityReport, 0, len(teams))
	for _, team := range teams {
		report, err := s.AuditTeam(team.ID)
		if err != nil {
			log.Printf("integrity: audit failed for team %d: %v", team.ID, err)
			continue
		}
		if !report.OK() {
			log.Printf("integrity: team %d has %d chain violations", team.ID, len(report.Violations))
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
