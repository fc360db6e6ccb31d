package core

import (
	"core/cron"
	"core/handlers"
	"core/services"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	PlayerHandler     *handlers.PlayerHandler
	PlayerService     *services.PlayerService
	TeamHandler       *handlers.TeamHandler
	TeamService       *services.TeamService
	MatchHandler      *handlers.MatchHandler
	MatchService      *services.MatchService
	MatchEditService  *services.MatchEditService
	EditRecordHandler *handlers.EditRecordHandler
	EditRecordService *services.EditRecordService
	RatingService     *services.RatingService
	IntegrityService  *services.IntegrityService
	StatsHandler      *handlers.StatsHandler
	StatsService      *services.StatsService
	Scheduler         *cron.Scheduler
	db                *gorm.DB
}

func NewModule(db *gorm.DB) *Module {
	ratingService := services.NewRatingService(db)

	playerService := services.NewPlayerService(db)
	playerHandler := handlers.NewPlayerHandler(playerService, ratingService)

	teamService := services.NewTeamService(db)

	matchService := services.NewMatchService(db)
	matchEditService := services.NewMatchEditService(db, matchService)
	matchHandler := handlers.NewMatchHandler(matchService, matchEditService)

	editRecordService := services.NewEditRecordService(db)
	editRecordHandler := handlers.NewEditRecordHandler(editRecordService)

	integrityService := services.NewIntegrityService(db)
	teamHandler := handlers.NewTeamHandler(teamService, ratingService, integrityService)

	statsService := services.NewStatsService(db)
	statsHandler := handlers.NewStatsHandler(statsService)

	scheduler := cron.NewScheduler(integrityService)

	return &Module{
		PlayerHandler:     playerHandler,
		PlayerService:     playerService,
		TeamHandler:       teamHandler,
		TeamService:       teamService,
		MatchHandler:      matchHandler,
		MatchService:      matchService,
		MatchEditService:  matchEditService,
		EditRecordHandler: editRecordHandler,
		EditRecordService: editRecordService,
		RatingService:     ratingService,
		IntegrityService:  integrityService,
		StatsHandler:      statsHandler,
		StatsService:      statsService,
		Scheduler:         scheduler,
		db:                db,
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	players := r.Group("/players")
	{
		players.GET("", m.PlayerHandler.GetPlayers)
		players.POST("", m.PlayerHandler.CreatePlayer)
		players.GET("/:id", m.PlayerHandler.GetPlayer)
		players.GET("/:id/ratings", m.PlayerHandler.GetPlayerRatings)
		players.GET("/:id/history", m.PlayerHandler.GetPlayerHistory)
	}

	teams := r.Group("/teams")
	{
		teams.GET("", m.TeamHandler.GetTeams)
		teams.POST("", m.TeamHandler.CreateTeam)
		teams.GET("/:id", m.TeamHandler.GetTeam)
		teams.GET("/:id/leaderboard", m.TeamHandler.GetLeaderboard)
		teams.GET("/:id/squads", m.TeamHandler.GetSquads)
		teams.POST("/:id/squads", m.TeamHandler.CreateSquad)
		teams.GET("/:id/integrity", m.TeamHandler.AuditIntegrity)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/recent", m.MatchHandler.GetRecentMatches)
		matches.POST("", m.MatchHandler.SubmitMatch)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.PUT("/:id", m.MatchHandler.EditMatch)
		matches.DELETE("/:id", m.MatchHandler.DeleteMatch)
		matches.GET("/:id/participations", m.MatchHandler.GetMatchParticipations)
		matches.GET("/:id/edits", m.EditRecordHandler.GetMatchEditRecords)
	}

	editRecords := r.Group("/edit-records")
	{
		editRecords.GET("/recent", m.EditRecordHandler.GetRecentEditRecords)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the cron scheduler for the integrity audit
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the cron scheduler
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}

// RunIntegrityAuditNow manually triggers the integrity audit (useful for testing)
func (m *Module) RunIntegrityAuditNow() {
	log.Println("Manually triggering integrity audit...")
	m.Scheduler.RunNow()
}
