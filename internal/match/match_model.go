package match

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// MaxWickets is fixed by the format: eleven players, ten partnerships.
const MaxWickets = 10

// TournamentMatch is a fixture between two teams in a tournament. The
// per-team run and wicket totals live here so completed matches can be
// replayed into the points table without loading the scoring state.
type TournamentMatch struct {
	gorm.Model
	TournamentID uint       `gorm:"not null;index" json:"tournament_id"`
	Team1ID      uint       `gorm:"not null;index" json:"team1_id"`
	Team2ID      uint       `gorm:"not null;index" json:"team2_id"`
	MatchNumber  int        `gorm:"not null" json:"match_number"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	Location     string     `json:"location"`

	Status      string `gorm:"not null;default:'scheduled';index" json:"status"`
	IsCompleted bool   `gorm:"not null;default:false" json:"is_completed"`

	TossWonByTeamID    *uint `json:"toss_won_by_team_id,omitempty"`
	BattingFirstTeamID *uint `json:"batting_first_team_id,omitempty"`

	Team1Runs    int `gorm:"not null;default:0" json:"team1_runs"`
	Team1Wickets int `gorm:"not null;default:0" json:"team1_wickets"`
	Team2Runs    int `gorm:"not null;default:0" json:"team2_runs"`
	Team2Wickets int `gorm:"not null;default:0" json:"team2_wickets"`

	WinnerTeamID    *uint `json:"winner_team_id,omitempty"`
	IsTie           bool  `gorm:"not null;default:false" json:"is_tie"`
	ManOfTheMatchID *uint `json:"man_of_the_match_id,omitempty"`
}

// MatchState is the live scoring state, one row per started match. It is the
// single source of truth for the over/ball pointer and batting assignment;
// clients must not hold their own copy across requests.
type MatchState struct {
	gorm.Model
	MatchID uint `gorm:"not null;uniqueIndex" json:"match_id"`

	CurrentBattingTeamID uint `gorm:"not null" json:"current_batting_team_id"`
	CurrentBowlingTeamID uint `gorm:"not null" json:"current_bowling_team_id"`

	InningsNumber int `gorm:"not null;default:1" json:"innings_number"`
	CurrentOver   int `gorm:"not null;default:0" json:"current_over"`
	CurrentBall   int `gorm:"not null;default:0" json:"current_ball"`

	Batsman1ID *uint `json:"batsman1_id,omitempty"`
	Batsman2ID *uint `json:"batsman2_id,omitempty"`
	StrikerID  *uint `json:"current_striker_id,omitempty"`
	BowlerID   *uint `json:"current_bowler_id,omitempty"`

	// TargetRuns holds the first innings total once the innings switch
	// happens. The chase decision stays with the operator.
	TargetRuns *int `json:"target_runs,omitempty"`

	// Per-team legal delivery counters, kept after completion so the net
	// run rate can be computed from actual overs faced and bowled.
	Team1Balls int `gorm:"not null;default:0" json:"team1_balls"`
	Team2Balls int `gorm:"not null;default:0" json:"team2_balls"`

	// TotalBalls counts every legal delivery across both innings and acts
	// as the sequence number for duplicate-submission detection.
	TotalBalls int `gorm:"not null;default:0" json:"total_balls"`
}

// MatchPlayerStats is one row per (match, player), created zeroed for every
// active roster member when the match starts and frozen at completion.
type MatchPlayerStats struct {
	gorm.Model
	MatchID  uint `gorm:"not null;index:idx_match_player,unique" json:"match_id"`
	PlayerID uint `gorm:"not null;index:idx_match_player,unique" json:"player_id"`
	TeamID   uint `gorm:"not null;index" json:"team_id"`

	RunsScored int  `gorm:"not null;default:0" json:"runs_scored"`
	BallsFaced int  `gorm:"not null;default:0" json:"balls_faced"`
	Fours      int  `gorm:"not null;default:0" json:"fours"`
	Sixes      int  `gorm:"not null;default:0" json:"sixes"`
	IsOut      bool `gorm:"not null;default:false" json:"is_out"`

	WicketsTaken int `gorm:"not null;default:0" json:"wickets_taken"`
	BallsBowled  int `gorm:"not null;default:0" json:"balls_bowled"`
	RunsConceded int `gorm:"not null;default:0" json:"runs_conceded"`
}

// Ball event types.
const (
	EventScore  = "score"
	EventWicket = "wicket"
)

// BallEvent is the append-only ledger of deliveries. Totals are held in the
// state row for cheap reads; the ledger exists for audit and replay.
type BallEvent struct {
	gorm.Model
	MatchID  uint `gorm:"not null;uniqueIndex:idx_match_sequence" json:"match_id"`
	Sequence int  `gorm:"not null;uniqueIndex:idx_match_sequence" json:"sequence"`

	InningsNumber int    `gorm:"not null" json:"innings_number"`
	Over          int    `gorm:"not null" json:"over"`
	Ball          int    `gorm:"not null" json:"ball"`
	EventType     string `gorm:"not null" json:"event_type"`

	Runs          int   `gorm:"not null;default:0" json:"runs"`
	StrikerID     uint  `gorm:"not null" json:"striker_id"`
	BowlerID      uint  `gorm:"not null" json:"bowler_id"`
	DismissedID   *uint `json:"dismissed_batsman_id,omitempty"`
	NextBatsmanID *uint `json:"next_batsman_id,omitempty"`
}
