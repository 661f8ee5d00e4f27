package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/results-service/ports"

	"gorm.io/gorm"
)

// Repository reads election configuration, ballots, and the roster directly
// from the shared schema. The results module owns no tables of its own.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (ports.ElectionInfo, bool, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionInfo{}, false, nil
		}
		return ports.ElectionInfo{}, false, r.logError("results_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toInfo(), true, nil
}

func (r *Repository) ListElections(ctx context.Context) ([]ports.ElectionInfo, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("results_repo_list_elections_failed", err)
	}
	elections := make([]ports.ElectionInfo, 0, len(rows))
	for _, row := range rows {
		elections = append(elections, row.toInfo())
	}
	return elections, nil
}

func (r *Repository) ListElectionCandidates(ctx context.Context, electionID string) ([]ports.CandidateInfo, error) {
	var rows []candidateModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN election_candidates ON election_candidates.candidate_id = candidates.id").
		Where("election_candidates.election_id = ?", strings.TrimSpace(electionID)).
		Order("candidates.ballot_position ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("results_repo_list_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	candidates := make([]ports.CandidateInfo, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, ports.CandidateInfo{
			CandidateID:    row.ID,
			Name:           row.Name,
			Chapter:        row.Chapter,
			Office:         row.Office,
			BallotPosition: row.BallotPosition,
		})
	}
	return candidates, nil
}

func (r *Repository) ListElectionBallots(ctx context.Context, electionID string) ([]ports.BallotRecord, error) {
	var rows []ballotModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("cast_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("results_repo_list_ballots_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	ballots := make([]ports.BallotRecord, 0, len(rows))
	for _, row := range rows {
		var candidateIDs []string
		if len(row.Selections) > 0 {
			if err := json.Unmarshal(row.Selections, &candidateIDs); err != nil {
				return nil, r.logError("results_repo_ballot_decode_failed", err,
					"ballot_id", row.ID,
				)
			}
		}
		ballots = append(ballots, ports.BallotRecord{
			BallotID:      row.ID,
			ParticipantID: row.ParticipantID,
			CandidateIDs:  candidateIDs,
			Abstained:     row.Abstained,
			CastAt:        row.CastAt.UTC(),
		})
	}
	return ballots, nil
}

func (r *Repository) CountParticipants(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&participantModel{}).
		Count(&count).Error; err != nil {
		return 0, r.logError("results_repo_count_participants_failed", err)
	}
	return int(count), nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "ballot-core/results-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("results repository operation failed", fields...)
	return err
}

type electionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	MinimumAttendance int       `gorm:"column:minimum_attendance"`
	Seats             int       `gorm:"column:seats"`
	AbstentionAllowed bool      `gorm:"column:abstention_allowed"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func (m electionModel) toInfo() ports.ElectionInfo {
	return ports.ElectionInfo{
		ElectionID:        m.ID,
		Name:              m.Name,
		MinimumAttendance: m.MinimumAttendance,
		Seats:             m.Seats,
		AbstentionAllowed: m.AbstentionAllowed,
	}
}

type candidateModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	Name           string `gorm:"column:name"`
	Chapter        string `gorm:"column:chapter"`
	Office         string `gorm:"column:office"`
	BallotPosition int    `gorm:"column:ballot_position"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

type ballotModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ElectionID    string    `gorm:"column:election_id"`
	ParticipantID string    `gorm:"column:participant_id"`
	Selections    []byte    `gorm:"column:selections"`
	Abstained     bool      `gorm:"column:abstained"`
	CastAt        time.Time `gorm:"column:cast_at"`
}

func (ballotModel) TableName() string {
	return "ballots"
}

type participantModel struct {
	ID string `gorm:"column:id;primaryKey"`
}

func (participantModel) TableName() string {
	return "participants"
}

var _ ports.ResultsReader = (*Repository)(nil)
