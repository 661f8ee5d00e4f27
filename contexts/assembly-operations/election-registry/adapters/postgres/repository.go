package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/election-registry/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

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

func (r *Repository) SaveElection(ctx context.Context, election entities.Election) error {
	row := electionModelFromEntity(election)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":               row.Name,
			"minimum_attendance": row.MinimumAttendance,
			"seats":              row.Seats,
			"abstention_allowed": row.AbstentionAllowed,
			"updated_at":         row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("registry_repo_save_election_failed", create.Error,
			"election_id", strings.TrimSpace(election.ElectionID),
		)
	}
	return nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (entities.Election, error) {
	var row electionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, domainerrors.ErrElectionNotFound
		}
		return entities.Election{}, r.logError("registry_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListElections(ctx context.Context) ([]entities.Election, error) {
	var rows []electionModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_elections_failed", err)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveCandidate(ctx context.Context, candidate entities.Candidate) error {
	row := candidateModelFromEntity(candidate)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":            row.Name,
			"chapter":         row.Chapter,
			"office":          row.Office,
			"ballot_position": row.BallotPosition,
			"updated_at":      row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateBallotPosition
		}
		return r.logError("registry_repo_save_candidate_failed", create.Error,
			"candidate_id", strings.TrimSpace(candidate.CandidateID),
		)
	}
	return nil
}

func (r *Repository) GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(candidateID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, domainerrors.ErrCandidateNotFound
		}
		return entities.Candidate{}, r.logError("registry_repo_get_candidate_failed", err,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCandidateByOfficePosition(ctx context.Context, office entities.OfficeKind, position int) (entities.Candidate, bool, error) {
	var row candidateModel
	err := r.db.WithContext(ctx).
		Where("office = ?", string(office)).
		Where("ballot_position = ?", position).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Candidate{}, false, nil
		}
		return entities.Candidate{}, false, r.logError("registry_repo_get_candidate_by_position_failed", err,
			"office", string(office),
			"ballot_position", position,
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) AssignCandidate(ctx context.Context, electionID string, candidateID string) error {
	row := electionCandidateModel{
		ElectionID:  strings.TrimSpace(electionID),
		CandidateID: strings.TrimSpace(candidateID),
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrCandidateAlreadyAssigned
		}
		return r.logError("registry_repo_assign_candidate_failed", err,
			"election_id", row.ElectionID,
			"candidate_id", row.CandidateID,
		)
	}
	return nil
}

func (r *Repository) ListElectionCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error) {
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Joins("JOIN election_candidates ON election_candidates.candidate_id = candidates.id").
		Where("election_candidates.election_id = ?", strings.TrimSpace(electionID)).
		Order("candidates.ballot_position ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("registry_repo_list_election_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) SaveKiosk(ctx context.Context, kiosk entities.Kiosk) error {
	row := kioskModelFromEntity(kiosk)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":       row.Name,
			"username":   row.Username,
			"status":     row.Status,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("registry_repo_save_kiosk_failed", create.Error,
			"kiosk_id", strings.TrimSpace(kiosk.KioskID),
		)
	}
	return nil
}

func (r *Repository) GetKiosk(ctx context.Context, kioskID string) (entities.Kiosk, error) {
	var row kioskModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(kioskID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Kiosk{}, domainerrors.ErrKioskNotFound
		}
		return entities.Kiosk{}, r.logError("registry_repo_get_kiosk_failed", err,
			"kiosk_id", strings.TrimSpace(kioskID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) BindKiosk(ctx context.Context, kioskID string, electionID string) error {
	row := kioskElectionModel{
		KioskID:    strings.TrimSpace(kioskID),
		ElectionID: strings.TrimSpace(electionID),
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrKioskAlreadyBound
		}
		return r.logError("registry_repo_bind_kiosk_failed", err,
			"kiosk_id", row.KioskID,
			"election_id", row.ElectionID,
		)
	}
	return nil
}

func (r *Repository) ListKioskElections(ctx context.Context, kioskID string) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Joins("JOIN kiosk_elections ON kiosk_elections.election_id = elections.id").
		Where("kiosk_elections.kiosk_id = ?", strings.TrimSpace(kioskID)).
		Order("elections.created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("registry_repo_list_kiosk_elections_failed", err,
			"kiosk_id", strings.TrimSpace(kioskID),
		)
	}
	items := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "assembly-operations/election-registry",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("registry repository operation failed", fields...)
	return err
}

// SystemClock implements ports.Clock with UTC wall time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator implements ports.IDGenerator using RFC 4122 UUID v4 values.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type electionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	MinimumAttendance int       `gorm:"column:minimum_attendance"`
	Seats             int       `gorm:"column:seats"`
	AbstentionAllowed bool      `gorm:"column:abstention_allowed"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (electionModel) TableName() string {
	return "elections"
}

func electionModelFromEntity(item entities.Election) electionModel {
	return electionModel{
		ID:                strings.TrimSpace(item.ElectionID),
		Name:              item.Name,
		MinimumAttendance: item.MinimumAttendance,
		Seats:             item.Seats,
		AbstentionAllowed: item.AbstentionAllowed,
		CreatedAt:         item.CreatedAt.UTC(),
		UpdatedAt:         item.UpdatedAt.UTC(),
	}
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ElectionID:        m.ID,
		Name:              m.Name,
		MinimumAttendance: m.MinimumAttendance,
		Seats:             m.Seats,
		AbstentionAllowed: m.AbstentionAllowed,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
}

type candidateModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Name           string    `gorm:"column:name"`
	Chapter        string    `gorm:"column:chapter"`
	Office         string    `gorm:"column:office"`
	BallotPosition int       `gorm:"column:ballot_position"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

func candidateModelFromEntity(item entities.Candidate) candidateModel {
	return candidateModel{
		ID:             strings.TrimSpace(item.CandidateID),
		Name:           item.Name,
		Chapter:        item.Chapter,
		Office:         string(item.Office),
		BallotPosition: item.BallotPosition,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		CandidateID:    m.ID,
		Name:           m.Name,
		Chapter:        m.Chapter,
		Office:         entities.OfficeKind(m.Office),
		BallotPosition: m.BallotPosition,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

type electionCandidateModel struct {
	ElectionID  string    `gorm:"column:election_id;primaryKey"`
	CandidateID string    `gorm:"column:candidate_id;primaryKey"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (electionCandidateModel) TableName() string {
	return "election_candidates"
}

type kioskElectionModel struct {
	KioskID    string    `gorm:"column:kiosk_id;primaryKey"`
	ElectionID string    `gorm:"column:election_id;primaryKey"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (kioskElectionModel) TableName() string {
	return "kiosk_elections"
}

type kioskModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Username  string    `gorm:"column:username"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (kioskModel) TableName() string {
	return "kiosks"
}

func kioskModelFromEntity(item entities.Kiosk) kioskModel {
	return kioskModel{
		ID:        strings.TrimSpace(item.KioskID),
		Name:      item.Name,
		Username:  item.Username,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func (m kioskModel) toEntity() entities.Kiosk {
	return entities.Kiosk{
		KioskID:   m.ID,
		Name:      m.Name,
		Username:  m.Username,
		Status:    entities.KioskStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.RegistryRepository = (*Repository)(nil)
