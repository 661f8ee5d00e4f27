package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/assembly-operations/attendance-service/ports"

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

func (r *Repository) SaveParticipant(ctx context.Context, participant entities.Participant) error {
	row := participantModelFromEntity(participant)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"name":        row.Name,
			"chapter":     row.Chapter,
			"gender":      row.Gender,
			"status":      row.Status,
			"secret_hash": row.SecretHash,
			"updated_at":  row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrDuplicateCode
		}
		return r.logError("attendance_repo_save_participant_failed", create.Error,
			"participant_id", strings.TrimSpace(participant.ParticipantID),
		)
	}
	return nil
}

func (r *Repository) GetParticipant(ctx context.Context, participantID string) (entities.Participant, error) {
	var row participantModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(participantID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Participant{}, domainerrors.ErrParticipantNotFound
		}
		return entities.Participant{}, r.logError("attendance_repo_get_participant_failed", err,
			"participant_id", strings.TrimSpace(participantID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetParticipantByCode(ctx context.Context, code string) (entities.Participant, error) {
	var row participantModel
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(code)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Participant{}, domainerrors.ErrParticipantNotFound
		}
		return entities.Participant{}, r.logError("attendance_repo_get_participant_by_code_failed", err,
			"code", strings.TrimSpace(code),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) CountParticipants(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&participantModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("attendance_repo_count_participants_failed", err)
	}
	return int(count), nil
}

func (r *Repository) GetAttendance(ctx context.Context, participantID string) (entities.AttendanceRecord, error) {
	var row attendanceModel
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", strings.TrimSpace(participantID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.AttendanceRecord{}, domainerrors.ErrParticipantNotFound
		}
		return entities.AttendanceRecord{}, r.logError("attendance_repo_get_attendance_failed", err,
			"participant_id", strings.TrimSpace(participantID),
		)
	}
	return row.toEntity()
}

func (r *Repository) SaveAttendance(ctx context.Context, record entities.AttendanceRecord) error {
	row, err := attendanceModelFromEntity(record)
	if err != nil {
		return err
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "participant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"presence":   row.Presence,
			"total":      row.Total,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("attendance_repo_save_attendance_failed", create.Error,
			"participant_id", strings.TrimSpace(record.ParticipantID),
		)
	}
	return nil
}

func (r *Repository) ListPresentAt(ctx context.Context, pleno int) ([]ports.RosterEntry, error) {
	var rows []attendanceModel
	if err := r.db.WithContext(ctx).
		Where("total > 0").
		Order("participant_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("attendance_repo_list_present_failed", err, "pleno", pleno)
	}

	entries := make([]ports.RosterEntry, 0, len(rows))
	for _, row := range rows {
		record, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		if pleno < 1 || pleno > len(record.Present) || !record.Present[pleno-1] {
			continue
		}
		participant, err := r.GetParticipant(ctx, record.ParticipantID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrParticipantNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, ports.RosterEntry{
			ParticipantID: participant.ParticipantID,
			Code:          participant.Code,
			Name:          participant.Name,
			Chapter:       participant.Chapter,
			Total:         record.Total,
		})
	}
	return entries, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "assembly-operations/attendance-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("attendance repository operation failed", fields...)
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

type participantModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Code       string    `gorm:"column:code"`
	Name       string    `gorm:"column:name"`
	Chapter    string    `gorm:"column:chapter"`
	Gender     string    `gorm:"column:gender"`
	Status     string    `gorm:"column:status"`
	SecretHash string    `gorm:"column:secret_hash"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (participantModel) TableName() string {
	return "participants"
}

func participantModelFromEntity(item entities.Participant) participantModel {
	return participantModel{
		ID:         strings.TrimSpace(item.ParticipantID),
		Code:       strings.TrimSpace(item.Code),
		Name:       item.Name,
		Chapter:    item.Chapter,
		Gender:     item.Gender,
		Status:     string(item.Status),
		SecretHash: item.SecretHash,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func (m participantModel) toEntity() entities.Participant {
	return entities.Participant{
		ParticipantID: m.ID,
		Code:          m.Code,
		Name:          m.Name,
		Chapter:       m.Chapter,
		Gender:        m.Gender,
		Status:        entities.ParticipantStatus(m.Status),
		SecretHash:    m.SecretHash,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type attendanceModel struct {
	ParticipantID string    `gorm:"column:participant_id;primaryKey"`
	Presence      []byte    `gorm:"column:presence"`
	Total         int       `gorm:"column:total"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (attendanceModel) TableName() string {
	return "attendance_records"
}

func attendanceModelFromEntity(item entities.AttendanceRecord) (attendanceModel, error) {
	presence, err := json.Marshal(item.Present)
	if err != nil {
		return attendanceModel{}, err
	}
	return attendanceModel{
		ParticipantID: strings.TrimSpace(item.ParticipantID),
		Presence:      presence,
		Total:         item.CountPresent(),
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}, nil
}

func (m attendanceModel) toEntity() (entities.AttendanceRecord, error) {
	var present []bool
	if len(m.Presence) > 0 {
		if err := json.Unmarshal(m.Presence, &present); err != nil {
			return entities.AttendanceRecord{}, err
		}
	}
	return entities.AttendanceRecord{
		ParticipantID: m.ParticipantID,
		Present:       present,
		Total:         m.Total,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AttendanceRepository = (*Repository)(nil)
