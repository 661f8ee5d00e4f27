package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/entities"
	domainerrors "github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/domain/errors"
	"github.com/cihuyyama/Musyavote/contexts/ballot-core/voting-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

func (r *Repository) PutSession(ctx context.Context, session entities.VotingSession) error {
	row, err := sessionModelFromEntity(session)
	if err != nil {
		return r.logError("voting_repo_put_session_encode_failed", err,
			"participant_id", session.ParticipantID,
		)
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(map[string]any{
			"state":        row.State,
			"elections":    row.Elections,
			"last_seen_at": row.LastSeenAt,
			"expires_at":   row.ExpiresAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_put_session_failed", create.Error,
			"participant_id", session.ParticipantID,
		)
	}
	return nil
}

func (r *Repository) GetSession(ctx context.Context, token string) (entities.VotingSession, bool, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("token = ?", strings.TrimSpace(token)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VotingSession{}, false, nil
		}
		return entities.VotingSession{}, false, r.logError("voting_repo_get_session_failed", err)
	}
	session, err := row.toEntity()
	if err != nil {
		return entities.VotingSession{}, false, r.logError("voting_repo_get_session_decode_failed", err)
	}
	return session, true, nil
}

func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).
		Where("token = ?", strings.TrimSpace(token)).
		Delete(&sessionModel{}).Error; err != nil {
		return r.logError("voting_repo_delete_session_failed", err)
	}
	return nil
}

func (r *Repository) ListIdleSessions(ctx context.Context, now time.Time, limit int) ([]entities.VotingSession, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []sessionModel
	if err := r.db.WithContext(ctx).
		Where("expires_at < ?", now.UTC()).
		Order("expires_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_idle_sessions_failed", err, "limit", limit)
	}
	sessions := make([]entities.VotingSession, 0, len(rows))
	for _, row := range rows {
		session, err := row.toEntity()
		if err != nil {
			return nil, r.logError("voting_repo_list_idle_sessions_decode_failed", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *Repository) InsertBallot(ctx context.Context, ballot entities.Ballot) error {
	row, err := ballotModelFromEntity(ballot)
	if err != nil {
		return r.logError("voting_repo_insert_ballot_encode_failed", err,
			"ballot_id", ballot.BallotID,
		)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("voting_repo_insert_ballot_failed", err,
			"ballot_id", ballot.BallotID,
			"election_id", ballot.ElectionID,
		)
	}
	return nil
}

func (r *Repository) HasBallot(ctx context.Context, participantID string, electionID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ballotModel{}).
		Where("participant_id = ? AND election_id = ?", strings.TrimSpace(participantID), strings.TrimSpace(electionID)).
		Count(&count).Error; err != nil {
		return false, r.logError("voting_repo_has_ballot_failed", err,
			"participant_id", strings.TrimSpace(participantID),
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return count > 0, nil
}

func (r *Repository) ListBallotsByParticipant(ctx context.Context, participantID string) ([]entities.Ballot, error) {
	var rows []ballotModel
	if err := r.db.WithContext(ctx).
		Where("participant_id = ?", strings.TrimSpace(participantID)).
		Order("cast_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_participant_ballots_failed", err,
			"participant_id", strings.TrimSpace(participantID),
		)
	}
	return ballotsFromModels(rows)
}

func (r *Repository) ListBallotsByElection(ctx context.Context, electionID string) ([]entities.Ballot, error) {
	var rows []ballotModel
	if err := r.db.WithContext(ctx).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Order("cast_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_election_ballots_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return ballotsFromModels(rows)
}

func (r *Repository) CountBallots(ctx context.Context, electionID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ballotModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Count(&count).Error; err != nil {
		return 0, r.logError("voting_repo_count_ballots_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return int(count), nil
}

func (r *Repository) GetParticipantByCode(ctx context.Context, code string) (ports.ParticipantRecord, bool, error) {
	var row participantProjectionModel
	err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(code)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ParticipantRecord{}, false, nil
		}
		return ports.ParticipantRecord{}, false, r.logError("voting_repo_participant_by_code_failed", err)
	}
	record, err := r.attachAttendance(ctx, row)
	if err != nil {
		return ports.ParticipantRecord{}, false, err
	}
	return record, true, nil
}

func (r *Repository) GetParticipant(ctx context.Context, participantID string) (ports.ParticipantRecord, bool, error) {
	var row participantProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(participantID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ParticipantRecord{}, false, nil
		}
		return ports.ParticipantRecord{}, false, r.logError("voting_repo_participant_failed", err,
			"participant_id", strings.TrimSpace(participantID),
		)
	}
	record, err := r.attachAttendance(ctx, row)
	if err != nil {
		return ports.ParticipantRecord{}, false, err
	}
	return record, true, nil
}

// attachAttendance reads the live credit total; a participant without an
// attendance row has zero credits.
func (r *Repository) attachAttendance(ctx context.Context, row participantProjectionModel) (ports.ParticipantRecord, error) {
	record := row.toRecord()
	var attendance attendanceProjectionModel
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", row.ID).
		First(&attendance).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return record, nil
		}
		return ports.ParticipantRecord{}, r.logError("voting_repo_attendance_lookup_failed", err,
			"participant_id", row.ID,
		)
	}
	record.AttendanceCredits = attendance.Total
	return record, nil
}

func (r *Repository) ListKioskElections(ctx context.Context, kioskID string) ([]ports.ElectionRecord, error) {
	var rows []electionProjectionModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN kiosk_elections ON kiosk_elections.election_id = elections.id").
		Where("kiosk_elections.kiosk_id = ?", strings.TrimSpace(kioskID)).
		Order("elections.created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_kiosk_elections_failed", err,
			"kiosk_id", strings.TrimSpace(kioskID),
		)
	}
	elections := make([]ports.ElectionRecord, 0, len(rows))
	for _, row := range rows {
		elections = append(elections, row.toRecord())
	}
	return elections, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID string) (ports.ElectionRecord, bool, error) {
	var row electionProjectionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(electionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ElectionRecord{}, false, nil
		}
		return ports.ElectionRecord{}, false, r.logError("voting_repo_get_election_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return row.toRecord(), true, nil
}

func (r *Repository) ListElectionCandidateIDs(ctx context.Context, electionID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&electionCandidateProjectionModel{}).
		Where("election_id = ?", strings.TrimSpace(electionID)).
		Pluck("candidate_id", &ids).Error; err != nil {
		return nil, r.logError("voting_repo_list_election_candidates_failed", err,
			"election_id", strings.TrimSpace(electionID),
		)
	}
	return ids, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("voting_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_append_outbox_insert_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("voting_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOutboxConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "ballot-core/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("voting repository operation failed", fields...)
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

type sessionModel struct {
	Token         string    `gorm:"column:token;primaryKey"`
	ParticipantID string    `gorm:"column:participant_id"`
	KioskID       string    `gorm:"column:kiosk_id"`
	State         string    `gorm:"column:state"`
	Elections     []byte    `gorm:"column:elections"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	LastSeenAt    time.Time `gorm:"column:last_seen_at"`
	ExpiresAt     time.Time `gorm:"column:expires_at"`
}

func (sessionModel) TableName() string {
	return "voting_sessions"
}

func sessionModelFromEntity(item entities.VotingSession) (sessionModel, error) {
	elections, err := json.Marshal(item.Elections)
	if err != nil {
		return sessionModel{}, err
	}
	return sessionModel{
		Token:         strings.TrimSpace(item.Token),
		ParticipantID: strings.TrimSpace(item.ParticipantID),
		KioskID:       strings.TrimSpace(item.KioskID),
		State:         string(item.State),
		Elections:     elections,
		CreatedAt:     item.CreatedAt.UTC(),
		LastSeenAt:    item.LastSeenAt.UTC(),
		ExpiresAt:     item.ExpiresAt.UTC(),
	}, nil
}

func (m sessionModel) toEntity() (entities.VotingSession, error) {
	var elections []entities.ElectionAccess
	if len(m.Elections) > 0 {
		if err := json.Unmarshal(m.Elections, &elections); err != nil {
			return entities.VotingSession{}, err
		}
	}
	return entities.VotingSession{
		Token:         m.Token,
		ParticipantID: m.ParticipantID,
		KioskID:       m.KioskID,
		State:         entities.SessionState(m.State),
		Elections:     elections,
		CreatedAt:     m.CreatedAt.UTC(),
		LastSeenAt:    m.LastSeenAt.UTC(),
		ExpiresAt:     m.ExpiresAt.UTC(),
	}, nil
}

type ballotModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	ElectionID    string    `gorm:"column:election_id;uniqueIndex:idx_ballots_participant_election"`
	ParticipantID string    `gorm:"column:participant_id;uniqueIndex:idx_ballots_participant_election"`
	KioskID       string    `gorm:"column:kiosk_id"`
	Selections    []byte    `gorm:"column:selections"`
	Abstained     bool      `gorm:"column:abstained"`
	CastAt        time.Time `gorm:"column:cast_at"`
}

func (ballotModel) TableName() string {
	return "ballots"
}

func ballotModelFromEntity(item entities.Ballot) (ballotModel, error) {
	selections, err := json.Marshal(item.CandidateIDs)
	if err != nil {
		return ballotModel{}, err
	}
	return ballotModel{
		ID:            strings.TrimSpace(item.BallotID),
		ElectionID:    strings.TrimSpace(item.ElectionID),
		ParticipantID: strings.TrimSpace(item.ParticipantID),
		KioskID:       strings.TrimSpace(item.KioskID),
		Selections:    selections,
		Abstained:     item.Abstained,
		CastAt:        item.CastAt.UTC(),
	}, nil
}

func (m ballotModel) toEntity() (entities.Ballot, error) {
	var candidateIDs []string
	if len(m.Selections) > 0 {
		if err := json.Unmarshal(m.Selections, &candidateIDs); err != nil {
			return entities.Ballot{}, err
		}
	}
	return entities.Ballot{
		BallotID:      m.ID,
		ElectionID:    m.ElectionID,
		ParticipantID: m.ParticipantID,
		KioskID:       m.KioskID,
		CandidateIDs:  candidateIDs,
		Abstained:     m.Abstained,
		CastAt:        m.CastAt.UTC(),
	}, nil
}

func ballotsFromModels(rows []ballotModel) ([]entities.Ballot, error) {
	ballots := make([]entities.Ballot, 0, len(rows))
	for _, row := range rows {
		ballot, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		ballots = append(ballots, ballot)
	}
	return ballots, nil
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "voting_outbox"
}

type participantProjectionModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	Code       string `gorm:"column:code"`
	Name       string `gorm:"column:name"`
	Chapter    string `gorm:"column:chapter"`
	Status     string `gorm:"column:status"`
	SecretHash string `gorm:"column:secret_hash"`
}

func (participantProjectionModel) TableName() string {
	return "participants"
}

func (m participantProjectionModel) toRecord() ports.ParticipantRecord {
	return ports.ParticipantRecord{
		ParticipantID: m.ID,
		Code:          m.Code,
		Name:          m.Name,
		Chapter:       m.Chapter,
		Status:        m.Status,
		SecretHash:    m.SecretHash,
	}
}

type attendanceProjectionModel struct {
	ParticipantID string `gorm:"column:participant_id;primaryKey"`
	Total         int    `gorm:"column:total"`
}

func (attendanceProjectionModel) TableName() string {
	return "attendance_records"
}

type electionProjectionModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name"`
	MinimumAttendance int       `gorm:"column:minimum_attendance"`
	Seats             int       `gorm:"column:seats"`
	AbstentionAllowed bool      `gorm:"column:abstention_allowed"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (electionProjectionModel) TableName() string {
	return "elections"
}

func (m electionProjectionModel) toRecord() ports.ElectionRecord {
	return ports.ElectionRecord{
		ElectionID:        m.ID,
		Name:              m.Name,
		MinimumAttendance: m.MinimumAttendance,
		Seats:             m.Seats,
		AbstentionAllowed: m.AbstentionAllowed,
	}
}

type electionCandidateProjectionModel struct {
	ElectionID  string `gorm:"column:election_id;primaryKey"`
	CandidateID string `gorm:"column:candidate_id;primaryKey"`
}

func (electionCandidateProjectionModel) TableName() string {
	return "election_candidates"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.SessionStore = (*Repository)(nil)
var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.DirectoryReader = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
var _ ports.Clock = (*SystemClock)(nil)
var _ ports.IDGenerator = (*UUIDGenerator)(nil)
