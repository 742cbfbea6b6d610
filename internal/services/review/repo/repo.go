// Package repo provides the review repository implementation
package repo

import (
	"context"
	stdsql "database/sql"
	"errors"
	"time"

	"faqrelay/internal/modkit/repokit"
	"faqrelay/internal/services/review/domain"
)

// Repo is the review persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, rv domain.Review) error
	Get(ctx context.Context, id string) (domain.Review, bool, error)
	List(ctx context.Context, status string, limit int, after string) ([]domain.Review, error)

	// UpdateGuarded applies one transition with an optimistic check on the
	// expected status and version. won is false when another writer got
	// there first; the row is left untouched in that case
	UpdateGuarded(ctx context.Context,
		id string, from domain.Status, version int,
		to domain.Status, newAnswer *string,
	) (rv domain.Review, won bool, err error)

	ExpireOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}

type (
	// PG is a Postgres implementation of the review repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const reviewCols = `
	review_id, source_message_id, room_id, room_name,
	sender_id, sender_username, original_message, detected_question,
	proposed_answer, assigned_to, status, version, created_at, updated_at`

func scanReview(sc interface{ Scan(...any) error }) (domain.Review, error) {
	var rv domain.Review
	var status string
	err := sc.Scan(
		&rv.ID, &rv.SourceMessageID, &rv.RoomID, &rv.RoomName,
		&rv.SenderID, &rv.SenderUsername, &rv.OriginalMessage, &rv.DetectedQuestion,
		&rv.ProposedAnswer, &rv.AssignedTo, &status, &rv.Version, &rv.CreatedAt, &rv.UpdatedAt,
	)
	rv.Status = domain.Status(status)
	return rv, err
}

// Insert records a freshly escalated review
func (r *queries) Insert(ctx context.Context, rv domain.Review) error {
	const sql = `
		INSERT INTO reviews (
			review_id, source_message_id, room_id, room_name,
			sender_id, sender_username, original_message, detected_question,
			proposed_answer, assigned_to, status, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	`
	_, err := r.q.Exec(ctx, sql,
		rv.ID, rv.SourceMessageID, rv.RoomID, rv.RoomName,
		rv.SenderID, rv.SenderUsername, rv.OriginalMessage, rv.DetectedQuestion,
		rv.ProposedAnswer, rv.AssignedTo, string(rv.Status), rv.Version, rv.CreatedAt,
	)
	return err
}

// Get returns one review; ok is false when the id is unknown
func (r *queries) Get(ctx context.Context, id string) (domain.Review, bool, error) {
	const sql = `SELECT` + reviewCols + ` FROM reviews WHERE review_id = $1`

	rv, err := scanReview(r.q.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Review{}, false, nil
		}
		return domain.Review{}, false, err
	}
	return rv, true, nil
}

// List pages reviews newest first. after is a review id acting as the
// keyset cursor; an unknown cursor yields an empty page
func (r *queries) List(ctx context.Context, status string, limit int, after string) ([]domain.Review, error) {
	const sql = `
		SELECT` + reviewCols + `
		FROM reviews
		WHERE ($1::text = '' OR status = $1::text)
		  AND ($3::text = '' OR (created_at, review_id) < (
				SELECT created_at, review_id FROM reviews WHERE review_id = $3::text))
		ORDER BY created_at DESC, review_id DESC
		LIMIT $2
	`
	rows, err := r.q.Query(ctx, sql, status, limit, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// UpdateGuarded applies the transition only when status and version still
// match what the caller read. newAnswer nil keeps the stored answer
func (r *queries) UpdateGuarded(ctx context.Context,
	id string, from domain.Status, version int,
	to domain.Status, newAnswer *string,
) (domain.Review, bool, error) {
	const sql = `
		UPDATE reviews
		SET status          = $4,
		    version         = version + 1,
		    proposed_answer = COALESCE($5, proposed_answer),
		    updated_at      = NOW()
		WHERE review_id = $1 AND status = $2 AND version = $3
		RETURNING` + reviewCols

	rv, err := scanReview(r.q.QueryRow(ctx, sql, id, string(from), version, string(to), newAnswer))
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return domain.Review{}, false, nil
		}
		return domain.Review{}, false, err
	}
	return rv, true, nil
}

// ExpireOlderThan moves stale pending reviews to expired in one statement
// and returns the ids it touched
func (r *queries) ExpireOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	const sql = `
		WITH stale AS (
			SELECT review_id
			FROM reviews
			WHERE status = 'pending' AND created_at < $1
			ORDER BY created_at
			LIMIT $2
		)
		UPDATE reviews r
		SET status = 'expired', version = r.version + 1, updated_at = NOW()
		FROM stale
		WHERE r.review_id = stale.review_id
		RETURNING r.review_id
	`
	rows, err := r.q.Query(ctx, sql, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
