package webhookevent

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"SquareBridge/internal/webhook"
	"SquareBridge/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultLimit = 10
	maxLimit     = 1000
)

var columns = []string{"id", "event_id", "type", "merchant_id", "order_id", "payload", "received_at"}

type PgWebhookEventRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
	newID   func() string
}

var (
	_ webhook.Journal       = (*PgWebhookEventRepo)(nil)
	_ webhook.JournalReader = (*PgWebhookEventRepo)(nil)
)

func NewPgWebhookEventRepo(db postgres.Executor, builder squirrel.StatementBuilderType) *PgWebhookEventRepo {
	return &PgWebhookEventRepo{
		db:      db,
		builder: builder,
		newID:   func() string { return uuid.New().String() },
	}
}

// Append stores one delivery. Redelivered events get a new row.
func (r *PgWebhookEventRepo) Append(ctx context.Context, rec webhook.Received) error {
	query, args, err := r.builder.Insert("webhook_events").
		Columns(columns...).
		Values(r.newID(), rec.EventID, rec.Type, rec.MerchantID, rec.OrderID, rec.Payload, rec.ReceivedAt.UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err = r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("append webhook event: %w", err)
	}
	return nil
}

func (r *PgWebhookEventRepo) List(ctx context.Context, q webhook.JournalQuery) (webhook.JournalPage, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	sqlQuery, args, err := r.buildPageQuery(q)
	if err != nil {
		return webhook.JournalPage{}, fmt.Errorf("build webhook event query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return webhook.JournalPage{}, fmt.Errorf("query webhook events: %w", err)
	}
	defer rows.Close()

	items, err := parseRows(rows)
	if err != nil {
		return webhook.JournalPage{}, fmt.Errorf("parse webhook events: %w", err)
	}

	hasMore := len(items) > q.Limit
	if hasMore {
		items = items[:q.Limit] // drop the probe row
	}

	var nextCursor string
	if hasMore {
		last := items[len(items)-1]
		nextCursor = encodeCursor(cursor{ID: last.ID, ReceivedAt: last.ReceivedAt})
	}

	return webhook.JournalPage{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

type cursor struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

func encodeCursor(c cursor) string {
	b, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(b)
}

func decodeCursor(s string) (cursor, error) {
	var c cursor
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	if _, err := uuid.Parse(c.ID); err != nil {
		return c, fmt.Errorf("cursor id: %w", err)
	}
	if c.ReceivedAt.IsZero() {
		return c, errors.New("cursor received_at is missing")
	}
	return c, nil
}

// SELECT ... FROM webhook_events
// WHERE order_id = @OrderID AND (received_at, id) < (@cursor.ReceivedAt, @cursor.ID)
// ORDER BY received_at DESC, id DESC
// LIMIT @Limit+1
func (r *PgWebhookEventRepo) buildPageQuery(q webhook.JournalQuery) (string, []any, error) {
	b := r.builder.Select(columns...).From("webhook_events")

	if q.OrderID != "" {
		b = b.Where(squirrel.Eq{"order_id": q.OrderID})
	}

	if q.Cursor != "" {
		c, err := decodeCursor(q.Cursor)
		if err != nil {
			return "", nil, fmt.Errorf("decode cursor: %w: %v", webhook.ErrInvalidCursor, err)
		}
		b = b.Where("(received_at, id) < (?, ?)", c.ReceivedAt.UTC(), c.ID)
	}

	b = b.OrderBy("received_at DESC", "id DESC").Limit(uint64(q.Limit + 1))

	return b.ToSql()
}

func parseRows(rows pgx.Rows) ([]webhook.JournalEntry, error) {
	var entries []webhook.JournalEntry
	for rows.Next() {
		var e webhook.JournalEntry
		err := rows.Scan(&e.ID, &e.EventID, &e.Type, &e.MerchantID, &e.OrderID, &e.Payload, &e.ReceivedAt)
		if err != nil {
			return nil, fmt.Errorf("scan webhook event row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook event rows: %w", err)
	}

	return entries, nil
}
