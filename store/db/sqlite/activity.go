package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/king120kw/research-weaver-sub001/store"
)

func (d *DB) CreateActivityRecord(ctx context.Context, create *store.ActivityRecord) (*store.ActivityRecord, error) {
	fields := []string{"user_id", "activity_type", "activity_date", "metadata", "created_ts"}
	args := []any{create.UserID, create.ActivityType, create.ActivityDate, create.Metadata, create.CreatedTs}

	stmt := `INSERT INTO activity_record (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)`
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity_record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}
	create.ID = int32(id)

	return create, nil
}

func (d *DB) ListActivityRecords(ctx context.Context, find *store.FindActivityRecord) ([]*store.ActivityRecord, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.UserID != nil {
		where, args = append(where, "user_id = ?"), append(args, *find.UserID)
	}
	if find.ActivityType != nil {
		where, args = append(where, "activity_type = ?"), append(args, *find.ActivityType)
	}
	if find.ActivityDateGte != nil {
		where, args = append(where, "activity_date >= ?"), append(args, *find.ActivityDateGte)
	}
	if find.ActivityDateLt != nil {
		where, args = append(where, "activity_date < ?"), append(args, *find.ActivityDateLt)
	}

	query := `SELECT id, user_id, activity_type, activity_date, metadata, created_ts FROM activity_record WHERE ` + strings.Join(where, " AND ") + ` ORDER BY activity_date ASC, id ASC`
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity_records: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ActivityRecord, 0)
	for rows.Next() {
		r := &store.ActivityRecord{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.ActivityType, &r.ActivityDate, &r.Metadata, &r.CreatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan activity_record: %w", err)
		}
		list = append(list, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity_records: %w", err)
	}

	return list, nil
}

func (d *DB) DeleteActivityRecord(ctx context.Context, delete *store.DeleteActivityRecord) error {
	if delete.UserID == nil {
		return fmt.Errorf("no condition to delete")
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM activity_record WHERE user_id = ?`, *delete.UserID); err != nil {
		return fmt.Errorf("failed to delete activity_records: %w", err)
	}
	return nil
}
