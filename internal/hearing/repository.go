package hearing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/brtime"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/hearing-scheduler/internal/schedule"
)

type Repository interface {
	Create(ctx context.Context, h *Hearing) error
	GetByID(ctx context.Context, id string) (*Hearing, error)
	// List returns one page of matches and the total number of matches.
	List(ctx context.Context, filter Filter) ([]*Hearing, int, error)
	Update(ctx context.Context, h *Hearing) error
	Delete(ctx context.Context, id string) error

	// ListBookings loads the blocking hearings of the venues between from and to, inclusive.
	ListBookings(ctx context.Context, venueIDs []string, from, to schedule.Date) ([]schedule.Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var hearingColumns = []string{
	"h.id", "h.venue_id", "v.name", "h.case_number",
	"h.hearing_date", "h.start_time::text", "h.end_time::text", "h.duration_minutes",
	"h.hearing_type", "h.hearing_format", "h.status", "h.notes",
	"h.created_at", "h.updated_at",
}

func blockingStatusValues() []string {
	out := make([]string, len(BlockingStatuses))
	for i, s := range BlockingStatuses {
		out[i] = string(s)
	}
	return out
}

// parseClock reads a TIME column cast to text (HH:MM:SS).
func parseClock(s string) (schedule.Clock, error) {
	c, err := brtime.ParseTime(s)
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", s, err)
	}
	return c, nil
}

func scanHearing(row pgx.Row) (*Hearing, error) {
	var h Hearing
	var date time.Time
	var start, end string
	if err := row.Scan(
		&h.ID, &h.VenueID, &h.VenueName, &h.CaseNumber,
		&date, &start, &end, &h.DurationMinutes,
		&h.Type, &h.Format, &h.Status, &h.Notes,
		&h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	h.Date = schedule.DateOf(date)

	var err error
	if h.Start, err = parseClock(start); err != nil {
		return nil, err
	}
	if h.End, err = parseClock(end); err != nil {
		return nil, err
	}
	return &h, nil
}

// translateWriteError maps constraint violations to domain errors.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return ErrTimeConflict
		case pgerrcode.ForeignKeyViolation:
			return schedule.ErrVenueNotFound
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, h *Hearing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hearings").
		Columns(
			"venue_id", "case_number", "hearing_date", "start_time", "end_time", "duration_minutes",
			"hearing_type", "hearing_format", "status", "notes",
		).
		Values(
			h.VenueID, h.CaseNumber, h.Date.Time(), brtime.FormatTime(h.Start), brtime.FormatTime(h.End), h.DurationMinutes,
			h.Type, h.Format, h.Status, h.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create hearing query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create hearing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hearing, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(hearingColumns...).
		From("public.hearings h").
		Join("public.venues v ON h.venue_id = v.id").
		Where(squirrel.Eq{"h.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hearing query failed: %w", err)
	}

	h, err := scanHearing(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hearing failed: %w", err)
	}
	return h, nil
}

func applyFilter(query squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	if filter.VenueID != "" {
		query = query.Where(squirrel.Eq{"h.venue_id": filter.VenueID})
	}
	if filter.CaseNumber != "" {
		query = query.Where(squirrel.Eq{"h.case_number": filter.CaseNumber})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"h.status": string(filter.Status)})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"h.hearing_date": filter.DateFrom.Time()})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"h.hearing_date": filter.DateTo.Time()})
	}
	return query
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Hearing, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := applyFilter(psql.Select("count(*)").From("public.hearings h"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count hearings query failed: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hearings failed: %w", err)
	}

	query := applyFilter(psql.Select(hearingColumns...).
		From("public.hearings h").
		Join("public.venues v ON h.venue_id = v.id"), filter).
		OrderBy("h.hearing_date ASC", "h.start_time ASC", "h.id ASC")

	// Pagination
	if filter.PageSize > 0 {
		page, pageSize := request.ClampPage(filter.Page, filter.PageSize)
		query = query.Limit(uint64(pageSize)).Offset(uint64(request.Offset(page, pageSize)))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list hearings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hearings failed: %w", err)
	}
	defer rows.Close()

	var hearings []*Hearing
	for rows.Next() {
		h, err := scanHearing(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan hearing failed: %w", err)
		}
		hearings = append(hearings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list hearings failed: %w", err)
	}
	return hearings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, h *Hearing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.hearings").
		Set("venue_id", h.VenueID).
		Set("case_number", h.CaseNumber).
		Set("hearing_date", h.Date.Time()).
		Set("start_time", brtime.FormatTime(h.Start)).
		Set("end_time", brtime.FormatTime(h.End)).
		Set("duration_minutes", h.DurationMinutes).
		Set("hearing_type", h.Type).
		Set("hearing_format", h.Format).
		Set("status", h.Status).
		Set("notes", h.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": h.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update hearing query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&h.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update hearing failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hearings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hearing query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hearing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListBookings(ctx context.Context, venueIDs []string, from, to schedule.Date) ([]schedule.Booking, error) {
	if len(venueIDs) == 0 {
		return nil, nil
	}

	// Logic:
	// 1. Venue is one of venueIDs
	// 2. Status still blocks the slot (not cancelled or rescheduled)
	// 3. Date within [from, to]
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"h.id", "h.venue_id", "v.name", "h.case_number",
		"h.hearing_date", "h.start_time::text", "h.end_time::text",
	).
		From("public.hearings h").
		Join("public.venues v ON h.venue_id = v.id").
		Where(squirrel.Eq{"h.venue_id": venueIDs}).
		Where(squirrel.Eq{"h.status": blockingStatusValues()}).
		Where(squirrel.GtOrEq{"h.hearing_date": from.Time()}).
		Where(squirrel.LtOrEq{"h.hearing_date": to.Time()}).
		OrderBy("h.hearing_date ASC", "h.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []schedule.Booking
	for rows.Next() {
		var b schedule.Booking
		var date time.Time
		var start, end string
		if err := rows.Scan(&b.HearingID, &b.VenueID, &b.VenueName, &b.CaseNumber, &date, &start, &end); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		b.Date = schedule.DateOf(date)
		if b.Start, err = parseClock(start); err != nil {
			return nil, err
		}
		if b.End, err = parseClock(end); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	return bookings, nil
}
