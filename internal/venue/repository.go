package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/brtime"
	"github.com/nekogravitycat/hearing-scheduler/internal/pkg/request"
)

// Repository defines data access methods for venues.
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	// List returns the matches and their total count. PageSize 0 disables paging.
	List(ctx context.Context, filter Filter) ([]*Venue, int, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var venueColumns = []string{
	"id", "name", "district", "address", "phone", "email", "notes",
	"working_windows", "skip_weekends", "mandatory_buffer_minutes",
	"created_at", "updated_at",
}

func scanVenue(row pgx.Row) (*Venue, error) {
	var v Venue
	var windows string
	if err := row.Scan(
		&v.ID, &v.Name, &v.District, &v.Address, &v.Phone, &v.Email, &v.Notes,
		&windows, &v.SkipWeekends, &v.MandatoryBufferMinutes,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := brtime.ParseWindows(windows)
	if err != nil {
		return nil, fmt.Errorf("venue %s has malformed working windows %q: %w", v.ID, windows, err)
	}
	v.Windows = parsed
	return &v, nil
}

// translateWriteError maps constraint violations to domain errors.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrDuplicateName
		case pgerrcode.ForeignKeyViolation:
			return ErrInUse
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, v *Venue) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.venues").
		Columns(
			"name", "district", "address", "phone", "email", "notes",
			"working_windows", "skip_weekends", "mandatory_buffer_minutes",
		).
		Values(
			v.Name, v.District, v.Address, v.Phone, v.Email, v.Notes,
			brtime.FormatWindows(v.Windows), v.SkipWeekends, v.MandatoryBufferMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create venue query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create venue failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Venue, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(venueColumns...).
		From("public.venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get venue query failed: %w", err)
	}

	v, err := scanVenue(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue failed: %w", err)
	}
	return v, nil
}

func applyFilter(query squirrel.SelectBuilder, filter Filter) squirrel.SelectBuilder {
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"district": pattern},
		})
	}
	if filter.District != "" {
		query = query.Where(squirrel.Eq{"district": filter.District})
	}
	return query
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Venue, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := applyFilter(psql.Select("count(*)").From("public.venues"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count venues query failed: %w", err)
	}
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count venues failed: %w", err)
	}

	query := applyFilter(psql.Select(venueColumns...).From("public.venues"), filter).
		OrderBy("name ASC", "id ASC")

	// Pagination
	if filter.PageSize > 0 {
		page, pageSize := request.ClampPage(filter.Page, filter.PageSize)
		query = query.Limit(uint64(pageSize)).Offset(uint64(request.Offset(page, pageSize)))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list venues query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list venues failed: %w", err)
	}
	defer rows.Close()

	var venues []*Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan venue failed: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list venues failed: %w", err)
	}
	return venues, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, v *Venue) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.venues").
		Set("name", v.Name).
		Set("district", v.District).
		Set("address", v.Address).
		Set("phone", v.Phone).
		Set("email", v.Email).
		Set("notes", v.Notes).
		Set("working_windows", brtime.FormatWindows(v.Windows)).
		Set("skip_weekends", v.SkipWeekends).
		Set("mandatory_buffer_minutes", v.MandatoryBufferMinutes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": v.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update venue query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update venue failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete venue query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := translateWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("delete venue failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
