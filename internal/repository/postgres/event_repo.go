package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, event_date, event_time, location, category_id, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Date, e.StartTime, e.Location,
		e.CategoryID, e.OrganizerID, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, event_date, event_time, location, category_id, organizer_id, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var catNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.StartTime, &e.Location,
		&catNull, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if catNull.Valid {
		e.CategoryID = &catNull.String
	}
	return e, nil
}

func (r *eventRepository) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	query := `
		SELECT e.id, e.name, e.description, e.event_date, e.event_time, e.location,
		       e.category_id, c.name, e.organizer_id, u.username, e.created_at, e.updated_at
		FROM events e
		LEFT JOIN categories c ON c.id = e.category_id
		INNER JOIN users u ON u.id = e.organizer_id
		WHERE e.id = $1
	`
	d := &domain.EventDetail{}
	var catID, catName sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Date, &d.StartTime, &d.Location,
		&catID, &catName, &d.OrganizerID, &d.OrganizerName, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if catID.Valid {
		d.CategoryID = &catID.String
	}
	if catName.Valid {
		d.CategoryName = &catName.String
	}

	images, err := r.listImages(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Images = images

	participants, err := r.listParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Participants = participants
	return d, nil
}

func (r *eventRepository) listImages(ctx context.Context, eventID string) ([]*domain.EventImage, error) {
	query := `
		SELECT id, event_id, storage_key, url, created_at
		FROM event_images
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]*domain.EventImage, 0)
	for rows.Next() {
		img := &domain.EventImage{}
		if err := rows.Scan(&img.ID, &img.EventID, &img.StorageKey, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *eventRepository) listParticipants(ctx context.Context, eventID string) ([]*domain.ParticipantInfo, error) {
	query := `
		SELECT u.id, u.username, u.email
		FROM users u
		INNER JOIN rsvps r ON r.user_id = u.id
		WHERE r.event_id = $1
		ORDER BY u.username
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.ParticipantInfo, 0)
	for rows.Next() {
		p := &domain.ParticipantInfo{}
		if err := rows.Scan(&p.ID, &p.Username, &p.Email); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

const eventListSelect = `
	SELECT e.id, e.name, e.description, e.event_date, e.event_time, e.location,
	       e.category_id, c.name, e.organizer_id, u.username, e.created_at, e.updated_at,
	       fi.id, fi.storage_key, fi.url, fi.created_at
	FROM events e
	LEFT JOIN categories c ON c.id = e.category_id
	INNER JOIN users u ON u.id = e.organizer_id
	LEFT JOIN LATERAL (
		SELECT id, storage_key, url, created_at
		FROM event_images
		WHERE event_id = e.id
		ORDER BY created_at, id
		LIMIT 1
	) fi ON TRUE
`

// likeEscaper escapes LIKE metacharacters so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// filterClauses translates the EventFilter into WHERE clauses and arguments.
// Mirrors domain.EventFilter.Matches: each sub-filter applies only when its
// parameter is set, single-ended date bounds are strict, and the keyword is
// a name-or-location disjunction conjoined with the rest. Substring values
// are escaped so % and _ match literally, as Matches treats them.
func filterClauses(f domain.EventFilter, n int) (clauses []string, args []interface{}, next int) {
	switch f.Mode {
	case domain.ModeToday:
		clauses = append(clauses, fmt.Sprintf("e.event_date = $%d", n))
		args = append(args, f.Today)
		n++
	case domain.ModePast:
		clauses = append(clauses, fmt.Sprintf("e.event_date < $%d", n))
		args = append(args, f.Today)
		n++
	case domain.ModeUpcoming:
		clauses = append(clauses, fmt.Sprintf("e.event_date > $%d", n))
		args = append(args, f.Today)
		n++
	case domain.ModeSearch:
		if f.Keyword != "" {
			clauses = append(clauses, fmt.Sprintf("(e.name ILIKE $%d OR e.location ILIKE $%d)", n, n))
			args = append(args, likePattern(f.Keyword))
			n++
		}
		if f.Category != "" {
			clauses = append(clauses, fmt.Sprintf("c.name ILIKE $%d", n))
			args = append(args, likePattern(f.Category))
			n++
		}
		if f.Location != "" {
			clauses = append(clauses, fmt.Sprintf("e.location ILIKE $%d", n))
			args = append(args, likePattern(f.Location))
			n++
		}
		switch {
		case f.StartDate != nil && f.EndDate != nil:
			clauses = append(clauses, fmt.Sprintf("e.event_date BETWEEN $%d AND $%d", n, n+1))
			args = append(args, *f.StartDate, *f.EndDate)
			n += 2
		case f.StartDate != nil:
			clauses = append(clauses, fmt.Sprintf("e.event_date > $%d", n))
			args = append(args, *f.StartDate)
			n++
		case f.EndDate != nil:
			clauses = append(clauses, fmt.Sprintf("e.event_date < $%d", n))
			args = append(args, *f.EndDate)
			n++
		}
	}
	return clauses, args, n
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.EventListItem, error) {
	clauses, args, _ := filterClauses(f, 1)
	query := eventListSelect
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY e.event_date, e.event_time, e.id"
	return r.queryListItems(ctx, query, args...)
}

func (r *eventRepository) ListByParticipant(ctx context.Context, userID string, f domain.EventFilter) ([]*domain.EventListItem, error) {
	clauses, args, _ := filterClauses(f, 2)
	query := eventListSelect + `
	INNER JOIN rsvps rv ON rv.event_id = e.id AND rv.user_id = $1`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY e.event_date, e.event_time, e.id"
	return r.queryListItems(ctx, query, append([]interface{}{userID}, args...)...)
}

func (r *eventRepository) queryListItems(ctx context.Context, query string, args ...interface{}) ([]*domain.EventListItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.EventListItem, 0)
	for rows.Next() {
		it := &domain.EventListItem{}
		var catID, catName sql.NullString
		var imgID, imgKey, imgURL sql.NullString
		var imgCreated sql.NullTime
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Description, &it.Date, &it.StartTime, &it.Location,
			&catID, &catName, &it.OrganizerID, &it.OrganizerName, &it.CreatedAt, &it.UpdatedAt,
			&imgID, &imgKey, &imgURL, &imgCreated,
		); err != nil {
			return nil, err
		}
		if catID.Valid {
			it.CategoryID = &catID.String
		}
		if catName.Valid {
			it.CategoryName = &catName.String
		}
		if imgID.Valid {
			it.FirstImage = &domain.EventImage{
				ID:         imgID.String,
				EventID:    it.ID,
				StorageKey: imgKey.String,
				URL:        imgURL.String,
				CreatedAt:  imgCreated.Time,
			}
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *eventRepository) ListParticipantCounts(ctx context.Context) ([]*domain.EventParticipantRow, error) {
	query := `
		SELECT e.id, e.name, u.username, COUNT(r.id)
		FROM events e
		INNER JOIN users u ON u.id = e.organizer_id
		LEFT JOIN rsvps r ON r.event_id = e.id
		GROUP BY e.id, e.name, u.username
		ORDER BY e.name, e.id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.EventParticipantRow, 0)
	for rows.Next() {
		row := &domain.EventParticipantRow{}
		if err := rows.Scan(&row.EventID, &row.EventName, &row.OrganizerName, &row.TotalRSVPs); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_date = $%d", n))
		args = append(args, *upd.Date)
		n++
	}
	if upd.StartTime != nil {
		setClauses = append(setClauses, fmt.Sprintf("event_time = $%d", n))
		args = append(args, *upd.StartTime)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if upd.CategoryID != nil {
		setClauses = append(setClauses, fmt.Sprintf("category_id = $%d", n))
		args = append(args, *upd.CategoryID)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, name, description, event_date, event_time, location, category_id, organizer_id, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)

	e := &domain.Event{}
	var catNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Name, &e.Description, &e.Date, &e.StartTime, &e.Location,
		&catNull, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if catNull.Valid {
		e.CategoryID = &catNull.String
	}
	return e, nil
}

// Delete removes the event; its images and RSVP rows go with it via the FK
// cascade.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) Counts(ctx context.Context, today time.Time) (*domain.EventCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE event_date < $1),
		       COUNT(*) FILTER (WHERE event_date > $1),
		       (SELECT COUNT(DISTINCT user_id) FROM rsvps)
		FROM events
	`
	c := &domain.EventCounts{}
	err := r.DB.QueryRowContext(ctx, query, today).Scan(
		&c.TotalEvents, &c.PastEvents, &c.UpcomingEvents, &c.TotalParticipants)
	if err != nil {
		return nil, err
	}
	return c, nil
}
