// Package store — Postgres-бэкенд для сессий диалога.
package store

import (
	"context"
	"database/sql"
	"errors"

	"idea-bot/api/internal/flow"
)

// SessionRepo реализует flow.SessionStore поверх database/sql (драйвер pgx).
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// EnsureSchema создаёт таблицу сессий, если её ещё нет.
func (r *SessionRepo) EnsureSchema(ctx context.Context) error {
	const q = `
create table if not exists creative_sessions (
    user_id         bigint primary key,
    step            int         not null,
    target_audience text        not null default '',
    problem         text        not null default '',
    tech_preference text        not null default '',
    updated_at      timestamptz not null default now()
)`
	_, err := r.DB.ExecContext(ctx, q)
	return err
}

func (r *SessionRepo) Get(ctx context.Context, userID int64) (flow.Session, bool, error) {
	const q = `
select step, target_audience, problem, tech_preference
from creative_sessions
where user_id = $1`

	var (
		step     int
		audience string
		problem  string
		tech     string
	)
	err := r.DB.QueryRowContext(ctx, q, userID).Scan(&step, &audience, &problem, &tech)
	if errors.Is(err, sql.ErrNoRows) {
		return flow.Session{}, false, nil
	}
	if err != nil {
		return flow.Session{}, false, err
	}

	s := flow.Session{UserID: userID, Step: flow.Step(step)}
	s.Context.TargetAudience = audience
	s.Context.Problem = problem
	s.Context.TechPreference = tech
	return s, true, nil
}

func (r *SessionRepo) Put(ctx context.Context, s flow.Session) error {
	const q = `
insert into creative_sessions (user_id, step, target_audience, problem, tech_preference, updated_at)
values ($1, $2, $3, $4, $5, now())
on conflict (user_id) do update
set step = excluded.step,
    target_audience = excluded.target_audience,
    problem = excluded.problem,
    tech_preference = excluded.tech_preference,
    updated_at = now()`
	_, err := r.DB.ExecContext(ctx, q,
		s.UserID, int(s.Step), s.Context.TargetAudience, s.Context.Problem, s.Context.TechPreference)
	return err
}

func (r *SessionRepo) Delete(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(ctx, `delete from creative_sessions where user_id = $1`, userID)
	return err
}
