package logs

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/sslteam/stp/geom"
	"github.com/sslteam/stp/pass"
	"github.com/sslteam/stp/stp"
	"github.com/sslteam/stp/world"
)

// Repository stores play history in a sqlite database. Times are stored
// as integer nanoseconds of game time.
type Repository struct {
	db *sqlx.DB
}

type Play struct {
	Run     string         `db:"run"`
	Play    string         `db:"play"`
	Started int64          `db:"started"`
	Ended   sql.NullInt64  `db:"ended"`
	Outcome sql.NullString `db:"outcome"`
}

// Duration is how long the play ran, or 0 if it never ended.
func (p *Play) Duration() time.Duration {
	if !p.Ended.Valid {
		return 0
	}
	return time.Duration(p.Ended.Int64 - p.Started)
}

type Pass struct {
	Run       string  `db:"run"`
	Play      string  `db:"play"`
	At        int64   `db:"at"`
	PasserX   float64 `db:"passer_x"`
	PasserY   float64 `db:"passer_y"`
	ReceiverX float64 `db:"receiver_x"`
	ReceiverY float64 `db:"receiver_y"`
	Speed     float64 `db:"speed"`
	StartTime int64   `db:"start_time"`
	Rating    float64 `db:"rating"`
}

func (p *Pass) Pass() pass.WithRating {
	return pass.WithRating{
		Pass: pass.New(
			geom.Pt(p.PasserX, p.PasserY),
			geom.Pt(p.ReceiverX, p.ReceiverY),
			p.Speed,
			world.Timestamp(p.StartTime),
		),
		Rating: p.Rating,
	}
}

type Summary struct {
	Play         string  `db:"play"`
	Outcome      string  `db:"outcome"`
	Runs         int     `db:"runs"`
	MeanDuration float64 `db:"mean_duration"`
}

func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" opens a separate database.
	db.SetMaxOpenConns(1)
	for _, s := range []struct {
		what, stmt string
	}{
		{"plays table", createPlayTable},
		{"passes table", createPassTable},
		{"play_summary view", createSummaryView},
	} {
		if _, err := db.Exec(s.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create %s: %w", s.what, err)
		}
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Recorder returns an stp.Recorder that files events under run.
func (r *Repository) Recorder(run string) stp.Recorder {
	return &recorder{repo: r, run: run}
}

func (r *Repository) Plays(play string) ([]Play, error) {
	var out []Play
	if err := r.db.Select(&out, selectPlays, play, play); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Passes(run string) ([]Pass, error) {
	var out []Pass
	if err := r.db.Select(&out, selectPasses, run); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Summary() ([]Summary, error) {
	var out []Summary
	if err := r.db.Select(&out, selectSummary); err != nil {
		return nil, err
	}
	return out, nil
}

type recorder struct {
	repo *Repository
	run  string
}

func (rc *recorder) PlayStarted(name string, at world.Timestamp) error {
	_, err := rc.repo.db.NamedExec(insertPlay, map[string]interface{}{
		"run":     rc.run,
		"play":    name,
		"started": int64(at),
	})
	return err
}

func (rc *recorder) PlayEnded(name string, at world.Timestamp, outcome stp.Outcome) error {
	_, err := rc.repo.db.NamedExec(endPlay, map[string]interface{}{
		"run":     rc.run,
		"play":    name,
		"ended":   int64(at),
		"outcome": string(outcome),
	})
	return err
}

func (rc *recorder) PassCommitted(name string, at world.Timestamp, p pass.WithRating) error {
	row := &Pass{
		Run:       rc.run,
		Play:      name,
		At:        int64(at),
		PasserX:   p.Pass.PasserPoint().X,
		PasserY:   p.Pass.PasserPoint().Y,
		ReceiverX: p.Pass.ReceiverPoint().X,
		ReceiverY: p.Pass.ReceiverPoint().Y,
		Speed:     p.Pass.Speed(),
		StartTime: int64(p.Pass.StartTime()),
		Rating:    p.Rating,
	}
	_, err := rc.repo.db.NamedExec(insertPass, row)
	return err
}
