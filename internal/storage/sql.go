package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLMirror copies every row into the survey_rows table (see db.Open).
type SQLMirror struct {
	db       *sql.DB
	surveyID string
}

func NewSQLMirror(db *sql.DB, surveyID string) *SQLMirror {
	if surveyID == "" {
		surveyID = "survey"
	}
	return &SQLMirror{db: db, surveyID: surveyID}
}

func (m *SQLMirror) Append(ctx context.Context, r Row) error {
	answers := r.Answers
	if answers == nil {
		answers = []string{}
	}
	buf, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	_, err = m.db.ExecContext(ctx,
		`INSERT INTO survey_rows (survey_id, recorded_at, partial, participant, page, answers_json)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		m.surveyID, r.Time.Unix(), r.Partial, r.Participant, r.Page, string(buf))
	if err != nil {
		return fmt.Errorf("mirror row: %w", err)
	}
	return nil
}

// StoredRow is a row read back from the mirror.
type StoredRow struct {
	ID          int64
	SurveyID    string
	RecordedAt  int64
	Partial     bool
	Participant string
	Page        int
	Answers     []string
}

// Rows lists mirrored rows for the survey in insertion order.
func (m *SQLMirror) Rows(ctx context.Context) ([]StoredRow, error) {
	rs, err := m.db.QueryContext(ctx,
		`SELECT id, survey_id, recorded_at, partial, participant, page, answers_json
		 FROM survey_rows WHERE survey_id=$1 ORDER BY id`, m.surveyID)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var out []StoredRow
	for rs.Next() {
		var sr StoredRow
		var aj string
		if err := rs.Scan(&sr.ID, &sr.SurveyID, &sr.RecordedAt, &sr.Partial, &sr.Participant, &sr.Page, &aj); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(aj), &sr.Answers); err != nil {
			return nil, fmt.Errorf("row %d: %w", sr.ID, err)
		}
		out = append(out, sr)
	}
	return out, rs.Err()
}
