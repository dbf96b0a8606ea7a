package routes

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/Aayush4518/WhisperBox-SQL/app"
	"github.com/Aayush4518/WhisperBox-SQL/httpx"
	"github.com/Aayush4518/WhisperBox-SQL/log"
	"github.com/Aayush4518/WhisperBox-SQL/model"
)

type submitResponsesRequest struct {
	Answers map[string]any `json:"answers"`
}

func SubmitResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formID")

		req := submitResponsesRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		// required fields are only checked by the client
		responseSetID := newResponseSetID()

		err = insertAnswers(r.Context(), app.DB, formID, responseSetID, req.Answers)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message":         "Responses saved",
			"response_set_id": responseSetID,
		})
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formID")

		rows, err := app.QueryContext(r.Context(), `
			SELECT response_set_id, question_id, answer, created_at
			FROM responses
			WHERE form_id = ?
			ORDER BY id ASC`,
			formID,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_responses", err)
			return
		}
		defer rows.Close()

		sets := []*model.ResponseSet{}
		byID := map[string]*model.ResponseSet{}
		for rows.Next() {
			var setID, answer string
			var questionID int64
			var createdAt time.Time
			err = rows.Scan(&setID, &questionID, &answer, &createdAt)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_responses.scan", err)
				return
			}

			set, ok := byID[setID]
			if !ok {
				set = &model.ResponseSet{
					ResponseSetID: setID,
					Answers:       map[int64]string{},
				}
				byID[setID] = set
				sets = append(sets, set)
			}
			set.Answers[questionID] = answer
			// a set is only as recent as its latest answer row
			if createdAt.After(set.CreatedAt) {
				set.CreatedAt = createdAt
			}
		}
		if err = rows.Err(); err != nil {
			httpx.LogInternalError(w, r, "db.get_responses.rows", err)
			return
		}

		sort.SliceStable(sets, func(i, j int) bool {
			return sets[i].CreatedAt.After(sets[j].CreatedAt)
		})

		render.JSON(w, r, sets)
	}
}

// insertAnswers writes one row per answered question, collecting
// per-row failures instead of stopping at the first one.
func insertAnswers(ctx context.Context, db *sql.DB, formID, responseSetID string, answers map[string]any) error {
	if len(answers) == 0 {
		return nil
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO responses (form_id, response_set_id, question_id, answer, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var errs *multierror.Error
	for key, answer := range answers {
		questionID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "answer %q", key))
			continue
		}
		_, err = stmt.ExecContext(ctx, formID, responseSetID, questionID, flattenAnswer(answer), time.Now())
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "answer %d", questionID))
		}
	}
	return errs.ErrorOrNil()
}

// flattenAnswer turns a multi-select answer into a single comma-joined
// string. An option that itself contains ", " becomes indistinguishable
// from two options after this.
func flattenAnswer(answer any) string {
	switch v := answer.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newResponseSetID mirrors the identifiers the frontend already knows:
// a millisecond timestamp plus a short random suffix. Not collision
// proof, but good enough at this scale.
func newResponseSetID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("response_%d_%s", time.Now().UnixMilli(), suffix)
}
