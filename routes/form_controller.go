package routes

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/Aayush4518/WhisperBox-SQL/app"
	"github.com/Aayush4518/WhisperBox-SQL/httpx"
	"github.com/Aayush4518/WhisperBox-SQL/log"
	"github.com/Aayush4518/WhisperBox-SQL/model"
)

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		// the builder normally assigns the token client-side
		if form.FormID == "" {
			form.FormID = newFormID()
		}

		_, err = app.ExecContext(r.Context(), `
			INSERT INTO forms (form_id, title, description, created_at)
			VALUES (?, ?, ?, ?)`,
			form.FormID,
			form.Title,
			form.Description,
			time.Now(),
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_form", err)
			return
		}

		err = insertQuestions(r.Context(), app.DB, form.FormID, form.Questions)
		if err != nil {
			// the form row stays: question failures are reported, not rolled back
			httpx.LogInternalError(w, r, "db.insert_form.questions", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form created",
			"form_id": form.FormID,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := app.QueryContext(r.Context(), `
			SELECT
				f.form_id, f.title, f.description, f.created_at,
				q.question_id, q.question_text, q.question_type, q.question_required, q.question_options
			FROM forms f
			LEFT OUTER JOIN questions q ON (f.form_id = q.form_id)
			ORDER BY f.created_at DESC, f.id DESC, q.id ASC`)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_forms", err)
			return
		}
		defer rows.Close()

		forms := []model.Form{}
		for rows.Next() {
			f := model.Form{}
			var qid sql.NullInt64
			var text, qtype, opts sql.NullString
			var required sql.NullBool
			err = rows.Scan(
				&f.FormID, &f.Title, &f.Description, &f.CreatedAt,
				&qid, &text, &qtype, &required, &opts,
			)
			if err != nil {
				httpx.LogInternalError(w, r, "db.get_forms.scan", err)
				return
			}

			lastIdx := len(forms) - 1
			if lastIdx < 0 || forms[lastIdx].FormID != f.FormID {
				f.Questions = []model.Question{}
				forms = append(forms, f)
				lastIdx++
			}
			if qid.Valid {
				forms[lastIdx].Questions = append(forms[lastIdx].Questions, model.Question{
					ID:       qid.Int64,
					Text:     text.String,
					Type:     qtype.String,
					Required: required.Bool,
					Options:  model.DecodeOptions(opts.String),
				})
			}
		}

		render.JSON(w, r, forms)
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formID")

		form := model.Form{}
		err := app.QueryRowContext(r.Context(), `
			SELECT form_id, title, description, created_at
			FROM forms
			WHERE form_id = ?`,
			formID,
		).Scan(&form.FormID, &form.Title, &form.Description, &form.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			httpx.LogNotFound(w, r, "get_form", formID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form", err)
			return
		}

		form.Questions, err = queryQuestions(r.Context(), app.DB, formID)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_form.questions", err)
			return
		}

		render.JSON(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formID")

		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		res, err := app.ExecContext(r.Context(), `
			UPDATE forms
			SET
				title = ?,
				description = ?
			WHERE form_id = ?`,
			form.Title,
			form.Description,
			formID,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, r, "update_form", formID)
			return
		}

		// wholesale replacement: existing answers may keep referencing
		// question ids that no longer exist among the new questions
		_, err = app.ExecContext(r.Context(), `
			DELETE FROM questions
			WHERE form_id = ?`,
			formID,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.delete_questions", err)
			return
		}

		err = insertQuestions(r.Context(), app.DB, formID, form.Questions)
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_form.questions", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form updated",
			"form_id": formID,
		})
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "formID")

		// responses and questions go first to satisfy the foreign keys
		_, err := app.ExecContext(r.Context(), `
			DELETE FROM responses
			WHERE form_id = ?`,
			formID,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form.responses", err)
			return
		}

		_, err = app.ExecContext(r.Context(), `
			DELETE FROM questions
			WHERE form_id = ?`,
			formID,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form.questions", err)
			return
		}

		res, err := app.ExecContext(r.Context(), `
			DELETE FROM forms WHERE form_id = ?`,
			formID,
		)
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogNotFound(w, r, "delete_form", formID)
			return
		}

		render.JSON(w, r, map[string]any{
			"message": "Form deleted",
			"form_id": formID,
		})
	}
}

// insertQuestions writes the given questions one by one, collecting
// per-row failures instead of stopping at the first one.
func insertQuestions(ctx context.Context, db *sql.DB, formID string, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO questions (form_id, question_id, question_text, question_type, question_required, question_options)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var errs *multierror.Error
	for _, q := range questions {
		options, err := model.EncodeOptions(q.Options)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "question %d: encode options", q.ID))
			continue
		}
		_, err = stmt.ExecContext(ctx, formID, q.ID, q.Text, q.Type, q.Required, options)
		if err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "question %d", q.ID))
		}
	}
	return errs.ErrorOrNil()
}

func queryQuestions(ctx context.Context, db *sql.DB, formID string) ([]model.Question, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT question_id, question_text, question_type, question_required, question_options
		FROM questions
		WHERE form_id = ?
		ORDER BY id ASC`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q := model.Question{}
		var opts string
		err = rows.Scan(&q.ID, &q.Text, &q.Type, &q.Required, &opts)
		if err != nil {
			return nil, err
		}
		q.Options = model.DecodeOptions(opts)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func newFormID() string {
	return strings.ToUpper(uuid.Must(uuid.NewV4()).String()[:6])
}
