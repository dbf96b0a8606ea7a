package httpx

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/Aayush4518/WhisperBox-SQL/log"
)

// Will log an error, and send an HTTP response with status 500 and
// the raw error message in a JSON body
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]any{"error": err.Error()})
}

// Will log a debug message, and send an HTTP response with status 404
// and the standard not-found JSON body
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]any{"error": "Form not found"})
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}
