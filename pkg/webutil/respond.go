package webutil

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// RespondJSON sets the proper content type and sends the given data as JSON to
// the client.
func RespondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")

	err := enc.Encode(data)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// RespondError sends an error ID to the client and logs the error, if it is
// not nil. It returns true, if the error was not nil. This makes it possible
// to do condensed error checking:
//
//	err := DoSomething()
//	if webutil.RespondError(w, err) {
//	    return
//	}
func RespondError(w http.ResponseWriter, err error) bool {
	if err != nil {
		id := uuid.New()

		slog.Info("failed to handle request",
			"error", err,
			"uuid", id.String(),
		)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "ERROR: %s", id.String())
		return true
	}

	return false
}
