// Package audit appends log entries for mutating and auth actions. Writes
// are best-effort: a failure is logged to the diagnostic channel and never
// surfaced to the user or allowed to block the primary action.
package audit

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/db"
)

type Recorder struct {
	store db.Store
}

func NewRecorder(store db.Store) *Recorder {
	return &Recorder{store: store}
}

// Record appends one entry. userID and deviceID may be nil. details is
// marshalled to the free-form payload column.
func (r *Recorder) Record(userID, deviceID *int, action string, details any) {
	var payload json.RawMessage
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Warn().Err(err).Str("action", action).Msg("could not marshal audit details")
		} else {
			payload = raw
		}
	}

	if err := r.store.InsertLog(userID, deviceID, action, payload); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit log write dropped")
	}
}
