package endpoints

import (
	"net/http"
	"time"

	"github.com/NovaMidia-Tec/painel/internal/http/api"
	"github.com/NovaMidia-Tec/painel/internal/model"
)

const dateLayout = "2006-01-02"

// requireRole gates a handler on the stored role of the current user.
// Returns a 403 error when the role is not in the allow-list.
func requireRole(user *model.User, roles ...string) *api.APIError {
	if !user.HasRole(roles...) {
		return &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
