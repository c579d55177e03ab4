package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/wildfire/internal/domain/model"
)

// ControlsProvider supplies the selector options.
type ControlsProvider interface {
	Controls(ctx context.Context) (model.Controls, error)
}

// parseSelection reads year and region from the query string. A missing
// value falls back to the dashboard default.
func parseSelection(r *http.Request, deps ControlsProvider) (int, string, error) {
	q := r.URL.Query()
	yearRaw := strings.TrimSpace(q.Get("year"))
	region := strings.TrimSpace(q.Get("region"))

	if yearRaw == "" || region == "" {
		c, err := deps.Controls(r.Context())
		if err != nil {
			return 0, "", err
		}
		if region == "" {
			region = c.DefaultRegion
		}
		if yearRaw == "" {
			return c.DefaultYear, region, nil
		}
	}

	year, err := strconv.Atoi(yearRaw)
	if err != nil {
		return 0, "", fmt.Errorf("%w: year must be an integer, got %q", ErrBadRequest, yearRaw)
	}
	return year, region, nil
}
