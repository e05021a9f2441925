package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// newDoctorCommand probes the configured origins so connectivity problems
// can be told apart from account problems.
func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to the marketplace and inference services",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "checking services", func(ctx context.Context, a *app) ([]string, error) {
				details := []string{
					probe(ctx, "marketplace api", a.cfg.BaseURL),
					probe(ctx, "uploads origin", a.cfg.UploadsURL),
				}
				if a.cfg.InferenceURL != "" {
					details = append(details, probe(ctx, "inference service", a.cfg.InferenceURL))
				} else {
					details = append(details, "inference service: not configured")
				}
				if _, err := a.client.Sessions().Get(ctx); err == nil {
					details = append(details, "session: signed in")
				} else {
					details = append(details, "session: signed out")
				}
				return details, nil
			})
		},
	}
}

func probe(ctx context.Context, name, baseURL string) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return fmt.Sprintf("%s: invalid URL (%v)", name, err)
	}
	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Sprintf("%s: unreachable (%v)", name, err)
	}
	defer func() { _ = resp.Body.Close() }()
	// Any HTTP answer means the origin is up; status is informational.
	return fmt.Sprintf("%s: reachable, %s in %s", name, resp.Status, time.Since(start).Round(time.Millisecond))
}
