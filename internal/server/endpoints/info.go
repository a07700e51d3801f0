package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mwootten/extractor/internal/api"
	"github.com/mwootten/extractor/version"
)

// InfoResponse describes the service and its endpoint map.
type InfoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// InfoEndpoint handles GET /, the service information root.
type InfoEndpoint struct{}

func (e *InfoEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *InfoEndpoint) RequiresInit() bool { return false }

func (e *InfoEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Name:    "Extractor API",
		Version: version.GitRelease,
		Endpoints: map[string]string{
			"schema":  "/schema",
			"extract": "/extract (POST)",
			"health":  "/health",
		},
	})
}

func (e *InfoEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Get service information",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp InfoResponse
			if err := client.Get(cmd.Context(), "/", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
