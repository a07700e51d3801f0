package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/mwootten/extractor/internal/api"
	"github.com/mwootten/extractor/internal/extract"
)

// SchemaEndpoint handles GET /schema. The schema document is served verbatim
// so schema-driven form renderers see exactly what validation enforces.
type SchemaEndpoint struct{}

func (e *SchemaEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/schema", e.handler
}

func (e *SchemaEndpoint) RequiresInit() bool { return false }

func (e *SchemaEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(extract.RequestSchema())
}

func (e *SchemaEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Fetch the extraction request schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			schema, err := client.Schema(cmd.Context())
			if err != nil {
				return err
			}

			var doc map[string]any
			if err := json.Unmarshal(schema, &doc); err != nil {
				return err
			}
			return api.Output(doc)
		},
	}
}
