package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/mwootten/extractor/internal/api"
	"github.com/mwootten/extractor/internal/extract"
	"github.com/mwootten/extractor/internal/svcctx"
)

// ExtractEndpoint handles POST /extract.
type ExtractEndpoint struct{}

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	// Validate against the published schema before decoding into the typed
	// request, so error locations refer to the wire shape.
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []extract.ValidationDetail{{
			Loc:  []any{"body"},
			Msg:  "invalid JSON: " + err.Error(),
			Type: "value_error.jsondecode",
		}})
		return
	}
	if err := extract.ValidateRequest(doc); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, extract.ValidationDetails(err))
		return
	}

	var req extract.Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, []extract.ValidationDetail{{
			Loc:  []any{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}})
		return
	}

	annotator := svcctx.AnnotatorFrom(r.Context())
	if annotator == nil {
		writeDetail(w, http.StatusServiceUnavailable, "extraction service not initialized")
		return
	}

	document, err := annotator.Annotate(r.Context(), &req)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("extraction failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Extraction failed: %s", err))
		return
	}

	result, err := extract.ResultFromDocument(document, "Extraction completed successfully")
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Extraction failed: %s", err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run an extraction",
		Long: `Run an extraction against the server.

The request is read as JSON from --file, or from stdin when --file is "-"
or omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if file == "" || file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}

			var req extract.Request
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("invalid request JSON: %w", err)
			}

			client := api.NewClient(getServerURL())
			result, err := client.Extract(cmd.Context(), &req)
			if err != nil {
				return err
			}

			// Re-decode for output so the document renders as YAML/JSON
			// instead of raw bytes.
			out := map[string]any{"success": result.Success}
			if result.Message != "" {
				out["message"] = result.Message
			}
			if len(result.Result) > 0 {
				var resDoc any
				if err := json.Unmarshal(result.Result, &resDoc); err != nil {
					return fmt.Errorf("failed to decode result: %w", err)
				}
				out["result"] = resDoc
			}
			return api.Output(out)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Request JSON file (default: stdin)")
	return cmd
}
