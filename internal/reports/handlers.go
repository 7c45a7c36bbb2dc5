package reports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HandleProgress handles GET /v1/reports/progress?format=pdf|csv
func HandleProgress(generator *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
		if format == "" {
			format = FormatPDF
		}
		if format != FormatPDF && format != FormatCSV {
			writeError(w, http.StatusBadRequest, "invalid_format", "format must be pdf or csv")
			return
		}

		data, err := generator.GenerateProgress(format)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		filename := fmt.Sprintf("progress-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
		if format == FormatPDF {
			w.Header().Set("Content-Type", "application/pdf")
		} else {
			w.Header().Set("Content-Type", "text/csv")
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
