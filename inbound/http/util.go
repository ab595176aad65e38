package http

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-playground/validator/v10"
	"infinitech-web/common/errs"
	"infinitech-web/common/listing"
	"infinitech-web/model"
	"infinitech-web/outbound/backend"
	"mime"
	"net/http"
	"net/url"
	"strconv"
)

var errNotJSON = errors.New("backend response is not valid JSON")

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var message string
	var data any
	var httpErr *errs.HttpError
	var validationErr validator.ValidationErrors
	if errors.As(err, &httpErr) {
		message = httpErr.Message
		data = httpErr.Data
		w.WriteHeader(httpErr.Code)
	} else if errors.As(err, &validationErr) {
		message = "Validation failed"
		w.WriteHeader(http.StatusBadRequest)

		validationErrors := make(map[string]string)
		for _, fieldErr := range validationErr {
			validationErrors[fieldErr.Field()] = fieldErr.Tag()
		}

		data = validationErrors
	} else {
		message = "Internal Server Error"
		w.WriteHeader(http.StatusInternalServerError)
	}

	errorResponse := model.ErrorResponse{Error: message, Data: data}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// relayResponse writes the backend status and JSON body unchanged. A body
// that is not JSON is reported as errNotJSON and nothing is written.
func relayResponse(w http.ResponseWriter, resp *backend.Response) error {
	if !json.Valid(resp.Body) {
		return errNotJSON
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
	return nil
}

// failureMessage picks the connection hint for unreachable backends and the
// route's own message otherwise.
func failureMessage(err error, apiURL, fallback string) string {
	if errs.IsConnectionError(err) {
		return "Cannot connect to backend server. Please ensure Laravel is running on " + apiURL
	}
	return fallback
}

func writeFailure(w http.ResponseWriter, message string, err error) {
	writeJSONResponse(w, http.StatusInternalServerError, model.ResultResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, model.MessageResponse{Message: message})
}

func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}

// passThrough performs req and relays the backend answer. On failure it
// writes the route's failure envelope and returns the error for logging.
func passThrough(ctx context.Context, w http.ResponseWriter, client *backend.Client, req backend.Request, failure string) error {
	resp, err := client.Do(ctx, req)
	if err != nil {
		writeFailure(w, failure, err)
		return err
	}

	if err := relayResponse(w, resp); err != nil {
		writeFailure(w, failure, err)
		return err
	}

	return nil
}

// decodeRecord reads the single record of a backend answer, bare or wrapped in data.
func decodeRecord[T any](body []byte) (T, error) {
	var v T

	raw, err := backend.NormalizeRecord(body)
	if err != nil {
		return v, err
	}

	err = json.Unmarshal(raw, &v)
	return v, err
}

func pageQuery(r *http.Request) url.Values {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = "1"
	}
	return url.Values{"page": {page}}
}

// listQuery reads the admin list parameters. A missing or malformed page is 1.
func listQuery(r *http.Request) listing.Query {
	values := r.URL.Query()

	page, err := strconv.Atoi(values.Get("page"))
	if err != nil {
		page = 1
	}

	return listing.Query{
		Search:   values.Get("search"),
		Status:   values.Get("status"),
		Industry: values.Get("industry"),
		Page:     page,
	}
}
