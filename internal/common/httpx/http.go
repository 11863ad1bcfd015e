package httpx

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)

type Response struct {
	StatusCode  int
	Response    any
	ContentType string
	// Body is sent verbatim for non JSON content types
	Body []byte
}

type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp adapts a RequestHandler to http. Errors are rendered with the
// status code of their apperrors kind.
func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			var httperror *Error
			var appErr apperrors.Error
			switch {
			case errors.As(err, &httperror):
				httperror.Send(w)
			case errors.As(err, &appErr):
				log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
				SendError(w, appErr)
			default:
				ErrApplicationError(err.Error()).Send(w)
			}
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		if rsp.StatusCode == 0 {
			rsp.StatusCode = http.StatusOK
		}
		switch rsp.ContentType {
		case "", ContentTypeJSON:
			SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response)
		case ContentTypeCSV:
			w.Header().Set("Content-Type", ContentTypeCSV)
			w.WriteHeader(rsp.StatusCode)
			w.Write(rsp.Body)
		default:
			ErrApplicationError("unsupported response type").Send(w)
		}
	})
}

// SendJsonRsp encodes data as the JSON body of the response.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to encode response")
		ErrApplicationError("unable to encode response").Send(w)
		return
	}
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(statusCode)
	w.Write(b)
}
