package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pht-ctoi/ctoistatus/internal/common/apperrors"
	"github.com/stretchr/testify/assert"
)

func serve(h RequestHandler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WrapHttpRsp(h).ServeHTTP(rr, req)
	return rr
}

func TestWrapHttpRspJSON(t *testing.T) {
	rr := serve(func(r *http.Request) (*Response, error) {
		return &Response{Response: map[string]int{"a": 1}}, nil
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentTypeJSON, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"a":1}`, rr.Body.String())
}

func TestWrapHttpRspCSV(t *testing.T) {
	rr := serve(func(r *http.Request) (*Response, error) {
		return &Response{ContentType: ContentTypeCSV, Body: []byte("a,b\n")}, nil
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentTypeCSV, rr.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", rr.Body.String())
}

func TestWrapHttpRspErrors(t *testing.T) {
	kind := apperrors.New("upstream failed").SetStatusCode(http.StatusBadGateway)
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{name: "http error", err: ErrNotFound("no such CTOI"), code: http.StatusNotFound, body: `{"result":0,"error":"no such CTOI"}`},
		{name: "app error", err: kind.Msg("exofop down"), code: http.StatusBadGateway, body: `{"result":0,"error":"exofop down"}`},
		{name: "app error without code", err: apperrors.New("boom"), code: http.StatusInternalServerError, body: `{"result":0,"error":"boom"}`},
		{name: "plain error", err: errors.New("oops"), code: http.StatusInternalServerError, body: `{"result":0,"error":"oops"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(func(r *http.Request) (*Response, error) { return nil, tt.err })
			assert.Equal(t, tt.code, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}

func TestResponseWriterRecordsStatus(t *testing.T) {
	rw := NewResponseWriter(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, rw.Status())
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)
	rw.Write([]byte("abc"))
	assert.True(t, rw.Written())
	assert.Equal(t, http.StatusTeapot, rw.Status())
	assert.Equal(t, 3, rw.BytesWritten())
}
