package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"status": "ok"})

	require.Equal(t, 200, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["data"]["status"])
}

func TestWriteErrorTypedCode(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeSelection, "unknown option \"Huge\" in group \"Size\""))

	require.Equal(t, 400, rec.Code)
	require.Contains(t, rec.Body.String(), "SELECTION_ERROR")
	require.Contains(t, rec.Body.String(), "Huge")
}

func TestWriteErrorHidesInternalMessages(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("pq: connection refused"))

	require.Equal(t, 500, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection refused")
	require.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestWriteErrorNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))

	require.Equal(t, 404, rec.Code)
	require.Contains(t, rec.Body.String(), "product not found")
}
