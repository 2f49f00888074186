package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForMapsStatuses(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, MetadataFor(CodeUnauthorized).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(CodeInternal).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(CodeDependency).HTTPStatus)

	// unknown codes degrade to internal
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("WHATEVER")).HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("conexión rechazada")
	err := Wrap(CodeDependency, cause, "consultando base de datos")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDependency, err.Code())
	assert.Equal(t, "consultando base de datos", err.Message())
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	typed := New(CodeNotFound, "compra no encontrada")
	wrapped := fmt.Errorf("handling request: %w", typed)

	found := As(wrapped)
	require.NotNil(t, found)
	assert.Equal(t, CodeNotFound, found.Code())
	assert.Equal(t, "compra no encontrada", found.Message())

	assert.Nil(t, As(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "parámetros inválidos").WithDetails("limit debe ser numérico")
	assert.Equal(t, "limit debe ser numérico", err.Details())
}
