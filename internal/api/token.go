package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/token"
)

type tokenHandler struct {
	services Services
}

// get inspects one or more comma-separated contract addresses. Bytecode
// and ABI payloads are attached only on request.
func (h tokenHandler) get(c echo.Context) error {
	ids := splitTrimmed(c.QueryParam("id"))
	if len(ids) == 0 {
		return apperr.New("BadRequest", "Token ID is required", http.StatusBadRequest)
	}

	tokens, err := h.services.Token.Get(c.Request().Context(), ids, token.Options{
		IncludeByteCode: c.QueryParam("include_bytecode") == "true",
		IncludeABI:      c.QueryParam("include_abi") == "true",
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"tokens": tokens})
}
