package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/larahfelipe/tronbridge/internal/apperr"
)

const accountCreatedMessage = "Account created successfully"

type accountHandler struct {
	services Services
}

// get resolves one or more comma-separated addresses into account views.
func (h accountHandler) get(c echo.Context) error {
	addresses := splitTrimmed(c.QueryParam("address"))
	if len(addresses) == 0 {
		return apperr.New("BadRequest", "Account address is required", http.StatusBadRequest)
	}

	accounts, err := h.services.Account.Get(c.Request().Context(), addresses)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"accounts": accounts})
}

// create generates a fresh keypair; with_mnemonics=true derives it from a
// new 12-word phrase.
func (h accountHandler) create(c echo.Context) error {
	withMnemonics := c.QueryParam("with_mnemonics") == "true"

	generated, err := h.services.Account.Create(c.Request().Context(), withMnemonics)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"account": generated,
		"message": accountCreatedMessage,
	})
}

type recoverRequest struct {
	Mnemonics []string `json:"mnemonics"`
}

// recover re-derives an account from its mnemonic words.
func (h accountHandler) recover(c echo.Context) error {
	var req recoverRequest
	if err := c.Bind(&req); err != nil {
		return apperr.ErrBadRequest
	}
	if len(req.Mnemonics) < 12 || len(req.Mnemonics) > 24 {
		return apperr.New("BadRequest", "Mnemonic words must be between 12 and 24 words", http.StatusBadRequest)
	}

	words := make([]string, len(req.Mnemonics))
	for i, word := range req.Mnemonics {
		words[i] = strings.ToLower(strings.TrimSpace(word))
	}

	generated, err := h.services.Account.Recover(c.Request().Context(), strings.Join(words, " "))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, generated)
}

// splitTrimmed splits a comma-separated query value, dropping empty parts.
func splitTrimmed(value string) []string {
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
