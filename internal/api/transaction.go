package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/larahfelipe/tronbridge/internal/apperr"
	"github.com/larahfelipe/tronbridge/internal/transaction"
)

const transactionCreatedMessage = "Transaction created and broadcasted successfully"

// Wire values for the stake contract type field.
const (
	wireFreezeContract   = "freeze_contract"
	wireUnfreezeContract = "unfreeze_contract"
)

type transactionHandler struct {
	services         Services
	defaultListLimit int
}

// get fetches a single transaction by id.
func (h transactionHandler) get(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	if id == "" {
		return apperr.New("BadRequest", "Transaction ID is required", http.StatusBadRequest)
	}

	tx, err := h.services.Transaction.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tx)
}

// getAll lists recent transactions for an address.
func (h transactionHandler) getAll(c echo.Context) error {
	address := strings.TrimSpace(c.QueryParam("address"))
	if address == "" {
		return apperr.New("BadRequest", "Account address is required", http.StatusBadRequest)
	}

	limit := h.defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			return apperr.New("BadRequest", "Limit must be between 1 and 200", http.StatusBadRequest)
		}
		limit = parsed
	}

	transactions, err := h.services.Transaction.List(c.Request().Context(), address, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"transactions": transactions})
}

type transferRequest struct {
	Amount  json.Number `json:"amount"`
	Address struct {
		Origin    string `json:"origin"`
		Recipient string `json:"recipient"`
	} `json:"address"`
	Token *struct {
		ID       string      `json:"id"`
		Decimals int         `json:"decimals"`
		GasLimit json.Number `json:"gasLimit"`
	} `json:"token"`
	SigningKey string `json:"signingKey"`
}

// createTransfer builds, signs and broadcasts a transfer.
func (h transactionHandler) createTransfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return apperr.ErrBadRequest
	}

	origin := strings.TrimSpace(req.Address.Origin)
	recipient := strings.TrimSpace(req.Address.Recipient)
	signingKey := strings.TrimSpace(req.SigningKey)
	if origin == "" || recipient == "" || signingKey == "" {
		return apperr.ErrBadRequest
	}
	if err := requirePositive(req.Amount); err != nil {
		return err
	}

	params := transaction.TransferParams{
		Amount:     req.Amount.String(),
		Origin:     origin,
		Recipient:  recipient,
		SigningKey: signingKey,
	}
	if req.Token != nil && strings.TrimSpace(req.Token.ID) != "" {
		params.Token = &transaction.TokenParams{
			ID:       strings.TrimSpace(req.Token.ID),
			Decimals: req.Token.Decimals,
			GasLimit: req.Token.GasLimit.String(),
		}
	}

	tx, err := h.services.Transaction.CreateTransfer(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"transaction": tx,
		"message":     transactionCreatedMessage,
	})
}

type stakeRequest struct {
	Amount       json.Number `json:"amount"`
	Address      string      `json:"address"`
	ContractType string      `json:"contractType"`
	ResourceType string      `json:"resourceType"`
	SigningKey   string      `json:"signingKey"`
}

// createStake builds, signs and broadcasts a resource lock or unlock.
func (h transactionHandler) createStake(c echo.Context) error {
	var req stakeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.ErrBadRequest
	}

	address := strings.TrimSpace(req.Address)
	signingKey := strings.TrimSpace(req.SigningKey)
	if address == "" || signingKey == "" {
		return apperr.ErrBadRequest
	}
	if err := requirePositive(req.Amount); err != nil {
		return err
	}

	var contractType transaction.ContractType
	switch strings.ToLower(strings.TrimSpace(req.ContractType)) {
	case wireFreezeContract:
		contractType = transaction.ContractFreeze
	case wireUnfreezeContract:
		contractType = transaction.ContractUnfreeze
	default:
		return apperr.New("BadRequest", "Contract type must be FREEZE_CONTRACT or UNFREEZE_CONTRACT", http.StatusBadRequest)
	}

	tx, err := h.services.Transaction.CreateStake(c.Request().Context(), transaction.StakeParams{
		Amount:       req.Amount.String(),
		Address:      address,
		ContractType: contractType,
		ResourceType: strings.TrimSpace(req.ResourceType),
		SigningKey:   signingKey,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"transaction": tx,
		"message":     transactionCreatedMessage,
	})
}

func requirePositive(value json.Number) error {
	parsed, err := value.Float64()
	if err != nil || parsed <= 0 {
		return apperr.ErrInvalidAmount
	}
	return nil
}
