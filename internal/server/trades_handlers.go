package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tradegate/mtgate/internal/metaapi"
)

const tradeComment = "Trade via API"

type tradeRequest struct {
	Symbol     string  `json:"symbol"`
	Volume     float64 `json:"volume"`
	ActionType string  `json:"actionType"`
}

func (s *Server) handleTradeExecute(c *gin.Context) {
	userID := currentUserID(c)
	mt5ID := c.Param("accountId")

	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	account, err := s.getAccountByMT5ID(c.Request.Context(), userID, mt5ID)
	if err != nil {
		logrus.Errorf("execute trade: account lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Trade execution failed"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	}

	result, err := s.gateway.ExecuteTrade(c.Request.Context(), mt5ID, metaapi.TradeRequest{
		Symbol:     req.Symbol,
		Volume:     req.Volume,
		ActionType: req.ActionType,
		Magic:      defaultMagic,
		Comment:    tradeComment,
	})
	if err != nil {
		logrus.Errorf("execute trade: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Trade execution failed"})
		return
	}
	if result.Rejected() {
		// Brokerage refused the trade. Relay the result, keep the ledger clean.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Trade failed", "error": result})
		return
	}

	trade := Trade{
		ID:                 uuid.NewString(),
		UserID:             userID,
		AccountID:          mt5ID,
		Symbol:             req.Symbol,
		Volume:             req.Volume,
		OrderID:            result.OrderID,
		PositionID:         result.PositionID,
		TradeStartTime:     result.TradeStartTime,
		TradeExecutionTime: result.TradeExecutionTime,
		Message:            result.Message,
		StringCode:         result.StringCode,
		NumericCode:        result.NumericCode,
		CreatedAt:          time.Now(),
	}
	if err := s.insertTrade(c.Request.Context(), trade); err != nil {
		logrus.Errorf("execute trade: db insert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Trade execution failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trade executed", "result": result})
}

func (s *Server) handlePositionsList(c *gin.Context) {
	userID := currentUserID(c)
	mt5ID := c.Param("accountId")

	account, err := s.getAccountByMT5ID(c.Request.Context(), userID, mt5ID)
	if err != nil {
		logrus.Errorf("list positions: account lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch positions"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Account not found"})
		return
	}

	positions, err := s.gateway.GetPositions(c.Request.Context(), mt5ID)
	if err != nil {
		logrus.Errorf("list positions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch positions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

func (s *Server) handleTradesList(c *gin.Context) {
	trades, err := s.listTrades(c.Request.Context(), currentUserID(c))
	if err != nil {
		logrus.Errorf("list trades: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve trades"})
		return
	}
	if trades == nil {
		trades = []Trade{}
	}
	c.JSON(http.StatusOK, trades)
}
