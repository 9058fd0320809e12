package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tradegate/mtgate/internal/metaapi"
)

// defaultMagic is the expert-advisor magic number stamped on provisioning
// and trade requests when the caller does not supply one.
const defaultMagic = 123456

type createAccountRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Server   string `json:"server"`
	Magic    int    `json:"magic"`
}

func (s *Server) handleAccountCreate(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}
	magic := req.Magic
	if magic == 0 {
		magic = defaultMagic
	}

	result, err := s.gateway.CreateAccount(c.Request.Context(), metaapi.ProvisionRequest{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
		Server:   req.Server,
		Platform: "mt5",
		Magic:    magic,
		Type:     "cloud-g2",
	})
	if err != nil {
		logrus.Errorf("create account: %v", err)
		c.JSON(gatewayStatus(err), gin.H{"error": "Account creation failed"})
		return
	}

	account := Account{
		ID:        uuid.NewString(),
		UserID:    currentUserID(c),
		MT5ID:     result.ID,
		Login:     req.Login,
		Server:    req.Server,
		Name:      req.Name,
		State:     result.State,
		Region:    result.Region,
		CreatedAt: time.Now(),
	}
	if err := s.insertAccount(c.Request.Context(), account); err != nil {
		logrus.Errorf("create account: db insert: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "MT5 account created", "accountId": result.ID})
}

func (s *Server) handleAccountsList(c *gin.Context) {
	accounts, err := s.listAccounts(c.Request.Context(), currentUserID(c))
	if err != nil {
		logrus.Errorf("list accounts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not retrieve accounts"})
		return
	}
	// Ensure JSON is [] not null when empty.
	if accounts == nil {
		accounts = []Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// gatewayStatus maps a gateway failure to the status relayed to the caller:
// the upstream status when one arrived, 500 otherwise.
func gatewayStatus(err error) int {
	var gerr *metaapi.Error
	if errors.As(err, &gerr) && gerr.StatusCode != 0 {
		return gerr.StatusCode
	}
	return http.StatusInternalServerError
}
