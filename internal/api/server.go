// Package api exposes the local HTTP surface the desktop UI talks to.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/Edge-Works/EdgeNodeObserver/internal/configstore"
	"github.com/Edge-Works/EdgeNodeObserver/internal/earnings"
	"github.com/Edge-Works/EdgeNodeObserver/internal/events"
	"github.com/Edge-Works/EdgeNodeObserver/internal/models"
	"github.com/Edge-Works/EdgeNodeObserver/internal/node"
)

var upgrader = websocket.Upgrader{
	// The API binds to localhost for a local UI; origins are not checked.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	DB           *gorm.DB
	Store        *configstore.Store
	Orchestrator *node.Orchestrator
	Poller       *node.Poller
	Scanner      *earnings.Scanner
	Hub          *events.Hub
}

func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/status", s.getStatus)
	router.GET("/payouts", s.getPayouts)
	router.GET("/events", s.getEvents)
	router.POST("/device/start", s.postDeviceStart)
	router.POST("/earnings/scan", s.postEarningsScan)

	return router
}

func (s *Server) getStatus(c *gin.Context) {
	nodeAddress, _ := s.Store.NodeAddress()
	walletAddress, _ := s.Store.WalletAddress()
	state, attempts, active := s.Poller.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"node_address":       nodeAddress,
		"wallet_address":     walletAddress,
		"device_initialized": s.Orchestrator.Initialized(),
		"last_node_payment":  s.Store.LastNodePayment(),
		"poll": gin.H{
			"state":    state.String(),
			"attempts": attempts,
			"active":   active,
		},
	})
}

func (s *Server) getPayouts(c *gin.Context) {
	period := c.Query("period") // e.g. "1h", "24h"
	if period == "" {
		period = "24h"
	}
	duration, err := time.ParseDuration(period)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period format"})
		return
	}

	since := time.Now().UTC().Add(-duration).UnixMilli()

	var payouts []models.Payout
	if err := s.DB.Where("timestamp >= ?", since).Order("timestamp desc").Find(&payouts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var totalOverPeriod int64
	s.DB.Model(&models.Payout{}).
		Where("timestamp >= ?", since).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalOverPeriod)

	c.JSON(http.StatusOK, gin.H{
		"results":           payouts,
		"total_over_period": totalOverPeriod,
		"period":            period,
	})
}

func (s *Server) getEvents(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.Hub.Attach(conn)
}

func (s *Server) postDeviceStart(c *gin.Context) {
	started := s.Orchestrator.StartDeviceForFirstTime()
	c.JSON(http.StatusOK, gin.H{"started": started})
}

func (s *Server) postEarningsScan(c *gin.Context) {
	found := s.Scanner.ScanForNewPayouts()
	c.JSON(http.StatusOK, gin.H{"new_payouts_found": found})
}
