// Package httpapi exposes the triage pipeline over HTTP.
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"iptriage/triage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const shortCircuitMessage = "IP address is local, reserved, or in blacklist, considered safe."

// Server serves the scoring API in front of a triage pipeline.
type Server struct {
	logger zerolog.Logger
	triage triage.Server
	addrs  triage.AddressClassifier
	geoDB  triage.GeoDB
	router *gin.Engine
}

// NewServer wires the HTTP routes. The triage pipeline and its engines must
// already be fully initialized.
func NewServer(logger zerolog.Logger, t triage.Server, ac triage.AddressClassifier, geoDB triage.GeoDB) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		logger: logger,
		triage: t,
		addrs:  ac,
		geoDB:  geoDB,
		router: gin.New(),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())

	s.router.POST("/ipcheck", s.ipcheckHandler)
	s.router.GET("/api/print_info", s.printInfoHandler)
	s.router.GET("/healthz", s.healthzHandler)
	s.router.GET("/metrics", metricsHandler())

	return s
}

// Run blocks serving HTTP on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("Starting triage HTTP server")
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("txid", uuid.NewString())
		c.Next()
	}
}

type ipcheckRequest struct {
	Time           string `json:"time"`
	AcceptLanguage string `json:"accept_language"`
	Location       string `json:"location"`
}

type ipcheckResponse struct {
	Status     string `json:"status,omitempty"`
	Prediction int    `json:"prediction"`
	Message    string `json:"message,omitempty"`
}

func (s *Server) ipcheckHandler(c *gin.Context) {
	var body ipcheckRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := triage.RawRequest{
		Addr:            clientAddr(c),
		Timestamp:       body.Time,
		Locale:          body.AcceptLanguage,
		ClaimedLocation: body.Location,
	}

	verdict, err := s.triage.EvalRequest(req)
	if err != nil {
		s.logger.Error().Err(err).Str("txid", c.GetString("txid")).Msg("Triage pipeline failed")
	}
	observeVerdict(verdict)

	if verdict.ShortCircuited {
		c.JSON(http.StatusOK, ipcheckResponse{Prediction: verdict.Code, Message: shortCircuitMessage})
		return
	}

	c.JSON(http.StatusOK, ipcheckResponse{Status: verdict.Decision.String(), Prediction: verdict.Code})
}

func (s *Server) printInfoHandler(c *gin.Context) {
	addr := clientAddr(c)

	c.JSON(http.StatusOK, gin.H{
		"Accept-Language": c.GetHeader("Accept-Language"),
		"IP":              addr,
		"Time":            time.Now().Format("2006-01-02 15:04:05"),
		"Location":        s.describeLocation(addr),
	})
}

func (s *Server) describeLocation(addr string) string {
	if s.addrs.IsLocalOrReserved(addr) {
		return triage.LocalOrReservedLocation
	}

	enrichment := s.geoDB.Lookup(addr)
	if enrichment.Status != triage.EnrichmentResolved {
		return "Location could not be determined."
	}

	return enrichment.Country + ", " + enrichment.City
}

func (s *Server) healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// clientAddr resolves the caller's source address: the first value of the
// X-Forwarded-For header when present, else the transport-level peer.
func clientAddr(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	return c.RemoteIP()
}
