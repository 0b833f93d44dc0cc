package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/banachtech/swaptions/data"
	"github.com/banachtech/swaptions/mainfuncs"
	"github.com/gin-gonic/gin"
)

// errNotFinite marks a simulation whose estimate overflowed.
var errNotFinite = errors.New("price is not a finite number")

type pricerRequest struct {
	Swaptions []data.SwaptionSpec `json:"swaptions" binding:"required,min=1,dive"`
	Trials    int                 `json:"trials" binding:"omitempty,min=1"`
}

type portfolioRequest struct {
	Count  int `json:"count" binding:"required,min=1"`
	Trials int `json:"trials" binding:"omitempty,min=1"`
}

type swaptionResponse struct {
	ID       int     `json:"id"`
	Strike   float64 `json:"strike"`
	Price    float64 `json:"price"`
	StdError float64 `json:"std_error"`
	Error    string  `json:"error,omitempty"`
}

func (server *Server) pricer(c *gin.Context) {
	var req pricerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	swaptions := make([]data.Swaption, len(req.Swaptions))
	for i := range req.Swaptions {
		swaptions[i].Spec = req.Swaptions[i]
	}
	server.price(c, swaptions, req.Trials)
}

func (server *Server) portfolio(c *gin.Context) {
	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}
	if req.Count > server.cfg.Server.MaxSwaptions {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": fmt.Sprintf("At most %d swaptions per request", server.cfg.Server.MaxSwaptions)})
		return
	}
	server.price(c, data.Swaptions(req.Count), req.Trials)
}

func (server *Server) price(c *gin.Context, swaptions []data.Swaption, trials int) {
	limits := server.cfg.Server
	if len(swaptions) > limits.MaxSwaptions {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": fmt.Sprintf("At most %d swaptions per request", limits.MaxSwaptions)})
		return
	}
	if trials > limits.MaxTrials {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": fmt.Sprintf("At most %d trials per swaption", limits.MaxTrials)})
		return
	}

	engine := server.cfg.Engine
	if trials > 0 {
		engine.Trials = trials
	}
	p := mainfuncs.NewPricer(engine, server.logger)

	start := time.Now()
	err := mainfuncs.Dispatch(swaptions, server.cfg.Workers, p.Price, nil)
	server.metrics.pricing.Observe(time.Since(start).Seconds())
	if err != nil {
		server.logger.Warn("some swaptions could not be priced", "error", err)
	}

	results := make([]swaptionResponse, len(swaptions))
	for i, s := range swaptions {
		results[i] = swaptionResponse{
			ID:       s.Spec.ID,
			Strike:   s.Spec.Strike,
			Price:    s.Result.MeanPrice,
			StdError: s.Result.StdError,
		}
		if s.Err == nil && !finite(s.Result.MeanPrice, s.Result.StdError) {
			s.Err = fmt.Errorf("swaption %d: %w", s.Spec.ID, errNotFinite)
			results[i].Price, results[i].StdError = 0, 0
		}
		if s.Err != nil {
			results[i].Error = s.Err.Error()
			server.metrics.swaptions.WithLabelValues("failed").Inc()
		} else {
			server.metrics.swaptions.WithLabelValues("priced").Inc()
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "trials": engine.Trials, "results": results})
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
