package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nba-prop-checker/internal/analysis"
	"nba-prop-checker/internal/api"
	"nba-prop-checker/internal/logger"
)

// statusClientClosedRequest is nginx's code for a client that went away
// before the response was written.
const statusClientClosedRequest = 499

// errBadRequest marks request-parsing failures outside the engine.
var errBadRequest = errors.New("bad request")

// statusFor maps an error to the HTTP status returned to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errBadRequest),
		errors.Is(err, analysis.ErrUnknownStatToken),
		errors.Is(err, analysis.ErrEmptyStatSpec),
		errors.Is(err, analysis.ErrInvalidStatCombination),
		errors.Is(err, analysis.ErrInvalidPropLine),
		errors.Is(err, analysis.ErrInvalidWindowSize):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, analysis.ErrEmptyWindow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (h ApiHandler) returnErrorJson(c *gin.Context, err error) {
	code := statusFor(err)
	log := logger.FromContext(c.Request.Context(), h.Log)
	switch {
	case code == statusClientClosedRequest:
		log.Debugw("client went away", "error", err)
		c.AbortWithStatus(code)
		return
	case code >= http.StatusInternalServerError:
		log.Errorw("request failed", "status", code, "error", err)
	default:
		log.Debugw("request rejected", "status", code, "error", err)
	}

	message := err.Error()
	switch code {
	case http.StatusGatewayTimeout:
		message = "upstream data timed out"
	case http.StatusBadGateway:
		message = "upstream data unavailable"
		if errors.Is(err, analysis.ErrMissingFieldData) {
			message = err.Error()
		}
	}

	c.AbortWithStatusJSON(code, gin.H{
		"status":  "fail",
		"message": message,
	})
}
