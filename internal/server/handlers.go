package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"nba-prop-checker/internal/analysis"
	"nba-prop-checker/internal/api"
	"nba-prop-checker/internal/auth"
)

// providerTimeout bounds the provider calls made for one request.
const providerTimeout = 30 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), providerTimeout)
}

type playerResponse struct {
	PlayerID int    `json:"player_id"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

func newPlayerResponse(p api.Player) playerResponse {
	return playerResponse{
		PlayerID: p.ID,
		FullName: p.FullName(),
		Position: p.Position,
		Team:     p.Team.FullName,
	}
}

func success(c *gin.Context, results int, data gin.H) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}

func (h ApiHandler) listStats(c *gin.Context) {
	presets := analysis.Presets()
	success(c, len(presets), gin.H{"stats": presets})
}

func (h ApiHandler) getPlayer(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		h.returnErrorJson(c, fmt.Errorf("%w: player name is required", errBadRequest))
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	player, err := h.Players.FindPlayer(ctx, name)
	if errors.Is(err, api.ErrPlayerNotFound) {
		success(c, 0, gin.H{"player": nil})
		return
	}
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	success(c, 1, gin.H{"player": newPlayerResponse(player)})
}

func (h ApiHandler) getGames(c *gin.Context) {
	playerID, err := parsePlayerID(c)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}
	n, err := analysis.ParseWindowSize(c.Query("n"))
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	games, err := h.Games.RecentGames(ctx, playerID, n)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}
	window, err := analysis.SelectWindow(games, n)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	success(c, len(window), gin.H{"games": window})
}

func (h ApiHandler) evaluate(c *gin.Context) {
	playerID, err := parsePlayerID(c)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	// Reject bad input before spending provider calls.
	stat := c.Query("stat")
	if _, err := analysis.ParseStat(stat); err != nil {
		h.returnErrorJson(c, err)
		return
	}
	line, err := parseLine(c.Query("line"))
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}
	n, err := analysis.ParseWindowSize(c.Query("n"))
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	player, err := h.Players.GetPlayer(ctx, playerID)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}
	games, err := h.Games.RecentGames(ctx, playerID, n)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	summary, err := analysis.Evaluate(stat, line, games, n)
	if err != nil {
		h.returnErrorJson(c, err)
		return
	}

	success(c, summary.WindowSize, gin.H{
		"player":  newPlayerResponse(player),
		"summary": summary,
	})
}

func (h ApiHandler) dashboard(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "Not Authorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_name": user.Name})
}

func parsePlayerID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid player id %q", errBadRequest, c.Param("id"))
	}
	return id, nil
}

func parseLine(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, fmt.Errorf("%w: line is required", errBadRequest)
	}
	line, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %q is not a number", errBadRequest, s)
	}
	if err := analysis.ValidateLine(line); err != nil {
		return 0, err
	}
	return line, nil
}
