package server

import (
	"context"

	"nba-prop-checker/internal/analysis"
	"nba-prop-checker/internal/api"
)

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go

// PlayerFinder resolves players by name or id.
type PlayerFinder interface {
	FindPlayer(ctx context.Context, name string) (api.Player, error)
	GetPlayer(ctx context.Context, id int) (api.Player, error)
}

// GameProvider returns a player's recent games, newest first.
type GameProvider interface {
	RecentGames(ctx context.Context, playerID, n int) ([]analysis.GameRecord, error)
}
