package game

import "github.com/vovakirdan/snake-duel/internal/core"

// Board is the fixed-size grid a duel is played on. It carries geometry only,
// no game logic, and is immutable for the lifetime of a game.
type Board struct {
	W int `yaml:"width"`
	H int `yaml:"height"`
}

// Contains reports whether the point lies on the board.
func (b Board) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// Center returns the board's center cell, where the first food of a classic
// game is placed.
func (b Board) Center() core.Point {
	return core.Point{X: b.W / 2, Y: b.H / 2}
}

// Cells returns the total number of cells.
func (b Board) Cells() int {
	return b.W * b.H
}
