package view

import (
	"github.com/sangkips/insights/internal/domain/enum"
	"go.uber.org/zap"
)

// Default is shown to signed-in users on no allow-list. It fetches nothing.
type Default struct {
	*board
}

func NewDefault(log *zap.Logger) *Default {
	return &Default{board: newBoard(enum.ViewDefault, log)}
}

func (v *Default) Mount() { v.mount() }
