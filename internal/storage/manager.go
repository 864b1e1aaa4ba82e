// Package storage provides the top-level StorageManager for MOSEE's
// storage areas. History is the only area today; the manager exists so
// adding areas does not ripple through service constructors.
package storage

import (
	"fmt"

	"github.com/Patrickdoranlearning/MOSEE/internal/common"
	"github.com/Patrickdoranlearning/MOSEE/internal/interfaces"
	"github.com/Patrickdoranlearning/MOSEE/internal/storage/historydb"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	history *historydb.Store
	logger  *common.Logger
}

// NewManager opens all storage areas.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	historyStore, err := historydb.NewStore(logger, config.Storage.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create history store: %w", err)
	}

	logger.Info().
		Str("history", config.Storage.History.Path).
		Msg("Storage manager initialized")

	return &Manager{history: historyStore, logger: logger}, nil
}

func (m *Manager) HistoryStore() interfaces.HistoryStore {
	return m.history
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	if m.history != nil {
		if err := m.history.Close(); err != nil {
			return fmt.Errorf("failed to close history store: %w", err)
		}
	}
	return nil
}
