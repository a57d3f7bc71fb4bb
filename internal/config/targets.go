package config

import (
	"fmt"
	"iter"

	"github.com/nettracex/netlistx/internal/domain"
)

const (
	// DefaultCustomTargetLimit is the number of generator slots offered when
	// netlist.max_custom_targets is not configured
	DefaultCustomTargetLimit = 8
	// MaxCustomTargetLimit bounds netlist.max_custom_targets
	MaxCustomTargetLimit = 32

	// KeyUseDefaultNetname is persisted on every dialog save
	KeyUseDefaultNetname = "NetlistUseDefaultNetname"

	titleKeyPrefix   = "CustomNetlistTitle"
	commandKeyPrefix = "CustomNetlistCommand"
)

// Target is one persisted user generator definition
type Target struct {
	Title   string `json:"title" yaml:"title"`
	Command string `json:"command" yaml:"command"`
}

// TitleKey returns the store key of the title of the n-th generator (n from 1)
func TitleKey(n int) string {
	return fmt.Sprintf("%s%d", titleKeyPrefix, n)
}

// CommandKey returns the store key of the command of the n-th generator (n from 1)
func CommandKey(n int) string {
	return fmt.Sprintf("%s%d", commandKeyPrefix, n)
}

// CustomTargets yields the persisted generators with their 0-based slot.
// The sequence stops at the first empty title or after limit entries, so a
// slot following a hole is never read.
func CustomTargets(store domain.SettingsStore, limit int) iter.Seq2[int, Target] {
	return func(yield func(int, Target) bool) {
		for slot := 0; slot < limit; slot++ {
			title := store.GetString(TitleKey(slot + 1))
			if title == "" {
				return
			}
			t := Target{Title: title, Command: store.GetString(CommandKey(slot + 1))}
			if !yield(slot, t) {
				return
			}
		}
	}
}

// LoadTargets collects CustomTargets into a slice
func LoadTargets(store domain.SettingsStore, limit int) []Target {
	var targets []Target
	for _, t := range CustomTargets(store, limit) {
		targets = append(targets, t)
	}
	return targets
}

// StoreTargets writes targets as a compacted numbered sequence. Targets with
// an empty title are skipped. Every following index up to clearTo is written
// empty so stale entries cannot be read back.
func StoreTargets(store domain.SettingsStore, targets []Target, clearTo int) error {
	n := 1
	for _, t := range targets {
		if t.Title == "" {
			continue
		}
		if err := setPair(store, n, t.Title, t.Command); err != nil {
			return err
		}
		n++
	}

	for ; n <= clearTo; n++ {
		if err := setPair(store, n, "", ""); err != nil {
			return err
		}
	}

	return nil
}

func setPair(store domain.SettingsStore, n int, title, command string) error {
	if err := store.Set(TitleKey(n), title); err != nil {
		return fmt.Errorf("failed to store %s: %w", TitleKey(n), err)
	}
	if err := store.Set(CommandKey(n), command); err != nil {
		return fmt.Errorf("failed to store %s: %w", CommandKey(n), err)
	}
	return nil
}
