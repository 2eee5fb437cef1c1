package errutil

import (
	"errors"
	"fmt"

	"github.com/small-frappuccino/modsheet/pkg/log"
)

// HandleDiscordError executes fn and logs any error as a Discord-related failure.
// It returns whatever error fn returns, unmodified.
func HandleDiscordError(operation string, fn func() error) error {
	if fn == nil {
		return errors.New("nil function provided")
	}
	err := fn()
	if err != nil {
		log.ErrorLogger().WithFields(map[string]any{
			"operation": operation,
			"source":    "discord",
		}).ErrorWithErr("Discord operation failed", err)
	}
	return err
}

// HandleSheetsError executes fn, logs any error as a row store or catalog failure
// and returns it wrapped with the operation name.
func HandleSheetsError(operation string, fn func() error) error {
	if fn == nil {
		return errors.New("nil function provided")
	}
	err := fn()
	if err == nil {
		return nil
	}
	log.ErrorLogger().WithFields(map[string]any{
		"operation": operation,
		"source":    "sheets",
	}).ErrorWithErr("Row store operation failed", err)
	return fmt.Errorf("%s: %w", operation, err)
}
