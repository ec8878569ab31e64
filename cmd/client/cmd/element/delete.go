// cmd/client/cmd/element/delete.go
package element

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить элемент",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("неверный id элемента: %w", err)
		}

		if err := app.DeleteElement(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления элемента: %w", err)
		}

		color.Green("✓ Элемент %s удален", shortID(id.String()))
		return nil
	},
}
