// cmd/client/cmd/element/move.go
package element

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"inkboard/internal/domain/geometry"
)

var (
	moveX float64
	moveY float64
)

var MoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Переместить элемент",
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

		moved, err := app.MoveElement(cmd.Context(), id, geometry.Point{X: moveX, Y: moveY})
		if err != nil {
			return fmt.Errorf("ошибка перемещения элемента: %w", err)
		}

		if moved.Synced {
			color.Green("✓ Элемент перемещен в (%.1f, %.1f)", moveX, moveY)
		} else {
			color.Yellow("✗ Сервер недоступен, перемещение сохранено локально")
		}

		return nil
	},
}

func init() {
	MoveCmd.Flags().Float64Var(&moveX, "x", 0, "новая позиция X")
	MoveCmd.Flags().Float64Var(&moveY, "y", 0, "новая позиция Y")
	MoveCmd.MarkFlagRequired("x")
	MoveCmd.MarkFlagRequired("y")
}
