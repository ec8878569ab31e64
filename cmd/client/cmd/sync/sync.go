// cmd/client/cmd/sync/sync.go
package sync

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inkboard/internal/app/client"
)

var pushPending bool

// SyncStatusCmd показывает элементы, ожидающие подтверждения сервером
var SyncStatusCmd = &cobra.Command{
	Use:   "sync-status",
	Short: "Статус синхронизации",
	Long: `Показывает элементы, созданные или измененные без участия
сервера и ожидающие синхронизации.

С флагом --push несинхронизированные элементы досылаются на сервер.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok || app == nil {
			return fmt.Errorf("приложение не инициализировано")
		}

		if pushPending {
			pushed, failed, err := app.SyncPending(cmd.Context())
			if err != nil {
				return fmt.Errorf("ошибка досылки: %w", err)
			}
			if pushed > 0 {
				color.Green("✓ Дослано элементов: %d", pushed)
			}
			if failed > 0 {
				color.Yellow("✗ Не удалось дослать: %d", failed)
			}
		}

		unsynced, err := app.UnsyncedElements()
		if err != nil {
			return fmt.Errorf("ошибка получения статуса: %w", err)
		}

		if len(unsynced) == 0 {
			color.Green("✓ Все элементы синхронизированы")
			return nil
		}

		color.Yellow("Несинхронизированных элементов: %d", len(unsynced))
		fmt.Println()
		for _, le := range unsynced {
			el := le.Element
			fmt.Printf("  %s  %s  (%.1f, %.1f)  %s\n",
				el.ID, el.Type, el.Position.X, el.Position.Y,
				el.UpdatedAt.Format("2006-01-02 15:04"))
		}

		return nil
	},
}

func init() {
	SyncStatusCmd.Flags().BoolVar(&pushPending, "push", false, "дослать несинхронизированные элементы")
}
