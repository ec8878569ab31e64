// cmd/client/cmd/element/elements.go
package element

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkboard/internal/app/client"
)

// ElementCmd - родительская команда для операций с элементами доски
var ElementCmd = &cobra.Command{
	Use:   "element",
	Short: "Работа с элементами доски",
	Long:  `Создание, просмотр, перемещение и удаление элементов доски.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := client.FromContext(cmd.Context())
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
