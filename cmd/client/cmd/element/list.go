// cmd/client/cmd/element/list.go
package element

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inkboard/internal/app/client"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список элементов доски",
	Long: `Просмотр всех элементов доски в порядке z-index.

Несинхронизированные элементы помечаются отдельно.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		elements, err := app.ListElements(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка элементов: %w", err)
		}

		switch listFormat {
		case "json":
			return printElementsJSON(elements)
		default:
			return printElementsTable(elements)
		}
	},
}

func printElementsTable(elements []client.LocalElement) error {
	if len(elements) == 0 {
		fmt.Println("Доска пуста")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tТип\tПозиция\tРазмер\tZ\tСинхр.\tОбновлено\t\n")

	for _, le := range elements {
		el := le.Element
		status := green("✓")
		if !le.Synced {
			status = yellow("✗")
		}

		fmt.Fprintf(w, "%s\t%s\t(%.1f, %.1f)\t%.0fx%.0f\t%d\t%s\t%s\t\n",
			cyan(shortID(el.ID.String())),
			el.Type,
			el.Position.X, el.Position.Y,
			el.Size.Width, el.Size.Height,
			el.ZIndex,
			status,
			el.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}

	w.Flush()
	fmt.Printf("\nВсего элементов: %d\n", len(elements))
	return nil
}

func printElementsJSON(elements []client.LocalElement) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(elements)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json)")
}
