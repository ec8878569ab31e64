// cmd/client/cmd/element/edit.go
package element

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"inkboard/internal/app/client"
	"inkboard/internal/domain/geometry"
)

var (
	editContent string
	editFont    float64
	editColor   string
	editBg      string
	editX       float64
	editY       float64
	editWidth   float64
	editHeight  float64
	editZ       int
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Изменить текстовую заметку",
	Long: `Частично обновляет заметку: меняются только переданные флаги,
остальные поля сохраняют прежние значения.

При недоступном сервере изменения применяются к локальному зеркалу и
помечаются как несинхронизированные.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("неверный id элемента: %w", err)
		}

		var patch client.TextNotePatchRequest
		if cmd.Flags().Changed("content") {
			patch.Content = &editContent
		}
		if cmd.Flags().Changed("font-size") {
			patch.FontSize = &editFont
		}
		if cmd.Flags().Changed("font-color") {
			patch.FontColor = &editColor
		}
		if cmd.Flags().Changed("background") {
			patch.BackgroundColor = &editBg
		}
		if cmd.Flags().Changed("z-index") {
			patch.ZIndex = &editZ
		}
		if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
			patch.Position = &geometry.Point{X: editX, Y: editY}
		}
		if cmd.Flags().Changed("width") || cmd.Flags().Changed("height") {
			patch.Size = &geometry.Size{Width: editWidth, Height: editHeight}
		}

		updated, err := app.UpdateTextNote(cmd.Context(), id, patch)
		if err != nil {
			return fmt.Errorf("ошибка обновления заметки: %w", err)
		}

		if updated.Synced {
			color.Green("✓ Заметка обновлена: %s", shortID(id.String()))
		} else {
			color.Yellow("✗ Сервер недоступен, изменения сохранены локально: %s", shortID(id.String()))
		}

		return nil
	},
}

func init() {
	EditCmd.Flags().StringVarP(&editContent, "content", "c", "", "новый текст заметки")
	EditCmd.Flags().Float64Var(&editFont, "font-size", 16, "размер шрифта")
	EditCmd.Flags().StringVar(&editColor, "font-color", "#000000", "цвет текста (#rrggbb)")
	EditCmd.Flags().StringVar(&editBg, "background", "#ffff88", "цвет фона (#rrggbb)")
	EditCmd.Flags().Float64Var(&editX, "x", 0, "новая позиция X")
	EditCmd.Flags().Float64Var(&editY, "y", 0, "новая позиция Y")
	EditCmd.Flags().Float64Var(&editWidth, "width", 0, "новая ширина")
	EditCmd.Flags().Float64Var(&editHeight, "height", 0, "новая высота")
	EditCmd.Flags().IntVar(&editZ, "z-index", 0, "порядок наложения")
}
