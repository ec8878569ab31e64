// cmd/client/cmd/element/note.go
package element

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inkboard/internal/app/client"
	"inkboard/internal/domain/geometry"
)

var (
	noteX       float64
	noteY       float64
	noteWidth   float64
	noteHeight  float64
	noteContent string
	noteFont    float64
	noteColor   string
	noteBg      string
	noteZ       int
)

var NoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Создать текстовую заметку",
	Long: `Создает текстовую заметку в указанной точке холста.

Стилевые флаги необязательны: сервер подставит размер шрифта 16,
черный текст и желтый фон.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		draft := client.TextNoteDraft{
			Position: geometry.Point{X: noteX, Y: noteY},
			Size:     geometry.Size{Width: noteWidth, Height: noteHeight},
			Content:  noteContent,
		}
		if cmd.Flags().Changed("font-size") {
			draft.FontSize = &noteFont
		}
		if cmd.Flags().Changed("font-color") {
			draft.FontColor = &noteColor
		}
		if cmd.Flags().Changed("background") {
			draft.BackgroundColor = &noteBg
		}
		if cmd.Flags().Changed("z-index") {
			draft.ZIndex = &noteZ
		}

		created, err := app.CreateTextNote(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("ошибка создания заметки: %w", err)
		}

		if created.Synced {
			color.Green("✓ Заметка создана: %s", created.Element.ID)
		} else {
			color.Yellow("✗ Сервер недоступен, заметка сохранена локально: %s", created.Element.ID)
		}

		return nil
	},
}

func init() {
	NoteCmd.Flags().Float64Var(&noteX, "x", 0, "позиция X на холсте")
	NoteCmd.Flags().Float64Var(&noteY, "y", 0, "позиция Y на холсте")
	NoteCmd.Flags().Float64Var(&noteWidth, "width", 200, "ширина заметки")
	NoteCmd.Flags().Float64Var(&noteHeight, "height", 150, "высота заметки")
	NoteCmd.Flags().StringVarP(&noteContent, "content", "c", "", "текст заметки")
	NoteCmd.Flags().Float64Var(&noteFont, "font-size", 16, "размер шрифта")
	NoteCmd.Flags().StringVar(&noteColor, "font-color", "#000000", "цвет текста (#rrggbb)")
	NoteCmd.Flags().StringVar(&noteBg, "background", "#ffff88", "цвет фона (#rrggbb)")
	NoteCmd.Flags().IntVar(&noteZ, "z-index", 0, "порядок наложения")
}
