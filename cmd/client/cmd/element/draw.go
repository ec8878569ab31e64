// cmd/client/cmd/element/draw.go
package element

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"inkboard/internal/app/client"
	domain "inkboard/internal/domain/element"
)

var (
	drawPoints string
	drawColor  string
	drawWidth  float64
)

var DrawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Создать рисунок из штриха",
	Long: `Создает элемент-рисунок из набора точек холста.

Точки задаются строкой вида "x,y;x,y;...". Штрих нормализуется:
позицией элемента становится левый верхний угол рамки штриха с
отступом, точки пересчитываются относительно нее. Штрих из одной
точки отбрасывается.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		points, err := parsePoints(drawPoints)
		if err != nil {
			return err
		}

		pos, size, stroke, ok := domain.NormalizeStroke(points, drawColor, drawWidth)
		if !ok {
			return fmt.Errorf("штрих должен содержать минимум две точки")
		}

		created, err := app.CreateDrawing(cmd.Context(), client.DrawingDraft{
			Position: pos,
			Size:     size,
			Strokes:  []domain.Stroke{stroke},
		})
		if err != nil {
			return fmt.Errorf("ошибка создания рисунка: %w", err)
		}

		if created.Synced {
			color.Green("✓ Рисунок создан: %s", created.Element.ID)
		} else {
			color.Yellow("✗ Сервер недоступен, рисунок сохранен локально: %s", created.Element.ID)
		}

		return nil
	},
}

func parsePoints(raw string) ([]domain.StrokePoint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("не заданы точки штриха (--points)")
	}

	pairs := strings.Split(raw, ";")
	points := make([]domain.StrokePoint, 0, len(pairs))
	for _, pair := range pairs {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("неверный формат точки: %q", pair)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("неверная координата X в %q: %w", pair, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("неверная координата Y в %q: %w", pair, err)
		}

		points = append(points, domain.StrokePoint{X: x, Y: y})
	}

	return points, nil
}

func init() {
	DrawCmd.Flags().StringVarP(&drawPoints, "points", "p", "", `точки штриха "x,y;x,y;..."`)
	DrawCmd.Flags().StringVar(&drawColor, "color", "", "цвет штриха (#rrggbb, по умолчанию #000000)")
	DrawCmd.Flags().Float64Var(&drawWidth, "stroke-width", 0, "толщина штриха (по умолчанию 2)")
}
